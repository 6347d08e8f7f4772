package models

import "time"

// User is created on first login through an external identity provider.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	ExternalID  string    `json:"externalId" bson:"externalId"`
	Username    string    `json:"username" bson:"username"`
	DisplayName string    `json:"displayName" bson:"displayName"`
	ProfileURL  string    `json:"profileUrl" bson:"profileUrl"`
	ProfilePic  string    `json:"profilePic" bson:"profilePic"`
	Projects    []string  `json:"projects" bson:"projects"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ExternalProfile is the identity data an external provider hands back at login.
type ExternalProfile struct {
	Provider    string
	ProviderID  string
	Username    string
	DisplayName string
	ProfileURL  string
	ProfilePic  string
}

// ExternalID returns the provider-qualified identity key, e.g. "github:42".
func (p ExternalProfile) ExternalID() string {
	return p.Provider + ":" + p.ProviderID
}
