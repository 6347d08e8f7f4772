package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubUserURL = "https://api.github.com/user"

// OAuthProvider runs the authorization-code flow for one identity provider.
type OAuthProvider interface {
	Name() string
	AuthCodeURL(state string) string
	// Exchange trades the callback code for the caller's profile.
	Exchange(ctx context.Context, code string) (*models.ExternalProfile, error)
}

// GitHubProvider implements OAuthProvider for GitHub.
type GitHubProvider struct {
	config  *oauth2.Config
	userURL string
}

// NewGitHubProvider creates a GitHub OAuth2 provider.
func NewGitHubProvider(clientID, clientSecret, callbackURL string) *GitHubProvider {
	return &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user"},
		},
		userURL: githubUserURL,
	}
}

// Name implements OAuthProvider
func (p *GitHubProvider) Name() string { return "github" }

// AuthCodeURL implements OAuthProvider
func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	HTMLURL   string `json:"html_url"`
	AvatarURL string `json:"avatar_url"`
}

// Exchange implements OAuthProvider
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*models.ExternalProfile, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", domain.ErrUnauthorized)
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: code exchange failed: %v", domain.ErrUnauthorized, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build github user request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch github user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch github user: unexpected status %d", resp.StatusCode)
	}

	var user githubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode github user: %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: github user has no id", domain.ErrUnauthorized)
	}

	return &models.ExternalProfile{
		Provider:    p.Name(),
		ProviderID:  strconv.FormatInt(user.ID, 10),
		Username:    user.Login,
		DisplayName: user.Name,
		ProfileURL:  user.HTMLURL,
		ProfilePic:  user.AvatarURL,
	}, nil
}
