package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/repositories"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements the UserRepository interface
type MongoUserRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &MongoUserRepository{
		coll:   config.DB.Collection(config.Collections.Users),
		logger: config.Logger,
	}
}

// Upsert creates the user or refreshes its profile fields
func (r *MongoUserRepository) Upsert(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"username":    user.Username,
			"displayName": user.DisplayName,
			"profileUrl":  user.ProfileURL,
			"profilePic":  user.ProfilePic,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"projects":  bson.A{},
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"externalId": user.ExternalID}, update, opts).Decode(&stored)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	*user = stored
	return nil
}

// GetByID retrieves a user by internal ID
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, id)
}

// GetByExternalID retrieves a user by provider-qualified identity
func (r *MongoUserRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"externalId": externalID}, externalID)
}

// AttachProject adds projectID to the user's project set
func (r *MongoUserRepository) AttachProject(ctx context.Context, userID, projectID string) error {
	return r.updateProjects(ctx, "attach project", userID, bson.M{"$addToSet": bson.M{"projects": projectID}})
}

// DetachProject removes projectID from the user's project set
func (r *MongoUserRepository) DetachProject(ctx context.Context, userID, projectID string) error {
	return r.updateProjects(ctx, "detach project", userID, bson.M{"$pull": bson.M{"projects": projectID}})
}

func (r *MongoUserRepository) updateProjects(ctx context.Context, op, userID string, update bson.M) error {
	update["$set"] = bson.M{"updatedAt": time.Now().UTC()}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, key string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, notFoundOr(err, "user", key, "get user")
	}
	return &user, nil
}
