package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/repositories"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// creationOrder sorts documents oldest first with the id as tie-breaker
var creationOrder = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

// MongoProjectRepository implements the ProjectRepository interface
type MongoProjectRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &MongoProjectRepository{
		coll:   config.DB.Collection(config.Collections.Projects),
		logger: config.Logger,
	}
}

// Create inserts a new project with a generated UUID
func (r *MongoProjectRepository) Create(ctx context.Context, project *models.Project) error {
	project.ID = uuid.NewString()
	if project.Tags == nil {
		project.Tags = []string{}
	}
	if project.TaskIDs == nil {
		project.TaskIDs = []string{}
	}
	stampNew(&project.CreatedAt, &project.UpdatedAt)

	if _, err := r.coll.InsertOne(ctx, project); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by ID
func (r *MongoProjectRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	var project models.Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user": userID}).Decode(&project)
	if err != nil {
		return nil, notFoundOr(err, "project", id, "get project")
	}
	return &project, nil
}

// List retrieves all projects for a user in creation order
func (r *MongoProjectRepository) List(ctx context.Context, userID string) ([]models.Project, error) {
	return r.find(ctx, "list projects", bson.M{"user": userID}, options.Find().SetSort(creationOrder))
}

// ListPage retrieves one slice of the user's projects in creation order
func (r *MongoProjectRepository) ListPage(ctx context.Context, userID string, offset, limit int) ([]models.Project, error) {
	opts := options.Find().
		SetSort(creationOrder).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return r.find(ctx, "list project page", bson.M{"user": userID}, opts)
}

// Count returns the number of projects a user owns
func (r *MongoProjectRepository) Count(ctx context.Context, userID string) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return int(n), nil
}

// ListByTag retrieves the user's projects carrying tag
func (r *MongoProjectRepository) ListByTag(ctx context.Context, userID, tag string) ([]models.Project, error) {
	return r.find(ctx, "list projects by tag", bson.M{"user": userID, "tags": tag}, options.Find().SetSort(creationOrder))
}

// ListTags returns the distinct tags across the user's projects, sorted
func (r *MongoProjectRepository) ListTags(ctx context.Context, userID string) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "tags", bson.M{"user": userID})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// ListByIDs retrieves the user's projects among ids
func (r *MongoProjectRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}
	filter := bson.M{"user": userID, "_id": bson.M{"$in": ids}}
	return r.find(ctx, "list projects by ids", filter, options.Find().SetSort(creationOrder))
}

// SearchByNameOrTag matches pattern case-insensitively against name and tags
func (r *MongoProjectRepository) SearchByNameOrTag(ctx context.Context, userID, pattern string) ([]models.Project, error) {
	re := bson.M{"$regex": pattern, "$options": "i"}
	filter := bson.M{
		"user": userID,
		"$or":  bson.A{bson.M{"name": re}, bson.M{"tags": re}},
	}
	return r.find(ctx, "search projects", filter, options.Find().SetSort(creationOrder))
}

// Update replaces a project's name and tags
func (r *MongoProjectRepository) Update(ctx context.Context, project *models.Project) error {
	if project.Tags == nil {
		project.Tags = []string{}
	}
	update := bson.M{"$set": bson.M{
		"name":      project.Name,
		"tags":      project.Tags,
		"updatedAt": project.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": project.ID, "user": project.UserID}, update)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a project document
func (r *MongoProjectRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user": userID})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AttachTask appends taskID to the project's task list
func (r *MongoProjectRepository) AttachTask(ctx context.Context, projectID, taskID string) error {
	update := bson.M{
		"$push": bson.M{"tasks": taskID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": projectID}, update)
	if err != nil {
		return fmt.Errorf("attach task: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	return nil
}

// DetachTasks removes taskIDs from the project's task list
func (r *MongoProjectRepository) DetachTasks(ctx context.Context, projectID string, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}
	update := bson.M{
		"$pull": bson.M{"tasks": bson.M{"$in": taskIDs}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": projectID}, update); err != nil {
		return fmt.Errorf("detach tasks: %w", err)
	}
	return nil
}

func (r *MongoProjectRepository) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]models.Project, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return projects, nil
}

// stampNew fills zero timestamps on a document about to be inserted
func stampNew(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}
