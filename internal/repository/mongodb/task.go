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

// MongoTaskRepository implements the TaskRepository interface
type MongoTaskRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(config *RepositoryConfig) repositories.TaskRepository {
	return &MongoTaskRepository{
		coll:   config.DB.Collection(config.Collections.Tasks),
		logger: config.Logger,
	}
}

// Create inserts a new task with a generated UUID
func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	task.ID = uuid.NewString()
	stampNew(&task.CreatedAt, &task.UpdatedAt)

	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by ID
func (r *MongoTaskRepository) GetByID(ctx context.Context, id, userID string) (*models.Task, error) {
	var task models.Task
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&task); err != nil {
		return nil, notFoundOr(err, "task", id, "get task")
	}
	return &task, nil
}

// ListByProject retrieves a project's tasks in creation order
func (r *MongoTaskRepository) ListByProject(ctx context.Context, projectID, userID string) ([]models.Task, error) {
	return r.find(ctx, "list tasks", bson.M{"projectId": projectID, "userId": userID})
}

// ListByProjects retrieves the tasks of several projects in creation order
func (r *MongoTaskRepository) ListByProjects(ctx context.Context, userID string, projectIDs []string) ([]models.Task, error) {
	if len(projectIDs) == 0 {
		return []models.Task{}, nil
	}
	return r.find(ctx, "list tasks by projects", bson.M{"userId": userID, "projectId": bson.M{"$in": projectIDs}})
}

// SearchByContent matches pattern case-insensitively against task content
func (r *MongoTaskRepository) SearchByContent(ctx context.Context, userID, pattern string) ([]models.Task, error) {
	filter := bson.M{"userId": userID, "content": bson.M{"$regex": pattern, "$options": "i"}}
	return r.find(ctx, "search tasks", filter)
}

// Update persists content and resolved
func (r *MongoTaskRepository) Update(ctx context.Context, task *models.Task) error {
	update := bson.M{"$set": bson.M{
		"content":   task.Content,
		"resolved":  task.Resolved,
		"updatedAt": task.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": task.ID, "userId": task.UserID}, update)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("task %s: %w", task.ID, domain.ErrNotFound)
	}
	return nil
}

// SetResolved sets resolved on every matching task. Tasks already in the
// target state count as matched but not modified.
func (r *MongoTaskRepository) SetResolved(ctx context.Context, filter repositories.TaskFilter, resolved bool) (int64, int64, error) {
	match := bulkFilter(filter)

	matched, err := r.coll.CountDocuments(ctx, match)
	if err != nil {
		return 0, 0, fmt.Errorf("bulk update tasks: %w", err)
	}

	match["resolved"] = bson.M{"$ne": resolved}
	update := bson.M{"$set": bson.M{"resolved": resolved, "updatedAt": time.Now().UTC()}}
	res, err := r.coll.UpdateMany(ctx, match, update)
	if err != nil {
		return 0, 0, fmt.Errorf("bulk update tasks: %w", err)
	}

	return matched, res.ModifiedCount, nil
}

// Find returns the tasks matching filter
func (r *MongoTaskRepository) Find(ctx context.Context, filter repositories.TaskFilter) ([]models.Task, error) {
	return r.find(ctx, "find tasks", bulkFilter(filter))
}

// DeleteMany deletes every task matching filter
func (r *MongoTaskRepository) DeleteMany(ctx context.Context, filter repositories.TaskFilter) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bulkFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("bulk delete tasks: %w", err)
	}
	return res.DeletedCount, nil
}

// Delete removes one task
func (r *MongoTaskRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteByProject removes all tasks of a project
func (r *MongoTaskRepository) DeleteByProject(ctx context.Context, projectID, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"projectId": projectID, "userId": userID})
	if err != nil {
		return 0, fmt.Errorf("delete project tasks: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoTaskRepository) find(ctx context.Context, op string, filter bson.M) ([]models.Task, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

func bulkFilter(filter repositories.TaskFilter) bson.M {
	m := bson.M{"userId": filter.UserID, "_id": bson.M{"$in": filter.IDs}}
	if filter.ProjectID != "" {
		m["projectId"] = filter.ProjectID
	}
	return m
}
