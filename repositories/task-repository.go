package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/deccan0963-netizen/Tasks/models"
)

type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(collection *mongo.Collection) *TaskRepository {
	return &TaskRepository{collection: collection}
}

func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC()
	task.UpdatedTime = &now

	update := bson.M{"$set": bson.M{
		"taskName":      task.TaskName,
		"projectId":     task.ProjectID,
		"department":    task.Department,
		"assignedUsers": task.AssignedUsers,
		"assignedBy":    task.AssignedBy,
		"dueDate":       task.DueDate,
		"completedDate": task.CompletedDate,
		"description":   task.Description,
		"status":        task.Status,
		"updatedBy":     task.UpdatedBy,
		"updatedTime":   task.UpdatedTime,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": task.ID, "isDeleted": false}, update)
	if err != nil {
		return fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedTime": now}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "isDeleted": false}, update)
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching task: %v", err)
	}
	return &task, nil
}

// FindAll returns non-deleted tasks, most recent first, capped to limit.
func (r *TaskRepository) FindAll(ctx context.Context, limit int64) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.M{"createdTime": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"isDeleted": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	return tasks, nil
}

// FindByProject returns the current non-deleted task set for one project.
func (r *TaskRepository) FindByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID, "isDeleted": false})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks for project %s: %v", projectID, err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	return tasks, nil
}
