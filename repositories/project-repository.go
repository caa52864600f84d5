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

// ErrNotFound is returned when a record does not exist or is soft-deleted.
var ErrNotFound = fmt.Errorf("not found")

type ProjectRepository struct {
	collection *mongo.Collection
}

func NewProjectRepository(collection *mongo.Collection) *ProjectRepository {
	return &ProjectRepository{collection: collection}
}

func (r *ProjectRepository) Insert(ctx context.Context, project *models.Project) (*models.Project, error) {
	project.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %v", err)
	}
	project.ID = result.InsertedID.(primitive.ObjectID)
	return project, nil
}

// Update mutates the stored record in place. The service this replaced had two
// competing edit strategies (mutate vs. insert-and-disable); mutate-in-place
// is the canonical one here.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	now := time.Now().UTC()
	project.UpdatedTime = &now

	update := bson.M{"$set": bson.M{
		"projectName":   project.ProjectName,
		"department":    project.Department,
		"concernId":     project.ConcernID,
		"assignedUsers": project.AssignedUsers,
		"assignedBy":    project.AssignedBy,
		"client":        project.Client,
		"startDate":     project.StartDate,
		"endDate":       project.EndDate,
		"description":   project.Description,
		"status":        project.Status,
		"updatedBy":     project.UpdatedBy,
		"updatedTime":   project.UpdatedTime,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": project.ID, "isDeleted": false}, update)
	if err != nil {
		return fmt.Errorf("failed to update project: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus persists only a derived status change.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.StatusEnum) error {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"status": status, "updatedTime": now}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "isDeleted": false}, update)
	if err != nil {
		return fmt.Errorf("failed to update project status: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete marks the project deleted. Records are never physically removed.
func (r *ProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedTime": now}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "isDeleted": false}, update)
	if err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "isDeleted": false, "isDisabled": false}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching project: %v", err)
	}
	return &project, nil
}

// FindAll returns non-deleted, non-disabled projects, most recent first.
func (r *ProjectRepository) FindAll(ctx context.Context, limit int64) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.M{"createdTime": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"isDeleted": false, "isDisabled": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}
	return projects, nil
}

// FindByDepartment returns a department's projects, most recent first.
func (r *ProjectRepository) FindByDepartment(ctx context.Context, departmentID int) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.M{"createdTime": -1})
	filter := bson.M{"department": departmentID, "isDeleted": false, "isDisabled": false}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects by department: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}
	return projects, nil
}
