package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/deccan0963-netizen/Tasks/models"
)

// ErrDuplicate reports an insert that collided with an existing record.
var ErrDuplicate = errors.New("record already exists")

type AcceptanceRepository struct {
	collection      *mongo.Collection
	tasksCollection *mongo.Collection
}

func NewAcceptanceRepository(collection, tasksCollection *mongo.Collection) *AcceptanceRepository {
	return &AcceptanceRepository{collection: collection, tasksCollection: tasksCollection}
}

// EnsureIndexes creates the unique (taskId, userId) index. Two simultaneous
// accepts for the same pair can both pass the existence check; the index makes
// the second insert fail with ErrDuplicate instead of writing a second record.
func (r *AcceptanceRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "taskId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create acceptance index: %v", err)
	}
	return nil
}

// Exists reports whether an acceptance is already recorded for the pair.
func (r *AcceptanceRepository) Exists(ctx context.Context, taskID, userID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"taskId": taskID, "userId": userID})
	if err != nil {
		return false, fmt.Errorf("failed to check acceptance: %v", err)
	}
	return count > 0, nil
}

func (r *AcceptanceRepository) Insert(ctx context.Context, acceptance *models.TaskAcceptance) (*models.TaskAcceptance, error) {
	acceptance.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, acceptance)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to record acceptance: %v", err)
	}
	acceptance.ID = result.InsertedID.(primitive.ObjectID)
	return acceptance, nil
}

// FindByUser returns every acceptance recorded for one user.
func (r *AcceptanceRepository) FindByUser(ctx context.Context, userID string) ([]models.TaskAcceptance, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve acceptances for user %s: %v", userID, err)
	}
	defer cursor.Close(ctx)

	var acceptances []models.TaskAcceptance
	if err = cursor.All(ctx, &acceptances); err != nil {
		return nil, fmt.Errorf("failed to decode acceptances: %v", err)
	}
	return acceptances, nil
}

// FindByProject joins acceptances against the project's non-deleted tasks and
// returns the records for tasks belonging to projectID.
func (r *AcceptanceRepository) FindByProject(ctx context.Context, projectID string) ([]models.TaskAcceptance, error) {
	cursor, err := r.tasksCollection.Find(ctx, bson.M{"projectId": projectID, "isDeleted": false})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks for project %s: %v", projectID, err)
	}
	defer cursor.Close(ctx)

	taskIDs := []string{}
	for cursor.Next(ctx) {
		var task struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&task); err != nil {
			return nil, fmt.Errorf("failed to decode task id: %v", err)
		}
		taskIDs = append(taskIDs, task.ID.Hex())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	if len(taskIDs) == 0 {
		return []models.TaskAcceptance{}, nil
	}

	acceptCursor, err := r.collection.Find(ctx, bson.M{"taskId": bson.M{"$in": taskIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve acceptances for project %s: %v", projectID, err)
	}
	defer acceptCursor.Close(ctx)

	var acceptances []models.TaskAcceptance
	if err = acceptCursor.All(ctx, &acceptances); err != nil {
		return nil, fmt.Errorf("failed to decode acceptances: %v", err)
	}
	return acceptances, nil
}
