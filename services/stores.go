package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deccan0963-netizen/Tasks/models"
)

// Store interfaces consumed by the service layer. The mongo implementations
// live in the repositories package; tests substitute in-memory fakes.

type ProjectStore interface {
	Insert(ctx context.Context, project *models.Project) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.StatusEnum) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindAll(ctx context.Context, limit int64) ([]models.Project, error)
	FindByDepartment(ctx context.Context, departmentID int) ([]models.Project, error)
}

type TaskStore interface {
	Insert(ctx context.Context, task *models.Task) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindAll(ctx context.Context, limit int64) ([]models.Task, error)
	FindByProject(ctx context.Context, projectID string) ([]models.Task, error)
}

type AcceptanceStore interface {
	Exists(ctx context.Context, taskID, userID string) (bool, error)
	Insert(ctx context.Context, acceptance *models.TaskAcceptance) (*models.TaskAcceptance, error)
	FindByUser(ctx context.Context, userID string) ([]models.TaskAcceptance, error)
	FindByProject(ctx context.Context, projectID string) ([]models.TaskAcceptance, error)
}

// Directory looks up users, departments and role permissions from the external
// privilege service. Implementations degrade to empty lists on failure and
// never return errors to callers.
type Directory interface {
	Users(ctx context.Context) []models.ApiUser
	Departments(ctx context.Context) []models.ApiDepartment
	Concerns(ctx context.Context) []models.ApiConcern
	RolePermissions(ctx context.Context, roleID int) []models.RolePermission
}
