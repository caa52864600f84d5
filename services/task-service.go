package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deccan0963-netizen/Tasks/aggregation"
	"github.com/deccan0963-netizen/Tasks/logging"
	"github.com/deccan0963-netizen/Tasks/models"
)

type TaskService struct {
	tasks    TaskStore
	projects *ProjectService
}

func NewTaskService(tasks TaskStore, projects *ProjectService) *TaskService {
	return &TaskService{tasks: tasks, projects: projects}
}

func (s *TaskService) CreateTask(ctx context.Context, task *models.Task, createdBy string) (*models.Task, error) {
	if task.TaskName == "" {
		return nil, fmt.Errorf("task name is required")
	}
	projectID, err := primitive.ObjectIDFromHex(task.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID format: %v", err)
	}
	if _, err := s.projects.GetProjectByID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("project not found: %v", err)
	}
	if !task.Status.Valid() {
		task.Status = models.StatusPending
	}

	task.AssignedUsers = aggregation.NormalizeUserList(task.AssignedUsers)
	task.Stamp(createdBy, time.Now().UTC())
	applyCompletedDate(task)

	created, err := s.tasks.Insert(ctx, task)
	if err != nil {
		return nil, err
	}

	s.syncProject(ctx, projectID)
	return created, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, task *models.Task, updatedBy string) (*models.Task, error) {
	existing, err := s.tasks.FindByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	existing.TaskName = task.TaskName
	existing.Department = task.Department
	existing.AssignedUsers = aggregation.NormalizeUserList(task.AssignedUsers)
	existing.AssignedBy = task.AssignedBy
	existing.DueDate = task.DueDate
	existing.Description = task.Description
	if task.Status.Valid() {
		existing.Status = task.Status
	}
	existing.UpdatedBy = updatedBy
	applyCompletedDate(existing)

	if err := s.tasks.Update(ctx, existing); err != nil {
		return nil, err
	}

	if projectID, err := primitive.ObjectIDFromHex(existing.ProjectID); err == nil {
		s.syncProject(ctx, projectID)
	}
	return existing, nil
}

// ChangeTaskStatus moves one task through its lifecycle and re-derives the
// owning project's status.
func (s *TaskService) ChangeTaskStatus(ctx context.Context, taskID primitive.ObjectID, status models.StatusEnum, updatedBy string) (*models.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status code: %d", status)
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	task.UpdatedBy = updatedBy
	applyCompletedDate(task)

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if projectID, err := primitive.ObjectIDFromHex(task.ProjectID); err == nil {
		s.syncProject(ctx, projectID)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID primitive.ObjectID) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	// Removing a task can change the project's derived completion.
	if projectID, err := primitive.ObjectIDFromHex(task.ProjectID); err == nil {
		s.syncProject(ctx, projectID)
	}
	return nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	return s.tasks.FindByID(ctx, taskID)
}

func (s *TaskService) GetAllTasks(ctx context.Context, limit int64) ([]models.Task, error) {
	return s.tasks.FindAll(ctx, limit)
}

func (s *TaskService) GetTasksByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	return s.tasks.FindByProject(ctx, projectID)
}

func (s *TaskService) syncProject(ctx context.Context, projectID primitive.ObjectID) {
	if err := s.projects.SyncProjectStatus(ctx, projectID); err != nil {
		logging.Logger.Warnf("Event ID: PROJECT_SYNC_SKIPPED, Description: Status sync after task mutation failed for %s: %v", projectID.Hex(), err)
	}
}

// applyCompletedDate keeps the completed date consistent with the status: set
// once when the task reaches Completed, cleared when it leaves it.
func applyCompletedDate(task *models.Task) {
	if task.Status == models.StatusCompleted {
		if task.CompletedDate == nil {
			now := time.Now().UTC()
			task.CompletedDate = &now
		}
		return
	}
	task.CompletedDate = nil
}
