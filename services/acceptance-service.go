package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deccan0963-netizen/Tasks/logging"
	"github.com/deccan0963-netizen/Tasks/models"
	"github.com/deccan0963-netizen/Tasks/repositories"
)

type AcceptanceService struct {
	acceptances AcceptanceStore
	tasks       TaskStore
	projects    *ProjectService
}

func NewAcceptanceService(acceptances AcceptanceStore, tasks TaskStore, projects *ProjectService) *AcceptanceService {
	return &AcceptanceService{acceptances: acceptances, tasks: tasks, projects: projects}
}

// AcceptResult is what the accept endpoint reports back to the dashboard.
type AcceptResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	AlreadyAccepted bool   `json:"alreadyAccepted"`
	TaskStatus      int    `json:"taskStatus"`
}

// AcceptTask records that userID accepted taskID. Accepting a task twice is a
// success, not an error: the second call observes the existing record and
// leaves exactly one acceptance in place, which also resolves near-simultaneous
// duplicate accepts to idempotent behavior.
func (s *AcceptanceService) AcceptTask(ctx context.Context, taskID, userID string) (*AcceptResult, error) {
	if taskID == "" || userID == "" {
		return nil, fmt.Errorf("task ID and user ID are required")
	}

	taskObjectID, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, fmt.Errorf("invalid task ID format: %v", err)
	}
	task, err := s.tasks.FindByID(ctx, taskObjectID)
	if err != nil {
		return nil, err
	}

	exists, err := s.acceptances.Exists(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return &AcceptResult{
			Success:         true,
			Message:         "Task already accepted",
			AlreadyAccepted: true,
			TaskStatus:      int(task.Status),
		}, nil
	}

	acceptance := &models.TaskAcceptance{
		TaskID:       taskID,
		UserID:       userID,
		AcceptedDate: time.Now().UTC(),
	}
	if _, err := s.acceptances.Insert(ctx, acceptance); err != nil {
		// A racing accept can slip past the existence check; the store's
		// unique (taskId, userId) index turns the loser into a duplicate,
		// which is the same idempotent success as any repeat accept.
		if errors.Is(err, repositories.ErrDuplicate) {
			return &AcceptResult{
				Success:         true,
				Message:         "Task already accepted",
				AlreadyAccepted: true,
				TaskStatus:      int(task.Status),
			}, nil
		}
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_ACCEPTED, Description: User %s accepted task %s", userID, taskID)

	if projectID, err := primitive.ObjectIDFromHex(task.ProjectID); err == nil {
		if err := s.projects.SyncProjectStatus(ctx, projectID); err != nil {
			logging.Logger.Warnf("Event ID: PROJECT_SYNC_SKIPPED, Description: Status sync after accept failed for %s: %v", task.ProjectID, err)
		}
	}

	return &AcceptResult{
		Success:    true,
		Message:    "Task accepted successfully",
		TaskStatus: int(task.Status),
	}, nil
}

// GetByUser returns every acceptance recorded for one user.
func (s *AcceptanceService) GetByUser(ctx context.Context, userID string) ([]models.TaskAcceptance, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	return s.acceptances.FindByUser(ctx, userID)
}

// GetAcceptedTaskIDsForProject returns the accepted task ids scoped to one
// project, for the dashboard's incremental refresh.
func (s *AcceptanceService) GetAcceptedTaskIDsForProject(ctx context.Context, projectID string) ([]string, error) {
	acceptances, err := s.acceptances.FindByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(acceptances))
	ids := make([]string, 0, len(acceptances))
	for _, a := range acceptances {
		if !seen[a.TaskID] {
			seen[a.TaskID] = true
			ids = append(ids, a.TaskID)
		}
	}
	return ids, nil
}
