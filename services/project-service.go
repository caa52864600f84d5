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

type ProjectService struct {
	projects    ProjectStore
	tasks       TaskStore
	acceptances AcceptanceStore
	directory   Directory
}

func NewProjectService(projects ProjectStore, tasks TaskStore, acceptances AcceptanceStore, directory Directory) *ProjectService {
	return &ProjectService{
		projects:    projects,
		tasks:       tasks,
		acceptances: acceptances,
		directory:   directory,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, project *models.Project, createdBy string) (*models.Project, error) {
	if project.ProjectName == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if len(project.AssignedUsers) == 0 {
		return nil, fmt.Errorf("assigned users are required")
	}
	if project.AssignedBy == "" {
		return nil, fmt.Errorf("assigned by is required")
	}
	if !project.Status.Valid() {
		project.Status = models.StatusPending
	}

	project.AssignedUsers = aggregation.NormalizeUserList(project.AssignedUsers)
	project.Stamp(createdBy, time.Now().UTC())

	return s.projects.Insert(ctx, project)
}

func (s *ProjectService) UpdateProject(ctx context.Context, project *models.Project, updatedBy string) (*models.Project, error) {
	existing, err := s.projects.FindByID(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	existing.ProjectName = project.ProjectName
	existing.Department = project.Department
	existing.ConcernID = project.ConcernID
	existing.AssignedUsers = aggregation.NormalizeUserList(project.AssignedUsers)
	existing.AssignedBy = project.AssignedBy
	existing.Client = project.Client
	existing.StartDate = project.StartDate
	existing.EndDate = project.EndDate
	existing.Description = project.Description
	if project.Status.Valid() {
		existing.Status = project.Status
	}
	existing.UpdatedBy = updatedBy

	if err := s.projects.Update(ctx, existing); err != nil {
		return nil, err
	}

	if err := s.SyncProjectStatus(ctx, existing.ID); err != nil {
		logging.Logger.Warnf("Event ID: PROJECT_SYNC_SKIPPED, Description: Status sync after project update failed for %s: %v", existing.ID.Hex(), err)
	}
	return s.projects.FindByID(ctx, existing.ID)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	// Restrict semantics: tasks keep their rows; only the project is flagged.
	return s.projects.Delete(ctx, id)
}

func (s *ProjectService) GetProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) GetAllProjects(ctx context.Context, limit int64) ([]models.Project, error) {
	return s.projects.FindAll(ctx, limit)
}

func (s *ProjectService) GetProjectsByDepartment(ctx context.Context, departmentID int) ([]models.Project, error) {
	return s.projects.FindByDepartment(ctx, departmentID)
}

// SyncProjectStatus re-derives the project's status from its current task set
// and persists the result when it differs from the stored value. It runs after
// every task create/update/delete and accept action, and re-running it on an
// already-correct status writes nothing.
func (s *ProjectService) SyncProjectStatus(ctx context.Context, projectID primitive.ObjectID) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	tasks, err := s.tasks.FindByProject(ctx, projectID.Hex())
	if err != nil {
		// Missing task data must never drive a status write: absence of data
		// is not completion, and demoting on a fetch failure would be a lie.
		return fmt.Errorf("task data unavailable for project %s: %v", projectID.Hex(), err)
	}

	summary := aggregation.Compute(tasks)
	next := aggregation.NextStatus(project.Status, summary)
	if next == project.Status {
		return nil
	}

	logging.Logger.Infof("Event ID: PROJECT_STATUS_DERIVED, Description: Project %s status %s -> %s (completed %d/%d)",
		projectID.Hex(), project.Status, next, summary.CompletedTasks, summary.TotalTasks)
	return s.projects.UpdateStatus(ctx, projectID, next)
}

// TaskView is the per-task slice of the project summary payload.
type TaskView struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	AssignedUsers   []string `json:"assignedUsers"`
	AssignedBy      string   `json:"assignedBy"`
	Status          int      `json:"status"`
	AcceptanceState string   `json:"acceptanceState"`
	ViewerAccepted  bool     `json:"viewerAccepted"`
	Description     string   `json:"description"`
	DueDate         string   `json:"dueDate"`
	CompletedDate   string   `json:"completedDate"`
	AssignedDate    string   `json:"assignedDate"`
}

// ProjectSummary is the outward per-project structure consumed by the
// dashboard. Every figure in it is recomputed from the stores on each call;
// nothing here is persisted.
type ProjectSummary struct {
	ProjectName     string                   `json:"projectName"`
	DepartmentName  string                   `json:"departmentName"`
	Status          int                      `json:"status"`
	StatusName      string                   `json:"statusName"`
	StartDate       string                   `json:"startDate"`
	AssignedUsers   []string                 `json:"assignedUsers"`
	AssignedBy      string                   `json:"assignedBy"`
	TeamSize        int                      `json:"teamSize"`
	Description     string                   `json:"description"`
	Tasks           []TaskView               `json:"tasks"`
	AcceptedTaskIDs []string                 `json:"acceptedTaskIds"`
	Accepted        bool                     `json:"accepted"`
	Summary         aggregation.Summary      `json:"summary"`
	Counts          aggregation.StatusCounts `json:"counts"`
}

const dateLayout = "02/01/2006"

// GetProjectSummary assembles the dashboard payload for one project, with
// per-task acceptance resolved for viewerID (the requesting user). Upstream
// failures degrade their own section: unavailable task or acceptance data
// renders as an empty set, and a dead directory leaves raw user ids in place.
// Only a missing project is an error.
func (s *ProjectService) GetProjectSummary(ctx context.Context, id primitive.ObjectID, viewerID string) (*ProjectSummary, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.FindByProject(ctx, id.Hex())
	if err != nil {
		logging.Logger.Warnf("Event ID: TASK_FETCH_DEGRADED, Description: Tasks unavailable for project %s, rendering empty set: %v", id.Hex(), err)
		tasks = []models.Task{}
	}

	acceptances, err := s.acceptances.FindByProject(ctx, id.Hex())
	if err != nil {
		logging.Logger.Warnf("Event ID: ACCEPTANCE_FETCH_DEGRADED, Description: Acceptances unavailable for project %s, rendering empty set: %v", id.Hex(), err)
		acceptances = []models.TaskAcceptance{}
	}

	users := s.directory.Users(ctx)
	departments := s.directory.Departments(ctx)

	departmentName := "N/A"
	for _, d := range departments {
		if d.SectionID == project.Department {
			departmentName = d.SectionName
			break
		}
	}

	acceptedSet := aggregation.AcceptedTaskIDs(acceptances)
	acceptedIDs := make([]string, 0, len(acceptedSet))
	for _, t := range tasks {
		if acceptedSet[t.ID.Hex()] {
			acceptedIDs = append(acceptedIDs, t.ID.Hex())
		}
	}

	taskViews := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := TaskView{
			ID:            t.ID.Hex(),
			Title:         t.TaskName,
			AssignedUsers: aggregation.DisplayNames(t.AssignedUsers, users),
			AssignedBy:    t.AssignedBy,
			Status:        int(t.Status),
			Description:   t.Description,
			DueDate:       t.DueDate.Format(dateLayout),
			AssignedDate:  t.CreatedTime.Format(dateLayout),
			CompletedDate: "N/A",
		}
		if t.CompletedDate != nil {
			view.CompletedDate = t.CompletedDate.Format(dateLayout)
		}
		if acceptedSet[t.ID.Hex()] {
			view.AcceptanceState = aggregation.StateAccepted
		} else {
			view.AcceptanceState = aggregation.StatePending
		}
		view.ViewerAccepted = aggregation.TaskAcceptanceState(t.ID.Hex(), viewerID, acceptances) == aggregation.StateAccepted
		taskViews = append(taskViews, view)
	}

	assignedNames := aggregation.DisplayNames(project.AssignedUsers, users)

	return &ProjectSummary{
		ProjectName:     project.ProjectName,
		DepartmentName:  departmentName,
		Status:          int(project.Status),
		StatusName:      project.Status.String(),
		StartDate:       project.StartDate.Format(dateLayout),
		AssignedUsers:   assignedNames,
		AssignedBy:      project.AssignedBy,
		TeamSize:        len(assignedNames),
		Description:     project.Description,
		Tasks:           taskViews,
		AcceptedTaskIDs: acceptedIDs,
		Accepted:        aggregation.ProjectAccepted(acceptances),
		Summary:         aggregation.Compute(tasks),
		Counts:          aggregation.CountByStatus(tasks, acceptedSet),
	}, nil
}
