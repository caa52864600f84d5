package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deccan0963-netizen/Tasks/aggregation"
	"github.com/deccan0963-netizen/Tasks/logging"
	"github.com/deccan0963-netizen/Tasks/models"
	"github.com/deccan0963-netizen/Tasks/repositories"
)

// TaskService is the slice of the service layer the task endpoints use.
type TaskService interface {
	CreateTask(ctx context.Context, task *models.Task, createdBy string) (*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task, updatedBy string) (*models.Task, error)
	ChangeTaskStatus(ctx context.Context, taskID primitive.ObjectID, status models.StatusEnum, updatedBy string) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID primitive.ObjectID) error
	GetTaskByID(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error)
	GetAllTasks(ctx context.Context, limit int64) ([]models.Task, error)
	GetTasksByProject(ctx context.Context, projectID string) ([]models.Task, error)
}

type TaskHandler struct {
	service TaskService
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type taskRequest struct {
	ProjectID     string            `json:"projectId"`
	TaskName      string            `json:"title"`
	Department    int               `json:"department"`
	AssignedUsers interface{}       `json:"assignedUsers"`
	AssignedBy    string            `json:"assignedBy"`
	DueDate       time.Time         `json:"dueDate"`
	Description   string            `json:"description"`
	Status        models.StatusEnum `json:"status"`
}

func (req *taskRequest) toModel() *models.Task {
	return &models.Task{
		ProjectID:     req.ProjectID,
		TaskName:      req.TaskName,
		Department:    req.Department,
		AssignedUsers: aggregation.NormalizeUserList(req.AssignedUsers),
		AssignedBy:    req.AssignedBy,
		DueDate:       req.DueDate,
		Description:   req.Description,
		Status:        req.Status,
	}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid data")
		return
	}

	created, err := h.service.CreateTask(r.Context(), req.toModel(), requestUserID(r))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created on project %s", created.ID.Hex(), created.ProjectID)
	writeSuccess(w, http.StatusCreated, created)
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	limit := int64(0)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			writeFailure(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	tasks, err := h.service.GetAllTasks(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTasksByProjectID(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	projectID := muxVar(r, "projectId")
	if projectID == "" {
		writeFailure(w, http.StatusBadRequest, "Missing project ID")
		return
	}

	tasks, err := h.service.GetTasksByProject(r.Context(), projectID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	id, ok := pathObjectID(w, r, "taskID")
	if !ok {
		return
	}

	task, err := h.service.GetTaskByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Task not found.")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// ChangeTaskStatus moves one task through its lifecycle. Members drive this
// from the dashboard; the owning project's status follows automatically.
func (h *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	var req struct {
		TaskID string            `json:"taskId"`
		Status models.StatusEnum `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid data")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(req.TaskID)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	updated, err := h.service.ChangeTaskStatus(r.Context(), taskID, req.Status, requestUserID(r))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Task not found.")
			return
		}
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	logging.Logger.Infof("Event ID: TASK_STATUS_CHANGED, Description: Task %s moved to %s by %s", req.TaskID, updated.Status, requestUserID(r))
	writeSuccess(w, http.StatusOK, updated)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	id, ok := pathObjectID(w, r, "taskID")
	if !ok {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid data")
		return
	}

	task := req.toModel()
	task.ID = id

	updated, err := h.service.UpdateTask(r.Context(), task, requestUserID(r))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Task not found.")
			return
		}
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, updated)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	id, ok := pathObjectID(w, r, "taskID")
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Task not found.")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Task deleted successfully"})
}
