package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/deccan0963-netizen/Tasks/models"
	"github.com/deccan0963-netizen/Tasks/repositories"
	"github.com/deccan0963-netizen/Tasks/services"
)

// AcceptanceService is the slice of the service layer the accept endpoints use.
type AcceptanceService interface {
	AcceptTask(ctx context.Context, taskID, userID string) (*services.AcceptResult, error)
	GetByUser(ctx context.Context, userID string) ([]models.TaskAcceptance, error)
	GetAcceptedTaskIDsForProject(ctx context.Context, projectID string) ([]string, error)
}

type AcceptanceHandler struct {
	service AcceptanceService
}

func NewAcceptanceHandler(service AcceptanceService) *AcceptanceHandler {
	return &AcceptanceHandler{service: service}
}

// AcceptTask records that the calling user accepted a task. A repeat accept is
// reported as success so the dashboard button stays safe to double-click.
func (h *AcceptanceHandler) AcceptTask(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	var req struct {
		TaskID string `json:"taskId"`
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid data")
		return
	}
	if req.TaskID == "" || req.UserID == "" {
		writeFailure(w, http.StatusBadRequest, "Invalid data")
		return
	}

	result, err := h.service.AcceptTask(r.Context(), req.TaskID, req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Task not found.")
			return
		}
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AcceptanceHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	userID := muxVar(r, "userId")
	if userID == "" {
		writeFailure(w, http.StatusBadRequest, "Missing user ID")
		return
	}

	acceptances, err := h.service.GetByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, acceptances)
}

// GetAcceptedForProject serves the accepted task ids for one project, used by
// the dashboard to refresh accept buttons without reloading the whole summary.
func (h *AcceptanceHandler) GetAcceptedForProject(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	projectID := muxVar(r, "projectId")
	if projectID == "" {
		writeFailure(w, http.StatusBadRequest, "Missing project ID")
		return
	}

	ids, err := h.service.GetAcceptedTaskIDsForProject(r.Context(), projectID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeSuccess(w, http.StatusOK, ids)
}
