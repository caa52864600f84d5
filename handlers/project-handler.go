package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deccan0963-netizen/Tasks/aggregation"
	"github.com/deccan0963-netizen/Tasks/logging"
	"github.com/deccan0963-netizen/Tasks/models"
	"github.com/deccan0963-netizen/Tasks/repositories"
	"github.com/deccan0963-netizen/Tasks/services"
)

// ProjectService is the slice of the service layer the project endpoints use.
type ProjectService interface {
	CreateProject(ctx context.Context, project *models.Project, createdBy string) (*models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project, updatedBy string) (*models.Project, error)
	DeleteProject(ctx context.Context, id primitive.ObjectID) error
	GetProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	GetAllProjects(ctx context.Context, limit int64) ([]models.Project, error)
	GetProjectsByDepartment(ctx context.Context, departmentID int) ([]models.Project, error)
	GetProjectSummary(ctx context.Context, id primitive.ObjectID, viewerID string) (*services.ProjectSummary, error)
}

type ProjectHandler struct {
	service ProjectService
}

func NewProjectHandler(service ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// projectRequest mirrors models.Project but takes assignedUsers as whatever
// shape the caller sends: an array, an envelope object, a comma-joined string
// or a single scalar all decode here and normalize to a flat id list.
type projectRequest struct {
	ProjectName   string            `json:"projectName"`
	Department    int               `json:"department"`
	ConcernID     int               `json:"concernId"`
	AssignedUsers interface{}       `json:"assignedUsers"`
	AssignedBy    string            `json:"assignedBy"`
	Client        string            `json:"client"`
	StartDate     time.Time         `json:"startDate"`
	EndDate       *time.Time        `json:"endDate"`
	Description   string            `json:"description"`
	Status        models.StatusEnum `json:"status"`
}

func (req *projectRequest) toModel() *models.Project {
	return &models.Project{
		ProjectName:   req.ProjectName,
		Department:    req.Department,
		ConcernID:     req.ConcernID,
		AssignedUsers: aggregation.NormalizeUserList(req.AssignedUsers),
		AssignedBy:    req.AssignedBy,
		Client:        req.Client,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Description:   req.Description,
		Status:        req.Status,
	}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid data")
		return
	}

	created, err := h.service.CreateProject(r.Context(), req.toModel(), requestUserID(r))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created by %s", created.ID.Hex(), requestUserID(r))
	writeSuccess(w, http.StatusCreated, created)
}

func (h *ProjectHandler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	if dept := r.URL.Query().Get("department"); dept != "" {
		departmentID, err := strconv.Atoi(dept)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "Invalid department ID")
			return
		}
		projects, err := h.service.GetProjectsByDepartment(r.Context(), departmentID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, projects)
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

	projects, err := h.service.GetAllProjects(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.service.GetProjectByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Project not found.")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// GetProjectDetails serves the aggregated dashboard payload for one project.
func (h *ProjectHandler) GetProjectDetails(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.service.GetProjectSummary(r.Context(), id, requestUserID(r))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Project not found.")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeSuccess(w, http.StatusOK, summary)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid data")
		return
	}

	project := req.toModel()
	project.ID = id

	updated, err := h.service.UpdateProject(r.Context(), project, requestUserID(r))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Project not found.")
			return
		}
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	writeSuccess(w, http.StatusOK, updated)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}

	id, ok := pathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProject(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Project not found.")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted by %s", id.Hex(), requestUserID(r))
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Project deleted successfully"})
}

// requestUserID reads the acting user set by the auth middleware. An empty
// value means the record keeps blank audit fields rather than failing.
func requestUserID(r *http.Request) string {
	return r.Header.Get("UserId")
}

func pathObjectID(w http.ResponseWriter, r *http.Request, key string) (primitive.ObjectID, bool) {
	raw := mux.Vars(r)[key]
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}
