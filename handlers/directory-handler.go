package handlers

import (
	"net/http"

	"github.com/deccan0963-netizen/Tasks/services"
)

// DirectoryHandler exposes the cached user, department and concern lists so the
// dashboard can populate its pickers without talking to the privilege service.
type DirectoryHandler struct {
	directory services.Directory
}

func NewDirectoryHandler(directory services.Directory) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

func (h *DirectoryHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, h.directory.Users(r.Context()))
}

func (h *DirectoryHandler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, h.directory.Departments(r.Context()))
}

func (h *DirectoryHandler) GetConcerns(w http.ResponseWriter, r *http.Request) {
	if err := checkRole(r, []string{RoleManager, RoleMember}); err != nil {
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return
	}
	writeJSON(w, http.StatusOK, h.directory.Concerns(r.Context()))
}
