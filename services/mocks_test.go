package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/deccan0963-netizen/Tasks/models"
	"github.com/deccan0963-netizen/Tasks/repositories"
)

// In-memory stores standing in for the mongo repositories.

type mockProjectStore struct {
	projects     map[string]*models.Project
	statusWrites int
}

func newMockProjectStore() *mockProjectStore {
	return &mockProjectStore{projects: make(map[string]*models.Project)}
}

func (m *mockProjectStore) Insert(_ context.Context, p *models.Project) (*models.Project, error) {
	p.ID = primitive.NewObjectID()
	copied := *p
	m.projects[p.ID.Hex()] = &copied
	return p, nil
}

func (m *mockProjectStore) Update(_ context.Context, p *models.Project) error {
	if _, ok := m.projects[p.ID.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	copied := *p
	m.projects[p.ID.Hex()] = &copied
	return nil
}

func (m *mockProjectStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.StatusEnum) error {
	p, ok := m.projects[id.Hex()]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Status = status
	m.statusWrites++
	return nil
}

func (m *mockProjectStore) Delete(_ context.Context, id primitive.ObjectID) error {
	p, ok := m.projects[id.Hex()]
	if !ok || p.IsDeleted {
		return repositories.ErrNotFound
	}
	p.IsDeleted = true
	return nil
}

func (m *mockProjectStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	p, ok := m.projects[id.Hex()]
	if !ok || p.IsDeleted {
		return nil, repositories.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockProjectStore) FindAll(_ context.Context, _ int64) ([]models.Project, error) {
	var out []models.Project
	for _, p := range m.projects {
		if !p.IsDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProjectStore) FindByDepartment(_ context.Context, departmentID int) ([]models.Project, error) {
	var out []models.Project
	for _, p := range m.projects {
		if !p.IsDeleted && p.Department == departmentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type mockTaskStore struct {
	tasks   map[string]*models.Task
	findErr error
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: make(map[string]*models.Task)}
}

func (m *mockTaskStore) Insert(_ context.Context, t *models.Task) (*models.Task, error) {
	t.ID = primitive.NewObjectID()
	copied := *t
	m.tasks[t.ID.Hex()] = &copied
	return t, nil
}

func (m *mockTaskStore) Update(_ context.Context, t *models.Task) error {
	if _, ok := m.tasks[t.ID.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	copied := *t
	m.tasks[t.ID.Hex()] = &copied
	return nil
}

func (m *mockTaskStore) Delete(_ context.Context, id primitive.ObjectID) error {
	t, ok := m.tasks[id.Hex()]
	if !ok || t.IsDeleted {
		return repositories.ErrNotFound
	}
	t.IsDeleted = true
	return nil
}

func (m *mockTaskStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	t, ok := m.tasks[id.Hex()]
	if !ok || t.IsDeleted {
		return nil, repositories.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *mockTaskStore) FindAll(_ context.Context, _ int64) ([]models.Task, error) {
	var out []models.Task
	for _, t := range m.tasks {
		if !t.IsDeleted {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTaskStore) FindByProject(_ context.Context, projectID string) ([]models.Task, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.Task
	for _, t := range m.tasks {
		if !t.IsDeleted && t.ProjectID == projectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type mockAcceptanceStore struct {
	records []models.TaskAcceptance
	tasks   *mockTaskStore

	// forceExistsMiss simulates a racing accept that slipped past the
	// existence check before the winner's record landed.
	forceExistsMiss bool
}

func newMockAcceptanceStore(tasks *mockTaskStore) *mockAcceptanceStore {
	return &mockAcceptanceStore{tasks: tasks}
}

func (m *mockAcceptanceStore) Exists(_ context.Context, taskID, userID string) (bool, error) {
	if m.forceExistsMiss {
		return false, nil
	}
	for _, r := range m.records {
		if r.TaskID == taskID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAcceptanceStore) Insert(_ context.Context, a *models.TaskAcceptance) (*models.TaskAcceptance, error) {
	// Same uniqueness the store's (taskId, userId) index enforces.
	for _, r := range m.records {
		if r.TaskID == a.TaskID && r.UserID == a.UserID {
			return nil, repositories.ErrDuplicate
		}
	}
	a.ID = primitive.NewObjectID()
	m.records = append(m.records, *a)
	return a, nil
}

func (m *mockAcceptanceStore) FindByUser(_ context.Context, userID string) ([]models.TaskAcceptance, error) {
	var out []models.TaskAcceptance
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockAcceptanceStore) FindByProject(_ context.Context, projectID string) ([]models.TaskAcceptance, error) {
	var out []models.TaskAcceptance
	for _, r := range m.records {
		task, ok := m.tasks.tasks[r.TaskID]
		if ok && !task.IsDeleted && task.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockDirectory struct {
	users       []models.ApiUser
	departments []models.ApiDepartment
	concerns    []models.ApiConcern
	permissions []models.RolePermission
}

func (m *mockDirectory) Users(context.Context) []models.ApiUser { return m.users }
func (m *mockDirectory) Departments(context.Context) []models.ApiDepartment {
	return m.departments
}
func (m *mockDirectory) Concerns(context.Context) []models.ApiConcern { return m.concerns }
func (m *mockDirectory) RolePermissions(context.Context, int) []models.RolePermission {
	return m.permissions
}

var errStoreDown = fmt.Errorf("store unavailable")
