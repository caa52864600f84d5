package services

import (
	"context"
	"fmt"

	"github.com/deccan0963-netizen/Tasks/cache"
	"github.com/deccan0963-netizen/Tasks/client"
	"github.com/deccan0963-netizen/Tasks/logging"
	"github.com/deccan0963-netizen/Tasks/models"
)

// DirectoryService resolves users, departments, concerns and role permissions
// from the external privilege directory. Results are held in an injected TTL
// cache; a failed refresh serves the last known data or an empty list, so a
// dead directory degrades its own section of the page and nothing else.
type DirectoryService struct {
	client  *client.HTTPClient
	cache   *cache.TTL
	baseURL string
	apiKey  string
}

func NewDirectoryService(httpClient *client.HTTPClient, ttlCache *cache.TTL, baseURL, apiKey string) *DirectoryService {
	return &DirectoryService{
		client:  httpClient,
		cache:   ttlCache,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (s *DirectoryService) Users(ctx context.Context) []models.ApiUser {
	return loadList[models.ApiUser](ctx, s, "users", s.baseURL+"/User/Get-All-Users")
}

func (s *DirectoryService) Departments(ctx context.Context) []models.ApiDepartment {
	return loadList[models.ApiDepartment](ctx, s, "departments", s.baseURL+"/Department/Get-All-Sections")
}

func (s *DirectoryService) Concerns(ctx context.Context) []models.ApiConcern {
	return loadList[models.ApiConcern](ctx, s, "concerns", s.baseURL+"/Concern/Get-All-Concerns")
}

func (s *DirectoryService) RolePermissions(ctx context.Context, roleID int) []models.RolePermission {
	key := fmt.Sprintf("role-permissions-%d", roleID)
	url := fmt.Sprintf("%s/Privilege/Get-privileges-By-Role-Id?roleId=%d", s.baseURL, roleID)
	return loadList[models.RolePermission](ctx, s, key, url)
}

// loadList serves key from the cache when fresh, otherwise fetches url and
// caches the result. On failure it falls back to stale cached data, then to
// an empty list. It never returns an error.
func loadList[T any](ctx context.Context, s *DirectoryService, key, url string) []T {
	if cached, ok := s.cache.Get(key); ok {
		if v, ok := cached.([]T); ok {
			return v
		}
	}

	var fresh []T
	if err := s.client.GetJSON(ctx, url, s.apiKey, &fresh); err != nil {
		logging.Logger.Warnf("Event ID: DIRECTORY_FETCH_FAILED, Description: Failed to load %s from directory: %v", key, err)
		if stale, ok := s.cache.GetStale(key); ok {
			if v, ok := stale.([]T); ok {
				return v
			}
		}
		return []T{}
	}

	if fresh == nil {
		fresh = []T{}
	}
	s.cache.Set(key, fresh)
	return fresh
}
