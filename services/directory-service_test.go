package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deccan0963-netizen/Tasks/cache"
	"github.com/deccan0963-netizen/Tasks/client"
	"github.com/deccan0963-netizen/Tasks/models"
)

func TestDirectoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("Given a healthy directory Then users are fetched once and then cached", func(t *testing.T) {
		hits := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			if r.Header.Get("X-Api-Key") != "k" {
				t.Errorf("missing api key header")
			}
			json.NewEncoder(w).Encode([]models.ApiUser{{ID: 7, UserName: "alice", IsActive: true}})
		}))
		defer srv.Close()

		svc := NewDirectoryService(client.NewHTTPClient("dir-test"), cache.NewTTL(time.Hour), srv.URL, "k")

		first := svc.Users(ctx)
		second := svc.Users(ctx)

		if len(first) != 1 || first[0].UserName != "alice" {
			t.Errorf("unexpected users: %v", first)
		}
		if len(second) != 1 {
			t.Errorf("unexpected cached users: %v", second)
		}
		if hits != 1 {
			t.Errorf("expected one upstream hit, got %d", hits)
		}
	})

	t.Run("Given a failing refresh Then stale data is served", func(t *testing.T) {
		healthy := true
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !healthy {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode([]models.ApiDepartment{{SectionID: 3, SectionName: "Engineering"}})
		}))
		defer srv.Close()

		ttlCache := cache.NewTTL(time.Nanosecond) // every entry expires immediately
		svc := NewDirectoryService(client.NewHTTPClient("dir-stale-test"), ttlCache, srv.URL, "")

		fresh := svc.Departments(ctx)
		if len(fresh) != 1 {
			t.Fatalf("expected one department, got %v", fresh)
		}

		healthy = false
		stale := svc.Departments(ctx)
		if len(stale) != 1 || stale[0].SectionName != "Engineering" {
			t.Errorf("expected stale fallback, got %v", stale)
		}
	})

	t.Run("Given a dead directory with no cache Then the list is empty, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		svc := NewDirectoryService(client.NewHTTPClient("dir-dead-test"), cache.NewTTL(time.Hour), srv.URL, "")

		if got := svc.Concerns(ctx); len(got) != 0 {
			t.Errorf("expected empty list, got %v", got)
		}
	})

	t.Run("Given distinct roles Then permissions cache per role", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("roleId") == "2" {
				json.NewEncoder(w).Encode([]models.RolePermission{{PrimaryActionName: "Projects", SecondaryActionName: "Create"}})
				return
			}
			json.NewEncoder(w).Encode([]models.RolePermission{})
		}))
		defer srv.Close()

		svc := NewDirectoryService(client.NewHTTPClient("dir-perm-test"), cache.NewTTL(time.Hour), srv.URL, "")

		manager := svc.RolePermissions(ctx, 2)
		member := svc.RolePermissions(ctx, 3)

		if len(manager) != 1 || manager[0].PrimaryActionName != "Projects" {
			t.Errorf("unexpected manager permissions: %v", manager)
		}
		if len(member) != 0 {
			t.Errorf("expected no member permissions, got %v", member)
		}
	})
}
