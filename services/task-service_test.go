package services

import (
	"context"
	"testing"
	"time"

	"github.com/deccan0963-netizen/Tasks/models"
)

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Given no status When created Then task defaults to Pending", func(t *testing.T) {
		f := newFixture()
		p := f.addProject(t, models.StatusActive)

		task, err := f.taskSvc.CreateTask(ctx, &models.Task{
			ProjectID:  p.ID.Hex(),
			TaskName:   "unspecified",
			AssignedBy: "supervisor",
			DueDate:    time.Now().Add(24 * time.Hour),
			Status:     models.StatusEnum(-1),
		}, "1")
		if err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
		if task.Status != models.StatusPending {
			t.Errorf("expected Pending, got %v", task.Status)
		}
	})

	t.Run("Given a task created as Completed Then completed date is stamped", func(t *testing.T) {
		f := newFixture()
		p := f.addProject(t, models.StatusActive)

		task := f.addTask(t, p.ID.Hex(), models.StatusCompleted)
		if task.CompletedDate == nil {
			t.Fatal("expected completed date on a Completed task")
		}
	})

	t.Run("Given a completed task When reopened Then completed date is cleared", func(t *testing.T) {
		f := newFixture()
		p := f.addProject(t, models.StatusActive)
		task := f.addTask(t, p.ID.Hex(), models.StatusCompleted)

		updated, err := f.taskSvc.ChangeTaskStatus(ctx, task.ID, models.StatusInProgress, "7")
		if err != nil {
			t.Fatalf("ChangeTaskStatus failed: %v", err)
		}
		if updated.CompletedDate != nil {
			t.Error("completed date must be cleared when leaving Completed")
		}
		if updated.Status != models.StatusInProgress {
			t.Errorf("expected In Progress, got %v", updated.Status)
		}
	})

	t.Run("Given a pending task When completed Then date is set exactly once", func(t *testing.T) {
		f := newFixture()
		p := f.addProject(t, models.StatusActive)
		task := f.addTask(t, p.ID.Hex(), models.StatusPending)

		first, err := f.taskSvc.ChangeTaskStatus(ctx, task.ID, models.StatusCompleted, "7")
		if err != nil {
			t.Fatalf("ChangeTaskStatus failed: %v", err)
		}
		if first.CompletedDate == nil {
			t.Fatal("expected completed date")
		}
		stamp := *first.CompletedDate

		second, err := f.taskSvc.ChangeTaskStatus(ctx, task.ID, models.StatusCompleted, "7")
		if err != nil {
			t.Fatalf("ChangeTaskStatus failed: %v", err)
		}
		if second.CompletedDate == nil || !second.CompletedDate.Equal(stamp) {
			t.Error("completed date must not move on a repeated Completed write")
		}
	})

	t.Run("Given an unknown project When task created Then it fails", func(t *testing.T) {
		f := newFixture()
		_, err := f.taskSvc.CreateTask(ctx, &models.Task{
			ProjectID: "000000000000000000000000",
			TaskName:  "orphan",
			DueDate:   time.Now(),
		}, "1")
		if err == nil {
			t.Error("expected error for unknown project")
		}
	})

	t.Run("Given an invalid status code When changed Then it fails", func(t *testing.T) {
		f := newFixture()
		p := f.addProject(t, models.StatusActive)
		task := f.addTask(t, p.ID.Hex(), models.StatusPending)

		if _, err := f.taskSvc.ChangeTaskStatus(ctx, task.ID, models.StatusEnum(9), "7"); err == nil {
			t.Error("expected error for invalid status")
		}
	})

	t.Run("Given a deleted task When listed by project Then it is gone but rows survive", func(t *testing.T) {
		f := newFixture()
		p := f.addProject(t, models.StatusActive)
		task := f.addTask(t, p.ID.Hex(), models.StatusPending)

		if err := f.taskSvc.DeleteTask(ctx, task.ID); err != nil {
			t.Fatalf("DeleteTask failed: %v", err)
		}

		tasks, err := f.taskSvc.GetTasksByProject(ctx, p.ID.Hex())
		if err != nil {
			t.Fatalf("GetTasksByProject failed: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("expected no visible tasks, got %d", len(tasks))
		}
		if stored := f.tasks.tasks[task.ID.Hex()]; stored == nil || !stored.IsDeleted {
			t.Error("record must survive as soft-deleted")
		}
	})

	t.Run("Given the last pending task deleted When project resyncs Then it promotes", func(t *testing.T) {
		f := newFixture()
		p := f.addProject(t, models.StatusActive)
		f.addTask(t, p.ID.Hex(), models.StatusCompleted)
		pending := f.addTask(t, p.ID.Hex(), models.StatusPending)

		if err := f.taskSvc.DeleteTask(ctx, pending.ID); err != nil {
			t.Fatalf("DeleteTask failed: %v", err)
		}

		stored, _ := f.projects.FindByID(ctx, p.ID)
		if stored.Status != models.StatusCompleted {
			t.Errorf("expected promotion after deleting the only unfinished task, got %v", stored.Status)
		}
	})

	t.Run("Given comma-joined assignees When created Then they are normalized", func(t *testing.T) {
		f := newFixture()
		p := f.addProject(t, models.StatusActive)

		task, err := f.taskSvc.CreateTask(ctx, &models.Task{
			ProjectID:     p.ID.Hex(),
			TaskName:      "legacy encoding",
			AssignedUsers: []string{" 7 ", "", "9"},
			AssignedBy:    "supervisor",
			DueDate:       time.Now().Add(24 * time.Hour),
		}, "1")
		if err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
		if len(task.AssignedUsers) != 2 || task.AssignedUsers[0] != "7" || task.AssignedUsers[1] != "9" {
			t.Errorf("expected trimmed non-empty assignees, got %v", task.AssignedUsers)
		}
	})
}
