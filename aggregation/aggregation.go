// Package aggregation derives project status, progress and acceptance state
// from raw task and acceptance records. It is the single implementation used
// by every caller: the HTTP layer serves its output and re-runs it after each
// mutation, so the displayed figures can never drift from the stored data.
package aggregation

import (
	"math"
	"strconv"
	"strings"

	"github.com/deccan0963-netizen/Tasks/models"
)

// Summary is the derived, never-persisted state of one project's task set.
type Summary struct {
	TotalTasks      int  `json:"totalTasks"`
	CompletedTasks  int  `json:"completedTasks"`
	ProgressPercent int  `json:"progressPercent"`
	FullyCompleted  bool `json:"fullyCompleted"`
}

// Compute builds the summary for a project's tasks. A task counts as completed
// only when its status code is StatusCompleted; no other encoding is honored.
// FullyCompleted requires at least one task, so a project whose task data is
// missing or empty can never read as finished.
func Compute(tasks []models.Task) Summary {
	s := Summary{TotalTasks: len(tasks)}
	for _, t := range tasks {
		if t.Status == models.StatusCompleted {
			s.CompletedTasks++
		}
	}
	if s.TotalTasks > 0 {
		s.ProgressPercent = int(math.Floor(float64(s.CompletedTasks)/float64(s.TotalTasks)*100 + 0.5))
		s.FullyCompleted = s.CompletedTasks == s.TotalTasks
	}
	return s
}

// NextStatus returns the status a project should display given its stored
// status and the current task summary. Promotion to Completed happens only
// when the task set is fully completed; the reverse transition corrects a
// stored Completed that the task data no longer supports. Re-running the
// derivation on an already-correct status returns the same value.
func NextStatus(stored models.StatusEnum, s Summary) models.StatusEnum {
	if s.FullyCompleted && stored != models.StatusCompleted {
		return models.StatusCompleted
	}
	if !s.FullyCompleted && stored == models.StatusCompleted {
		return models.StatusActive
	}
	return stored
}

// StatusCounts buckets a project's tasks for the dashboard cards. A task that
// has been accepted but not started yet is shown as in progress.
type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

func CountByStatus(tasks []models.Task, acceptedTaskIDs map[string]bool) StatusCounts {
	var c StatusCounts
	for _, t := range tasks {
		switch {
		case t.Status == models.StatusCompleted:
			c.Completed++
		case t.Status == models.StatusInProgress || acceptedTaskIDs[t.ID.Hex()]:
			c.InProgress++
		default:
			c.Pending++
		}
	}
	return c
}

// Acceptance display states for a (task, user) pair.
const (
	StateAccepted = "Accepted"
	StatePending  = "Pending"
)

// AcceptedTaskIDs collapses acceptance records to the set of accepted task ids.
func AcceptedTaskIDs(acceptances []models.TaskAcceptance) map[string]bool {
	ids := make(map[string]bool, len(acceptances))
	for _, a := range acceptances {
		ids[a.TaskID] = true
	}
	return ids
}

// TaskAcceptanceState classifies one (task, user) pair: the user is Accepted
// exactly when an acceptance record exists for that task and user.
func TaskAcceptanceState(taskID, userID string, acceptances []models.TaskAcceptance) string {
	for _, a := range acceptances {
		if a.TaskID == taskID && a.UserID == userID {
			return StateAccepted
		}
	}
	return StatePending
}

// ProjectAccepted reports the coarse project-level acceptance: true when any
// acceptance record exists for the project's tasks. This is independent of
// per-task acceptance and must not be conflated with it.
func ProjectAccepted(acceptances []models.TaskAcceptance) bool {
	return len(acceptances) > 0
}

// NormalizeUserList accepts the assigned-user encodings seen on the wire
// (a plain array, a wrapped {"values": [...]} envelope, a comma-delimited
// string, or a single scalar) and reduces them to trimmed, non-empty string
// identifiers in their original order. Unknown shapes degrade to an empty
// list; this function never fails.
func NormalizeUserList(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanUsers(v)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := scalarString(e); ok {
				out = append(out, s)
			}
		}
		return cleanUsers(out)
	case map[string]interface{}:
		if inner, ok := v["values"]; ok {
			return NormalizeUserList(inner)
		}
		return []string{}
	case string:
		if strings.Contains(v, ",") {
			return cleanUsers(strings.Split(v, ","))
		}
		return cleanUsers([]string{v})
	default:
		if s, ok := scalarString(raw); ok {
			return cleanUsers([]string{s})
		}
		return []string{}
	}
}

// NormalizeTaskList tolerates task collections arriving either as a plain
// sequence or as an enveloped object with a nested values collection, a
// serialization artifact of the system this one replaced. Anything else is
// treated as no tasks.
func NormalizeTaskList(raw interface{}) []models.Task {
	switch v := raw.(type) {
	case nil:
		return []models.Task{}
	case []models.Task:
		return v
	case map[string]interface{}:
		if inner, ok := v["values"]; ok {
			return NormalizeTaskList(inner)
		}
		return []models.Task{}
	default:
		return []models.Task{}
	}
}

// DisplayNames translates user identifiers to directory user names for
// rendering. Entries may already be names; anything the directory does not
// know is passed through unchanged.
func DisplayNames(ids []string, users []models.ApiUser) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		name := id
		for _, u := range users {
			if strconv.Itoa(u.ID) == id || u.UserName == id {
				name = u.UserName
				break
			}
		}
		out = append(out, name)
	}
	return out
}

func cleanUsers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func scalarString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		// JSON numbers decode to float64; ids are whole numbers.
		return strconv.Itoa(int(s)), true
	case int:
		return strconv.Itoa(s), true
	default:
		return "", false
	}
}

