package models

// StatusEnum is the shared lifecycle code for projects and tasks.
type StatusEnum int

const (
	StatusActive     StatusEnum = 0
	StatusPending    StatusEnum = 1
	StatusInProgress StatusEnum = 2
	StatusCompleted  StatusEnum = 3
)

// String returns the display name for a status code.
func (s StatusEnum) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the defined status codes.
func (s StatusEnum) Valid() bool {
	return s >= StatusActive && s <= StatusCompleted
}
