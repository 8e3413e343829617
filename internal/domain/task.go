package domain

import "time"

// Task priorities accepted from clients.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task always belongs to exactly one project; ProjectID is immutable.
// CompletedByID records the identity that last toggled Done, in either
// direction. It is not a completion audit log.
type Task struct {
	ID          int64
	Name        string
	Description string
	Priority    string
	DueDate     *time.Time
	Done        bool
	ProjectID   int64

	CompletedByID   *int64
	CompletedByName string

	// Project is hydrated on single-task reads.
	Project *Project

	CreatedAt time.Time
	UpdatedAt time.Time
}
