package dto

import "time"

type CreateTaskRequest struct {
	Project     int64   `json:"project" binding:"required"`
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Priority    string  `json:"priority" binding:"required,oneof=low medium high"`
	DueDate     DueDate `json:"due_date"`
}

// UpdateTaskRequest carries the patch for PUT /tasks/:id. Empty string =
// keep stored value (same contract as UpdateProjectRequest).
type UpdateTaskRequest struct {
	Name        string  `json:"name" binding:"max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     DueDate `json:"due_date"`
}

// CompletedByResponse identifies who last toggled a task's state.
type CompletedByResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TaskResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Priority    string               `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
	Done        bool                 `json:"done"`
	Project     int64                `json:"project"`
	CompletedBy *CompletedByResponse `json:"completed_by"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// TaskDetailResponse is the hydrated single-task view returned by task
// reads and the state toggle: the project key carries the populated project
// instead of a bare id.
type TaskDetailResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Priority    string               `json:"priority"`
	DueDate     *time.Time           `json:"due_date"`
	Done        bool                 `json:"done"`
	Project     ProjectResponse      `json:"project"`
	CompletedBy *CompletedByResponse `json:"completed_by"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
