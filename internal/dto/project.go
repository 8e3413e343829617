package dto

import "time"

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Client      string  `json:"client" binding:"max=200"`
	DueDate     DueDate `json:"due_date"` // optional: "2026-02-19" or RFC3339
}

// UpdateProjectRequest carries the patch for PUT /projects/:id. Fields are
// plain values on purpose: an empty string means "keep the stored value",
// matching the API the frontend was built against. See also UpdateTaskRequest.
type UpdateProjectRequest struct {
	Name        string  `json:"name" binding:"max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Client      string  `json:"client" binding:"max=200"`
	DueDate     DueDate `json:"due_date"`
}

// CollaboratorEmailRequest is the body for collaborator lookup and add.
type CollaboratorEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RemoveCollaboratorRequest is the body for POST /projects/remove-collaborator/:id.
type RemoveCollaboratorRequest struct {
	ID int64 `json:"id" binding:"required"`
}

type ProjectResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Client      string     `json:"client"`
	DueDate     *time.Time `json:"due_date"`
	Creator     int64      `json:"creator"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProjectDetailResponse is the hydrated single-project view: collaborators
// with name/email and tasks with their completed-by identity.
type ProjectDetailResponse struct {
	ProjectResponse
	Collaborators []UserResponse `json:"collaborators"`
	Tasks         []TaskResponse `json:"tasks"`
}

type ListProjectsResponse struct {
	Items []ProjectResponse `json:"items"`
}
