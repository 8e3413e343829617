package domain

import "time"

// Domain entity: бизнес-объект (истина).
// Не зависит от Gin, Postgres, Redis.
//
// CreatorID is immutable after creation. CollaboratorIDs never contains
// CreatorID. Collaborators and Tasks are hydrated only where a handler
// needs the detail view.
type Project struct {
	ID          int64
	Name        string
	Description string
	Client      string
	DueDate     *time.Time
	CreatorID   int64

	CollaboratorIDs []int64
	Collaborators   []User
	Tasks           []Task

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCollaborator reports whether userID is in the collaborator set.
func (p Project) HasCollaborator(userID int64) bool {
	for _, id := range p.CollaboratorIDs {
		if id == userID {
			return true
		}
	}
	return false
}
