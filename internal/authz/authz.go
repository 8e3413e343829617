// Package authz holds the pure access decisions for projects and tasks.
// Callers resolve the project (and its collaborator set) first; missing
// resources are reported as not-found before any decision here is consulted.
package authz

import dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"

// CanView allows the creator and every collaborator. Covers viewing a
// project, viewing its tasks, and toggling task state.
func CanView(actorID int64, p dom.Project) bool {
	return actorID == p.CreatorID || p.HasCollaborator(actorID)
}

// CanManage allows only the creator. Covers editing or deleting the
// project, creating/editing/deleting its tasks, and collaborator changes.
// A collaborator is never enough here.
func CanManage(actorID int64, p dom.Project) bool {
	return actorID == p.CreatorID
}
