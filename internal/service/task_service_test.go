package service

import (
	"context"
	"testing"
	"time"

	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *projectFixture) newTask(t *testing.T, projectID int64, name string) dom.Task {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), f.creator.ID, dom.Task{
		Name:      name,
		Priority:  dom.PriorityMedium,
		ProjectID: projectID,
	})
	require.NoError(t, err)
	return task
}

func TestTaskCreateAuthorization(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p := f.newProject(t, "Website")
	require.NoError(t, f.svc.AddCollaborator(ctx, f.creator.ID, p.ID, "u@x.com"))

	_, err := f.tasks.Create(ctx, f.creator.ID, dom.Task{Name: "setup", Priority: dom.PriorityLow, ProjectID: 999})
	assert.ErrorIs(t, err, ErrNotFound, "missing project wins over permissions")

	_, err = f.tasks.Create(ctx, f.collab.ID, dom.Task{Name: "setup", Priority: dom.PriorityLow, ProjectID: p.ID})
	assert.ErrorIs(t, err, ErrForbidden, "collaborators cannot create tasks")

	task, err := f.tasks.Create(ctx, f.creator.ID, dom.Task{Name: "  setup  ", Priority: dom.PriorityLow, ProjectID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, "setup", task.Name)
}

func TestTaskGet(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p := f.newProject(t, "Website")
	require.NoError(t, f.svc.AddCollaborator(ctx, f.creator.ID, p.ID, "u@x.com"))
	task := f.newTask(t, p.ID, "setup")

	got, err := f.tasks.Get(ctx, f.collab.ID, task.ID)
	require.NoError(t, err, "collaborator may view")
	require.NotNil(t, got.Project)
	assert.Equal(t, p.ID, got.Project.ID)

	_, err = f.tasks.Get(ctx, f.outsider.ID, task.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.tasks.Get(ctx, f.creator.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskUpdateKeepsUnsuppliedFields(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p := f.newProject(t, "Website")
	require.NoError(t, f.svc.AddCollaborator(ctx, f.creator.ID, p.ID, "u@x.com"))
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	task, err := f.tasks.Create(ctx, f.creator.ID, dom.Task{
		Name: "setup", Description: "install deps", Priority: dom.PriorityLow, DueDate: &due, ProjectID: p.ID,
	})
	require.NoError(t, err)

	updated, err := f.tasks.Update(ctx, f.creator.ID, task.ID, TaskPatch{Priority: dom.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, "setup", updated.Name)
	assert.Equal(t, "install deps", updated.Description)
	assert.Equal(t, dom.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.DueDate)
	assert.True(t, due.Equal(*updated.DueDate))

	_, err = f.tasks.Update(ctx, f.collab.ID, task.ID, TaskPatch{Name: "nope"})
	assert.ErrorIs(t, err, ErrForbidden, "collaborators cannot edit tasks")
}

func TestTaskDelete(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p := f.newProject(t, "Website")
	require.NoError(t, f.svc.AddCollaborator(ctx, f.creator.ID, p.ID, "u@x.com"))
	task := f.newTask(t, p.ID, "setup")

	assert.ErrorIs(t, f.tasks.Delete(ctx, f.collab.ID, task.ID), ErrForbidden)
	require.NoError(t, f.tasks.Delete(ctx, f.creator.ID, task.ID))
	assert.ErrorIs(t, f.tasks.Delete(ctx, f.creator.ID, task.ID), ErrNotFound)

	got, err := f.svc.Get(ctx, f.creator.ID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tasks)
}

func TestToggleStateStampsActorBothDirections(t *testing.T) {
	f := newProjectFixture(t)
	ctx := context.Background()
	p := f.newProject(t, "Website")
	require.NoError(t, f.svc.AddCollaborator(ctx, f.creator.ID, p.ID, "u@x.com"))
	task := f.newTask(t, p.ID, "setup")

	_, err := f.tasks.ToggleState(ctx, f.outsider.ID, task.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// A collaborator completes the task.
	done, err := f.tasks.ToggleState(ctx, f.collab.ID, task.ID)
	require.NoError(t, err)
	assert.True(t, done.Done)
	require.NotNil(t, done.CompletedByID)
	assert.Equal(t, f.collab.ID, *done.CompletedByID)
	assert.Equal(t, f.collab.Name, done.CompletedByName)
	require.NotNil(t, done.Project)
	assert.Equal(t, p.ID, done.Project.ID)

	// The creator reopens it; the stamp moves to the reopening actor.
	reopened, err := f.tasks.ToggleState(ctx, f.creator.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, reopened.Done)
	require.NotNil(t, reopened.CompletedByID)
	assert.Equal(t, f.creator.ID, *reopened.CompletedByID)
	assert.Equal(t, f.creator.Name, reopened.CompletedByName)
}
