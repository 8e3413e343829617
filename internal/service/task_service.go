package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/authz"
	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/repo"

	"github.com/jackc/pgx/v5"
)

// TaskPatch is the edit payload; same "empty means keep" merge contract as
// ProjectPatch.
type TaskPatch struct {
	Name        string
	Description string
	Priority    string
	DueDate     *time.Time
}

type TaskService struct {
	repo     repo.TaskRepo
	projects repo.ProjectRepo
	log      *slog.Logger
}

func NewTaskService(r repo.TaskRepo, projects repo.ProjectRepo, log *slog.Logger) *TaskService {
	return &TaskService{repo: r, projects: projects, log: log}
}

func (s *TaskService) getTask(ctx context.Context, id int64) (dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	return t, nil
}

// taskProject loads the owning project. The FK guarantees it exists as long
// as the task does.
func (s *TaskService) taskProject(ctx context.Context, t dom.Task) (dom.Project, error) {
	p, err := s.projects.GetByID(ctx, t.ProjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Project{}, ErrNotFound
		}
		return dom.Project{}, err
	}
	return p, nil
}

// Create adds a task to a project. Only the project creator may do this;
// the project existence check comes first so a missing project is a 404,
// not a 403.
func (s *TaskService) Create(ctx context.Context, actorID int64, t dom.Task) (dom.Task, error) {
	p, err := s.projects.GetByID(ctx, t.ProjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	if !authz.CanManage(actorID, p) {
		return dom.Task{}, ErrForbidden
	}
	t.Name = strings.TrimSpace(t.Name)
	t.Description = strings.TrimSpace(t.Description)
	return s.repo.Create(ctx, t)
}

// Get returns the task hydrated with its project. Collaborators may view.
func (s *TaskService) Get(ctx context.Context, actorID, id int64) (dom.Task, error) {
	t, err := s.getTask(ctx, id)
	if err != nil {
		return dom.Task{}, err
	}
	p, err := s.taskProject(ctx, t)
	if err != nil {
		return dom.Task{}, err
	}
	if !authz.CanView(actorID, p) {
		return dom.Task{}, ErrForbidden
	}
	t.Project = &p
	return t, nil
}

// Update applies the patch for the project creator.
func (s *TaskService) Update(ctx context.Context, actorID, id int64, patch TaskPatch) (dom.Task, error) {
	t, err := s.getTask(ctx, id)
	if err != nil {
		return dom.Task{}, err
	}
	p, err := s.taskProject(ctx, t)
	if err != nil {
		return dom.Task{}, err
	}
	if !authz.CanManage(actorID, p) {
		return dom.Task{}, ErrForbidden
	}
	if v := strings.TrimSpace(patch.Name); v != "" {
		t.Name = v
	}
	if v := strings.TrimSpace(patch.Description); v != "" {
		t.Description = v
	}
	if v := strings.TrimSpace(patch.Priority); v != "" {
		t.Priority = v
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return dom.Task{}, err
	}
	updated.Project = &p
	return updated, nil
}

// Delete removes the task for the project creator. Deleting the row also
// removes it from the project's task sequence.
func (s *TaskService) Delete(ctx context.Context, actorID, id int64) error {
	t, err := s.getTask(ctx, id)
	if err != nil {
		return err
	}
	p, err := s.taskProject(ctx, t)
	if err != nil {
		return err
	}
	if !authz.CanManage(actorID, p) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// ToggleState flips done and stamps completed-by with the actor, both
// directions. Creator and collaborators may toggle. The task is re-read
// after the write so the response carries the hydrated completed-by
// identity and project.
func (s *TaskService) ToggleState(ctx context.Context, actorID, id int64) (dom.Task, error) {
	t, err := s.getTask(ctx, id)
	if err != nil {
		return dom.Task{}, err
	}
	p, err := s.taskProject(ctx, t)
	if err != nil {
		return dom.Task{}, err
	}
	if !authz.CanView(actorID, p) {
		return dom.Task{}, ErrForbidden
	}
	if err := s.repo.SetState(ctx, id, !t.Done, actorID); err != nil {
		return dom.Task{}, err
	}
	stored, err := s.getTask(ctx, id)
	if err != nil {
		return dom.Task{}, err
	}
	stored.Project = &p
	return stored, nil
}
