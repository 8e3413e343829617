package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/authz"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/cache"
	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/repo"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// ProjectPatch is the edit payload. Empty strings and nil DueDate mean
// "keep the stored value" — intentionally the same merge the original API
// exposed, so a client cannot blank a field through an edit.
type ProjectPatch struct {
	Name        string
	Description string
	Client      string
	DueDate     *time.Time
}

type ProjectService struct {
	repo  repo.ProjectRepo
	users repo.UserRepo
	tasks repo.TaskRepo
	cache *cache.ProjectCache
	sf    singleflight.Group
	log   *slog.Logger
}

// NewProjectService creates a ProjectService. If c is nil, caching is disabled.
func NewProjectService(r repo.ProjectRepo, users repo.UserRepo, tasks repo.TaskRepo, c *cache.ProjectCache, log *slog.Logger) *ProjectService {
	return &ProjectService{repo: r, users: users, tasks: tasks, cache: c, log: log}
}

// getProject maps pgx.ErrNoRows to ErrNotFound. Existence is always decided
// before any authorization check.
func (s *ProjectService) getProject(ctx context.Context, id int64) (dom.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Project{}, ErrNotFound
		}
		return dom.Project{}, err
	}
	return p, nil
}

// List returns every project the user creates or collaborates on.
func (s *ProjectService) List(ctx context.Context, userID int64) ([]dom.Project, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(userID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListForUser(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Project), nil
	}
	return s.repo.ListForUser(ctx, userID)
}

func (s *ProjectService) Create(ctx context.Context, creatorID int64, name, description, client string, dueDate *time.Time) (dom.Project, error) {
	p, err := s.repo.Create(ctx, dom.Project{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Client:      strings.TrimSpace(client),
		DueDate:     dueDate,
		CreatorID:   creatorID,
	})
	if err != nil {
		return dom.Project{}, err
	}
	s.invalidate(ctx, creatorID)
	return p, nil
}

// Get returns the hydrated project: collaborator identities and the full
// task sequence with completed-by names.
func (s *ProjectService) Get(ctx context.Context, actorID, id int64) (dom.Project, error) {
	p, err := s.getProject(ctx, id)
	if err != nil {
		return dom.Project{}, err
	}
	if !authz.CanView(actorID, p) {
		return dom.Project{}, ErrForbidden
	}
	collabs, err := s.repo.Collaborators(ctx, id)
	if err != nil {
		return dom.Project{}, err
	}
	tasks, err := s.tasks.ListByProject(ctx, id)
	if err != nil {
		return dom.Project{}, err
	}
	p.Collaborators = collabs
	p.Tasks = tasks
	return p, nil
}

// Update applies the patch for the creator. Only supplied (non-empty)
// fields replace stored values.
func (s *ProjectService) Update(ctx context.Context, actorID, id int64, patch ProjectPatch) (dom.Project, error) {
	p, err := s.getProject(ctx, id)
	if err != nil {
		return dom.Project{}, err
	}
	if !authz.CanManage(actorID, p) {
		return dom.Project{}, ErrForbidden
	}
	if v := strings.TrimSpace(patch.Name); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(patch.Description); v != "" {
		p.Description = v
	}
	if v := strings.TrimSpace(patch.Client); v != "" {
		p.Client = v
	}
	if patch.DueDate != nil {
		p.DueDate = patch.DueDate
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return dom.Project{}, err
	}
	s.invalidate(ctx, append([]int64{p.CreatorID}, p.CollaboratorIDs...)...)
	return updated, nil
}

// Delete removes the project for the creator; tasks and collaborator rows
// go with it.
func (s *ProjectService) Delete(ctx context.Context, actorID, id int64) error {
	p, err := s.getProject(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanManage(actorID, p) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, append([]int64{p.CreatorID}, p.CollaboratorIDs...)...)
	return nil
}

// FindCollaborator looks up a candidate by email.
func (s *ProjectService) FindCollaborator(ctx context.Context, email string) (dom.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// AddCollaborator grants the user with candidateEmail collaborator rights.
// Check order: project exists → actor is creator → candidate exists →
// candidate is not the creator → candidate not already a collaborator.
func (s *ProjectService) AddCollaborator(ctx context.Context, actorID, projectID int64, candidateEmail string) error {
	p, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !authz.CanManage(actorID, p) {
		return ErrForbidden
	}
	candidate, err := s.FindCollaborator(ctx, candidateEmail)
	if err != nil {
		return err
	}
	if candidate.ID == p.CreatorID {
		return ErrSelfCollaborator
	}
	if p.HasCollaborator(candidate.ID) {
		return ErrAlreadyCollaborator
	}
	if err := s.repo.AddCollaborator(ctx, projectID, candidate.ID); err != nil {
		// Concurrent double-add lands here instead of the membership check.
		if utils.IsPGUniqueViolation(err) {
			return ErrAlreadyCollaborator
		}
		return err
	}
	s.invalidate(ctx, p.CreatorID, candidate.ID)
	return nil
}

// RemoveCollaborator revokes collaborator rights. Removing a user who is
// not a member is not an error.
func (s *ProjectService) RemoveCollaborator(ctx context.Context, actorID, projectID, targetID int64) error {
	p, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !authz.CanManage(actorID, p) {
		return ErrForbidden
	}
	if err := s.repo.RemoveCollaborator(ctx, projectID, targetID); err != nil {
		return err
	}
	s.invalidate(ctx, p.CreatorID, targetID)
	return nil
}

// CanView is the access check the realtime hub runs when a client joins a
// project room.
func (s *ProjectService) CanView(ctx context.Context, userID, projectID int64) error {
	p, err := s.getProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !authz.CanView(userID, p) {
		return ErrForbidden
	}
	return nil
}

func (s *ProjectService) invalidate(ctx context.Context, userIDs ...int64) {
	if s.cache != nil {
		if err := s.cache.InvalidateUsers(ctx, userIDs...); err != nil {
			s.log.WarnContext(ctx, "project cache invalidation failed", "err", err)
		}
	}
}
