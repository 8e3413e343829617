package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory repo fakes. They mirror the Postgres behavior the services rely
// on: pgx.ErrNoRows for missing rows and a 23505 PgError for unique
// violations.

func uniqueViolation() error { return &pgconn.PgError{Code: "23505"} }

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]*dom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*dom.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, name, email, passwordHash, token string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return dom.User{}, uniqueViolation()
		}
	}
	f.seq++
	u := &dom.User{ID: f.seq, Name: name, Email: email, PasswordHash: passwordHash, Token: token}
	f.users[u.ID] = u
	return *u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return *u, nil
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			return *u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByToken(_ context.Context, token string) (dom.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token != "" {
		for _, u := range f.users {
			if u.Token == token {
				return *u, nil
			}
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) Confirm(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Confirmed = true
		u.Token = ""
	}
	return nil
}

func (f *fakeUserRepo) SetToken(_ context.Context, id int64, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.Token = token
	}
	return nil
}

func (f *fakeUserRepo) ResetPassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
		u.Token = ""
	}
	return nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	seq      int64
	projects map[int64]*dom.Project
	collabs  map[int64][]int64
	users    *fakeUserRepo
}

func newFakeProjectRepo(users *fakeUserRepo) *fakeProjectRepo {
	return &fakeProjectRepo{
		projects: make(map[int64]*dom.Project),
		collabs:  make(map[int64][]int64),
		users:    users,
	}
}

func (f *fakeProjectRepo) Create(_ context.Context, p dom.Project) (dom.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	p.ID = f.seq
	stored := p
	f.projects[p.ID] = &stored
	return p, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id int64) (dom.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return dom.Project{}, pgx.ErrNoRows
	}
	out := *p
	out.CollaboratorIDs = append([]int64(nil), f.collabs[id]...)
	return out, nil
}

func (f *fakeProjectRepo) ListForUser(_ context.Context, userID int64) ([]dom.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []dom.Project
	for id, p := range f.projects {
		member := p.CreatorID == userID
		for _, c := range f.collabs[id] {
			if c == userID {
				member = true
			}
		}
		if member {
			list = append(list, *p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f *fakeProjectRepo) Update(_ context.Context, p dom.Project) (dom.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.projects[p.ID]
	if !ok {
		return dom.Project{}, pgx.ErrNoRows
	}
	stored.Name = p.Name
	stored.Description = p.Description
	stored.Client = p.Client
	stored.DueDate = p.DueDate
	return *stored, nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.projects, id)
	delete(f.collabs, id)
	return nil
}

func (f *fakeProjectRepo) Collaborators(_ context.Context, projectID int64) ([]dom.User, error) {
	f.mu.Lock()
	ids := append([]int64(nil), f.collabs[projectID]...)
	f.mu.Unlock()
	var list []dom.User
	for _, id := range ids {
		if u, err := f.users.GetByID(context.Background(), id); err == nil {
			list = append(list, u)
		}
	}
	return list, nil
}

func (f *fakeProjectRepo) AddCollaborator(_ context.Context, projectID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.collabs[projectID] {
		if c == userID {
			return uniqueViolation()
		}
	}
	f.collabs[projectID] = append(f.collabs[projectID], userID)
	return nil
}

func (f *fakeProjectRepo) RemoveCollaborator(_ context.Context, projectID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.collabs[projectID][:0]
	for _, c := range f.collabs[projectID] {
		if c != userID {
			out = append(out, c)
		}
	}
	f.collabs[projectID] = out
	return nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	seq   int64
	tasks map[int64]*dom.Task
	users *fakeUserRepo
}

func newFakeTaskRepo(users *fakeUserRepo) *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*dom.Task), users: users}
}

func (f *fakeTaskRepo) hydrate(t dom.Task) dom.Task {
	if t.CompletedByID != nil {
		if u, err := f.users.GetByID(context.Background(), *t.CompletedByID); err == nil {
			t.CompletedByName = u.Name
		}
	}
	return t
}

func (f *fakeTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t.ID = f.seq
	stored := t
	f.tasks[t.ID] = &stored
	return t, nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id int64) (dom.Task, error) {
	f.mu.Lock()
	t, ok := f.tasks[id]
	if !ok {
		f.mu.Unlock()
		return dom.Task{}, pgx.ErrNoRows
	}
	out := *t
	f.mu.Unlock()
	return f.hydrate(out), nil
}

func (f *fakeTaskRepo) ListByProject(_ context.Context, projectID int64) ([]dom.Task, error) {
	f.mu.Lock()
	var list []dom.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			list = append(list, *t)
		}
	}
	f.mu.Unlock()
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	for i := range list {
		list[i] = f.hydrate(list[i])
	}
	return list, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, t dom.Task) (dom.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.tasks[t.ID]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	stored.Name = t.Name
	stored.Description = t.Description
	stored.Priority = t.Priority
	stored.DueDate = t.DueDate
	return *stored, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) SetState(_ context.Context, id int64, done bool, completedBy int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tasks[id]; ok {
		t.Done = done
		t.CompletedByID = &completedBy
	}
	return nil
}

// fakeMailer records outgoing mail.
type fakeMailer struct {
	mu            sync.Mutex
	confirmations map[string]string // email -> token
	resets        map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{confirmations: make(map[string]string), resets: make(map[string]string)}
}

func (m *fakeMailer) SendConfirmation(_ context.Context, to, _, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations[to] = token
	return nil
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, _, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[to] = token
	return nil
}
