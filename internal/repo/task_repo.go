package repo

import (
	"context"

	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	// GetByID hydrates CompletedByName when completed_by is set.
	GetByID(ctx context.Context, id int64) (dom.Task, error)
	// ListByProject returns the project's task sequence in insertion order.
	ListByProject(ctx context.Context, projectID int64) ([]dom.Task, error)
	Update(ctx context.Context, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, id int64) error
	SetState(ctx context.Context, id int64, done bool, completedBy int64) error
}

const taskColumns = `t.id, t.name, t.description, t.priority, t.due_date, t.done, t.project_id,
	t.completed_by, COALESCE(u.name, ''), t.created_at, t.updated_at`

const taskJoin = ` FROM tasks t LEFT JOIN users u ON u.id = t.completed_by`

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) scanTask(row interface{ Scan(...any) error }) (dom.Task, error) {
	var t dom.Task
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Priority, &t.DueDate, &t.Done,
		&t.ProjectID, &t.CompletedByID, &t.CompletedByName, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (name, description, priority, due_date, project_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, priority, due_date, done, project_id,
			completed_by, '', created_at, updated_at`
	return r.scanTask(r.db.QueryRow(ctx, query,
		t.Name, t.Description, t.Priority, t.DueDate, t.ProjectID))
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id int64) (dom.Task, error) {
	return r.scanTask(r.db.QueryRow(ctx,
		`SELECT `+taskColumns+taskJoin+` WHERE t.id = $1`, id))
}

func (r *PGTaskRepo) ListByProject(ctx context.Context, projectID int64) ([]dom.Task, error) {
	query := `SELECT ` + taskColumns + taskJoin + ` WHERE t.project_id = $1 ORDER BY t.id`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Priority, &t.DueDate, &t.Done,
			&t.ProjectID, &t.CompletedByID, &t.CompletedByName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Update(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks SET name = $2, description = $3, priority = $4, due_date = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, priority, due_date, done, project_id,
			completed_by, '', created_at, updated_at`
	return r.scanTask(r.db.QueryRow(ctx, query,
		t.ID, t.Name, t.Description, t.Priority, t.DueDate))
}

// Delete removes the task row, which also removes it from the project's
// task sequence — membership is the project_id FK, not a stored array.
func (r *PGTaskRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

// SetState stores the flipped state and stamps completed_by with the acting
// user, both directions. The caller re-reads the hydrated task afterwards.
func (r *PGTaskRepo) SetState(ctx context.Context, id int64, done bool, completedBy int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tasks SET done = $2, completed_by = $3, updated_at = NOW() WHERE id = $1`,
		id, done, completedBy)
	return err
}
