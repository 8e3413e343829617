package repo

import (
	"context"

	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepo interface {
	Create(ctx context.Context, p dom.Project) (dom.Project, error)
	// GetByID returns the project with CollaboratorIDs populated.
	GetByID(ctx context.Context, id int64) (dom.Project, error)
	ListForUser(ctx context.Context, userID int64) ([]dom.Project, error)
	Update(ctx context.Context, p dom.Project) (dom.Project, error)
	Delete(ctx context.Context, id int64) error
	Collaborators(ctx context.Context, projectID int64) ([]dom.User, error)
	AddCollaborator(ctx context.Context, projectID, userID int64) error
	RemoveCollaborator(ctx context.Context, projectID, userID int64) error
}

const projectColumns = `id, name, description, client, due_date, creator_id, created_at, updated_at`

type PGProjectRepo struct {
	db *pgxpool.Pool
}

func NewPGProjectRepo(db *pgxpool.Pool) *PGProjectRepo {
	return &PGProjectRepo{db: db}
}

func (r *PGProjectRepo) scanProject(row interface{ Scan(...any) error }) (dom.Project, error) {
	var p dom.Project
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Client, &p.DueDate,
		&p.CreatorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PGProjectRepo) Create(ctx context.Context, p dom.Project) (dom.Project, error) {
	query := `
		INSERT INTO projects (name, description, client, due_date, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + projectColumns
	return r.scanProject(r.db.QueryRow(ctx, query,
		p.Name, p.Description, p.Client, p.DueDate, p.CreatorID))
}

func (r *PGProjectRepo) GetByID(ctx context.Context, id int64) (dom.Project, error) {
	p, err := r.scanProject(r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return dom.Project{}, err
	}
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM project_collaborators WHERE project_id = $1 ORDER BY user_id`, id)
	if err != nil {
		return dom.Project{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var uid int64
		if err := rows.Scan(&uid); err != nil {
			return dom.Project{}, err
		}
		p.CollaboratorIDs = append(p.CollaboratorIDs, uid)
	}
	return p, rows.Err()
}

// ListForUser returns every project the user created or collaborates on,
// tasks and collaborator details omitted.
func (r *PGProjectRepo) ListForUser(ctx context.Context, userID int64) ([]dom.Project, error) {
	query := `
		SELECT ` + projectColumns + ` FROM projects p
		WHERE p.creator_id = $1
		   OR EXISTS (SELECT 1 FROM project_collaborators pc WHERE pc.project_id = p.id AND pc.user_id = $1)
		ORDER BY p.created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Project
	for rows.Next() {
		var p dom.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Client, &p.DueDate,
			&p.CreatorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PGProjectRepo) Update(ctx context.Context, p dom.Project) (dom.Project, error) {
	query := `
		UPDATE projects SET name = $2, description = $3, client = $4, due_date = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + projectColumns
	return r.scanProject(r.db.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.Client, p.DueDate))
}

// Delete removes the project; collaborator rows and tasks go with it via
// ON DELETE CASCADE.
func (r *PGProjectRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func (r *PGProjectRepo) Collaborators(ctx context.Context, projectID int64) ([]dom.User, error) {
	query := `
		SELECT u.id, u.name, u.email
		FROM project_collaborators pc
		JOIN users u ON u.id = pc.user_id
		WHERE pc.project_id = $1
		ORDER BY u.id`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		var u dom.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// AddCollaborator inserts the membership row. A duplicate add surfaces as a
// unique violation (code 23505) for the service layer to map.
func (r *PGProjectRepo) AddCollaborator(ctx context.Context, projectID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO project_collaborators (project_id, user_id) VALUES ($1, $2)`, projectID, userID)
	return err
}

// RemoveCollaborator is idempotent: removing a non-member is not an error.
func (r *PGProjectRepo) RemoveCollaborator(ctx context.Context, projectID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM project_collaborators WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	return err
}
