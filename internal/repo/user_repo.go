package repo

import (
	"context"

	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, name, email, passwordHash, token string) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	GetByToken(ctx context.Context, token string) (dom.User, error)
	Confirm(ctx context.Context, id int64) error
	SetToken(ctx context.Context, id int64, token string) error
	ResetPassword(ctx context.Context, id int64, passwordHash string) error
}

const userColumns = `id, name, email, password_hash, token, confirmed, created_at, updated_at`

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

func (r *PGUserRepo) scanUser(row interface{ Scan(...any) error }) (dom.User, error) {
	var u dom.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Token, &u.Confirmed, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a new user with a pending confirmation token.
func (r *PGUserRepo) Create(ctx context.Context, name, email, passwordHash, token string) (dom.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, token)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	return r.scanUser(r.db.QueryRow(ctx, query, name, email, passwordHash, token))
}

func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	return r.scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByToken looks a user up by a live confirmation/reset token.
// Empty tokens never match: a consumed token is set to '' and must not be
// reusable.
func (r *PGUserRepo) GetByToken(ctx context.Context, token string) (dom.User, error) {
	return r.scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE token = $1 AND token <> ''`, token))
}

// Confirm flips confirmed and consumes the token in one statement.
func (r *PGUserRepo) Confirm(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET confirmed = TRUE, token = '', updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *PGUserRepo) SetToken(ctx context.Context, id int64, token string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET token = $2, updated_at = NOW() WHERE id = $1`, id, token)
	return err
}

// ResetPassword stores the new hash and consumes the token in one statement.
func (r *PGUserRepo) ResetPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, token = '', updated_at = NOW() WHERE id = $1`, id, passwordHash)
	return err
}
