package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/auth"
	dom "github.com/FlashAmarillo/UpTask-MERN-Backend/internal/domain"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/mail"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/repo"
	"github.com/FlashAmarillo/UpTask-MERN-Backend/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, confirmation, login and password reset.
type UserService struct {
	repo   repo.UserRepo
	tokens *auth.TokenManager
	mailer mail.Mailer
	log    *slog.Logger
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo, tokens *auth.TokenManager, mailer mail.Mailer, log *slog.Logger) *UserService {
	return &UserService{repo: r, tokens: tokens, mailer: mailer, log: log}
}

// Register creates an unconfirmed user with a fresh confirmation token and
// sends the confirmation mail. Mail failure does not fail registration: the
// row is already committed and the token stays valid.
func (s *UserService) Register(ctx context.Context, name, email, password string) (dom.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	token := uuid.NewString()
	u, err := s.repo.Create(ctx, name, email, string(hash), token)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	if err := s.mailer.SendConfirmation(ctx, u.Email, u.Name, token); err != nil {
		s.log.ErrorContext(ctx, "confirmation mail failed", "email", u.Email, "err", err)
	}
	return u, nil
}

// Login verifies credentials and mints a bearer token. Only confirmed
// accounts may authenticate.
func (s *UserService) Login(ctx context.Context, email, password string) (dom.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, "", ErrNotFound
		}
		return dom.User{}, "", err
	}
	if !u.Confirmed {
		return dom.User{}, "", ErrNotConfirmed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return dom.User{}, "", err
	}
	return u, token, nil
}

// Confirm consumes a confirmation token: confirmed goes false→true and the
// token is cleared so it cannot be replayed.
func (s *UserService) Confirm(ctx context.Context, token string) error {
	u, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidToken
		}
		return err
	}
	return s.repo.Confirm(ctx, u.ID)
}

// ForgotPassword issues a reset token for a confirmed account and mails the
// reset link.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !u.Confirmed {
		return ErrNotConfirmed
	}
	token := uuid.NewString()
	if err := s.repo.SetToken(ctx, u.ID, token); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordReset(ctx, u.Email, u.Name, token); err != nil {
		s.log.ErrorContext(ctx, "password-reset mail failed", "email", u.Email, "err", err)
	}
	return nil
}

// CheckResetToken reports whether the reset token is live.
func (s *UserService) CheckResetToken(ctx context.Context, token string) error {
	_, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// ResetPassword consumes the reset token and stores the new hash.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	u, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidToken
		}
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.ResetPassword(ctx, u.ID, string(hash))
}
