package service

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler boundary:
// not found → 404, forbidden → 403, conflict → 409, credentials → 401,
// not confirmed → 403. Anything else is a 500.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("action not allowed")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNotConfirmed        = errors.New("account has not been confirmed")
	ErrInvalidToken        = errors.New("invalid token")
	ErrEmailTaken          = errors.New("email already registered")
	ErrSelfCollaborator    = errors.New("the project creator cannot be a collaborator")
	ErrAlreadyCollaborator = errors.New("user already belongs to the project")
)
