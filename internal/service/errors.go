// Package service holds the business operations behind the HTTP handlers:
// authentication, catalogue, support records and user profiles.
package service

import (
	"errors"

	"github.com/iliyamo/electramart-api/internal/repository"
)

// Business-rule failures.  Handlers answer these with status:false and a
// client message; anything else is an infrastructure failure.
var (
	ErrInvalidUsername  = errors.New("invalid username")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidResetCode = errors.New("invalid or expired reset code")
	ErrAdminPassword    = errors.New("incorrect admin password")
	ErrUsernameTooShort = errors.New("username must be at least 5 characters long")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotOwner         = errors.New("profile belongs to another account")

	// The store reports uniqueness conflicts; they pass through unchanged.
	ErrUsernameExists = repository.ErrUsernameExists
	ErrEmailExists    = repository.ErrEmailExists
)

// MinUsernameLen is the shortest username accepted by a profile update.
const MinUsernameLen = 5
