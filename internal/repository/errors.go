// Package repository defines the store interfaces used by the services and
// their MySQL implementation.  The sentinel errors below are shared by every
// store implementation (MySQL, Mongo, in-memory) so that higher layers can
// tell failure scenarios apart with errors.Is.
package repository

import "errors"

// ErrNotFound is returned when a lookup or targeted update matches no
// record.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists and ErrEmailExists are returned when a write would break
// the unique username / email constraint of the users store.  The store
// itself reports the conflict; services never pre-check.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// ErrProductExists is returned when a product with the same productname is
// already stored.
var ErrProductExists = errors.New("product already exists")

// ErrConflict is returned for any other uniqueness violation.
var ErrConflict = errors.New("conflict")
