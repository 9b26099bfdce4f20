package repository

import (
	"context"
	"time"

	"github.com/iliyamo/electramart-api/internal/model"
)

// UserStore is the credential store: user records with unique username and
// unique email.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	UpdatePassword(ctx context.Context, email, hash string) error
	UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate) error
	SetProfilePic(ctx context.Context, id, url string) error
}

// AdminStore holds the admin password hashes.
type AdminStore interface {
	Create(ctx context.Context, passwordHash string) error
	ListHashes(ctx context.Context) ([]string, error)
	DeleteAll(ctx context.Context) error
}

// ProductStore holds the catalogue.  Productname is unique.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	ListByType(ctx context.Context, productType string) ([]*model.Product, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// QueryStore holds support queries.
type QueryStore interface {
	Create(ctx context.Context, q *model.Query) error
	List(ctx context.Context) ([]*model.Query, error)
}

// TransactionStore holds payment transaction records.
type TransactionStore interface {
	Create(ctx context.Context, t *model.Transaction) error
	List(ctx context.Context) ([]*model.Transaction, error)
}

// ResetStore persists hashed password reset codes.
type ResetStore interface {
	Create(ctx context.Context, r *model.PasswordReset) error
	GetByHash(ctx context.Context, tokenHash string) (*model.PasswordReset, error)
	// MarkUsed consumes an active code.  It returns ErrNotFound when the
	// code was already used, so a code can be redeemed only once.
	MarkUsed(ctx context.Context, id string) error
	InvalidateForUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Store bundles one implementation of every collection.  Close releases
// the underlying connection.
type Store struct {
	Users        UserStore
	Admins       AdminStore
	Products     ProductStore
	Queries      QueryStore
	Transactions TransactionStore
	Resets       ResetStore
	Close        func(ctx context.Context) error
}
