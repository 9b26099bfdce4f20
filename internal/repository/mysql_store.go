package repository

import (
	"context"
	"database/sql"
)

// NewMySQLStore wires every MySQL repository onto one connection pool.
func NewMySQLStore(db *sql.DB) *Store {
	return &Store{
		Users:        NewUserRepo(db),
		Admins:       NewAdminRepo(db),
		Products:     NewProductRepo(db),
		Queries:      NewQueryRepo(db),
		Transactions: NewTransactionRepo(db),
		Resets:       NewResetRepo(db),
		Close:        func(context.Context) error { return db.Close() },
	}
}
