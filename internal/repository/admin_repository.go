package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// AdminRepo is the MySQL AdminStore.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// Create stores one admin password hash.
func (r *AdminRepo) Create(ctx context.Context, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (id, password, created_at) VALUES (?,?,?)",
		uuid.NewString(), passwordHash, time.Now().UTC())
	return err
}

// ListHashes returns every stored admin password hash.
func (r *AdminRepo) ListHashes(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT password FROM admins")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// DeleteAll removes every admin credential.
func (r *AdminRepo) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM admins")
	return err
}
