package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/electramart-api/internal/model"
)

// ResetRepo persists password reset codes (single 'token_hash' column).
type ResetRepo struct{ DB *sql.DB }

func NewResetRepo(db *sql.DB) *ResetRepo { return &ResetRepo{DB: db} }

// Create inserts a reset code hash row.
func (r *ResetRepo) Create(ctx context.Context, pr *model.PasswordReset) error {
	pr.ID = uuid.NewString()
	pr.CreatedAt = time.Now().UTC()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO password_resets (id, user_id, email, token_hash, expires_at, created_at) VALUES (?,?,?,?,?,?)",
		pr.ID, pr.UserID, pr.Email, pr.TokenHash, pr.ExpiresAt, pr.CreatedAt)
	return err
}

// GetByHash returns the reset row for tokenHash whatever its state; the
// caller decides whether it is used or expired.
func (r *ResetRepo) GetByHash(ctx context.Context, tokenHash string) (*model.PasswordReset, error) {
	var (
		pr     model.PasswordReset
		usedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, email, token_hash, expires_at, used_at, created_at FROM password_resets WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&pr.ID, &pr.UserID, &pr.Email, &pr.TokenHash, &pr.ExpiresAt, &usedAt, &pr.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if usedAt.Valid {
		t := usedAt.Time
		pr.UsedAt = &t
	}
	return &pr, nil
}

// MarkUsed consumes an active code.
func (r *ResetRepo) MarkUsed(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE password_resets SET used_at=? WHERE id=? AND used_at IS NULL",
		time.Now().UTC(), id)
	return affectedOne(res, err)
}

// InvalidateForUser marks all of a user's active codes as used.
func (r *ResetRepo) InvalidateForUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE password_resets SET used_at=? WHERE user_id=? AND used_at IS NULL",
		time.Now().UTC(), userID)
	return err
}

// DeleteExpired removes codes that expired before now.
func (r *ResetRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM password_resets WHERE expires_at < ?", now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
