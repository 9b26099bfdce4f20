package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/electramart-api/internal/model"
)

// UserRepo is the MySQL UserStore.  Uniqueness of username and email is
// enforced by the uq_users_username and uq_users_email indexes.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,firstname,lastname,username,email,password,usertype,profile_pic,status,pincode,phone,address,cart,transaction_data,products,created_at,updated_at"

// Create inserts u, assigning its ID and timestamps.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)",
		id, u.Firstname, u.Lastname, u.Username, u.Email, u.Password, u.Usertype,
		u.ProfilePic, u.Status, u.Pincode, u.Phone, u.Address,
		nullJSON(u.Cart), nullJSON(u.Transaction), nullJSON(u.Products), now, now)
	if err != nil {
		return userConflict(err)
	}
	u.ID, u.CreatedAt, u.UpdatedAt = id, now, now
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, "id", id)
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, "username", username)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

// getOne runs a single-row lookup; column is always a constant from this
// file, never user input.
func (r *UserRepo) getOne(ctx context.Context, column, value string) (*model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+"=? LIMIT 1", value)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// List returns every user in creation order.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdatePassword overwrites the password hash of the account with email.
func (r *UserRepo) UpdatePassword(ctx context.Context, email, hash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password=?, updated_at=? WHERE email=?",
		hash, time.Now().UTC(), strings.ToLower(strings.TrimSpace(email)))
	return affectedOne(res, err)
}

// UpdateProfile changes username, email, phone and address of the account
// with id, and its password when upd.Password is set.
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate) error {
	q := "UPDATE users SET username=?, email=?, phone=?, address=?, updated_at=?"
	args := []interface{}{upd.Username, upd.Email, upd.Phone, upd.Address, time.Now().UTC()}
	if upd.Password != "" {
		q += ", password=?"
		args = append(args, upd.Password)
	}
	q += " WHERE id=?"
	args = append(args, id)

	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return userConflict(err)
	}
	return affectedOne(res, nil)
}

// SetProfilePic stores the picture URL for the account with id.
func (r *UserRepo) SetProfilePic(ctx context.Context, id, url string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET profile_pic=?, updated_at=? WHERE id=?",
		url, time.Now().UTC(), id)
	return affectedOne(res, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s rowScanner) (*model.User, error) {
	var (
		u                   model.User
		cart, txn, products []byte
	)
	err := s.Scan(&u.ID, &u.Firstname, &u.Lastname, &u.Username, &u.Email, &u.Password,
		&u.Usertype, &u.ProfilePic, &u.Status, &u.Pincode, &u.Phone, &u.Address,
		&cart, &txn, &products, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Cart, u.Transaction, u.Products = cart, txn, products
	return &u, nil
}

// affectedOne converts "no row matched" into ErrNotFound.  The DSN sets
// clientFoundRows so an UPDATE that changes nothing still counts its match.
func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
