package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/electramart-api/internal/model"
)

// QueryRepo is the MySQL QueryStore.
type QueryRepo struct{ DB *sql.DB }

func NewQueryRepo(db *sql.DB) *QueryRepo { return &QueryRepo{DB: db} }

// Create inserts a support query.
func (r *QueryRepo) Create(ctx context.Context, q *model.Query) error {
	id := uuid.NewString()
	now := time.Now().UTC()
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO queries (id, username, email, ques, sug, created_at) VALUES (?,?,?,?,?,?)",
		id, q.Username, q.Email, q.Ques, q.Sug, now); err != nil {
		return err
	}
	q.ID, q.CreatedAt = id, now
	return nil
}

// List returns every query in creation order.
func (r *QueryRepo) List(ctx context.Context) ([]*model.Query, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, username, email, ques, sug, created_at FROM queries ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Query{}
	for rows.Next() {
		q := new(model.Query)
		if err := rows.Scan(&q.ID, &q.Username, &q.Email, &q.Ques, &q.Sug, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// TransactionRepo is the MySQL TransactionStore.
type TransactionRepo struct{ DB *sql.DB }

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{DB: db} }

// Create inserts a transaction record.
func (r *TransactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	id := uuid.NewString()
	now := time.Now().UTC()
	if _, err := r.DB.ExecContext(ctx,
		"INSERT INTO transactions (id, accountholder, phone, accountnumber, ifsc, amount, pincode, address, created_at) VALUES (?,?,?,?,?,?,?,?,?)",
		id, t.Accountholder, t.Phone, t.Accountnumber, t.IFSC, t.Amount, t.Pincode, t.Address, now); err != nil {
		return err
	}
	t.ID, t.CreatedAt = id, now
	return nil
}

// List returns every transaction in creation order.
func (r *TransactionRepo) List(ctx context.Context) ([]*model.Transaction, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, accountholder, phone, accountnumber, ifsc, amount, pincode, address, created_at FROM transactions ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Transaction{}
	for rows.Next() {
		t := new(model.Transaction)
		if err := rows.Scan(&t.ID, &t.Accountholder, &t.Phone, &t.Accountnumber, &t.IFSC, &t.Amount, &t.Pincode, &t.Address, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
