package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/electramart-api/internal/model"
)

// ProductRepo is the MySQL ProductStore.  productname carries the
// uq_products_productname index.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productColumns = "id, productname, img, price, type, status, created_at"

// Create inserts p and assigns its ID.  A duplicate productname yields
// ErrProductExists.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO products ("+productColumns+") VALUES (?,?,?,?,?,?,?)",
		id, p.Productname, p.Img, p.Price, p.Type, p.Status, now)
	if err != nil {
		if _, dup := duplicateKey(err); dup {
			return ErrProductExists
		}
		return err
	}
	p.ID, p.CreatedAt = id, now
	return nil
}

// GetByID fetches one product.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.Productname, &p.Img, &p.Price, &p.Type, &p.Status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the whole catalogue.
func (r *ProductRepo) List(ctx context.Context) ([]*model.Product, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at, id")
}

// ListByType returns the products of one type.
func (r *ProductRepo) ListByType(ctx context.Context, productType string) ([]*model.Product, error) {
	return r.query(ctx, "SELECT "+productColumns+" FROM products WHERE type=? ORDER BY created_at, id", productType)
}

// DeleteAll empties the catalogue; used by the seed command.
func (r *ProductRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepo) query(ctx context.Context, q string, args ...interface{}) ([]*model.Product, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Product{}
	for rows.Next() {
		p := new(model.Product)
		if err := rows.Scan(&p.ID, &p.Productname, &p.Img, &p.Price, &p.Type, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
