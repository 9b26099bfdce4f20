package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/electramart-api/internal/model"
	"github.com/iliyamo/electramart-api/internal/repository"
)

// DefaultProductStatus is stored when a new product names no status.
const DefaultProductStatus = "active"

// CatalogService serves the product catalogue.
type CatalogService struct {
	Products repository.ProductStore
	Log      *logrus.Logger
}

func NewCatalogService(st *repository.Store, log *logrus.Logger) *CatalogService {
	return &CatalogService{Products: st.Products, Log: log}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.Products.List(ctx)
}

func (s *CatalogService) ListProductsByType(ctx context.Context, productType string) ([]*model.Product, error) {
	return s.Products.ListByType(ctx, productType)
}

// GetProduct returns nil without error when id names no product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// CreateProduct stores p and reports true, or false when the productname is
// already taken.
func (s *CatalogService) CreateProduct(ctx context.Context, p *model.Product) (bool, error) {
	p.Productname = strings.TrimSpace(p.Productname)
	if p.Status == "" {
		p.Status = DefaultProductStatus
	}
	if err := s.Products.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrProductExists) {
			return false, nil
		}
		return false, fmt.Errorf("create product: %w", err)
	}
	return true, nil
}

// ReplaceProducts empties the catalogue and stores items in order.  Repeated
// productnames in items are skipped.  It returns how many were stored.
func (s *CatalogService) ReplaceProducts(ctx context.Context, items []model.Product) (int, error) {
	removed, err := s.Products.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	n := 0
	for i := range items {
		p := items[i]
		ok, err := s.CreateProduct(ctx, &p)
		if err != nil {
			return n, err
		}
		if ok {
			n++
		}
	}
	s.Log.WithFields(logrus.Fields{"removed": removed, "inserted": n}).Info("catalogue replaced")
	return n, nil
}
