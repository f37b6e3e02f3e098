package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Ant-man74/HeraWebMono/internal/catalog"
	"github.com/Ant-man74/HeraWebMono/internal/pagination"
)

// ProductService manages the catalog.
type ProductService struct {
	store  *catalog.Store
	logger *slog.Logger
}

func NewProductService(store *catalog.Store, logger *slog.Logger) *ProductService {
	return &ProductService{store: store, logger: logger}
}

// Save persists the product (insert when the id is absent, replace when
// present).
func (s *ProductService) Save(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	saved, err := s.store.Put(ctx, p)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("save product: %w", err)
	}
	s.logger.Debug("saved product", "product_id", saved.ID)
	return saved, nil
}

// FindAll returns one page of products.
func (s *ProductService) FindAll(ctx context.Context, req pagination.Request) (pagination.Page[catalog.Product], error) {
	return s.store.List(ctx, req)
}

// FindOne returns the product, or nil when absent.
func (s *ProductService) FindOne(ctx context.Context, id string) (*catalog.Product, error) {
	return s.store.Get(ctx, id)
}

// Delete removes the product by id; deleting an absent id succeeds.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	s.logger.Debug("deleting product", "product_id", id)
	return s.store.Delete(ctx, id)
}

// FindCategory returns one page of products carrying the category label.
func (s *ProductService) FindCategory(ctx context.Context, category string, req pagination.Request) (pagination.Page[catalog.Product], error) {
	return s.store.ListByCategory(ctx, category, req)
}

// FindByBasket returns one page of products whose id is in ids, in store
// order rather than input order.
func (s *ProductService) FindByBasket(ctx context.Context, ids []string, req pagination.Request) (pagination.Page[catalog.Product], error) {
	return s.store.ListByBasket(ctx, ids, req)
}

// FindByName returns one page of products whose name contains name,
// case-insensitively.
func (s *ProductService) FindByName(ctx context.Context, name string, req pagination.Request) (pagination.Page[catalog.Product], error) {
	return s.store.ListByName(ctx, name, req)
}

// FindFiltered returns one page of products matching category membership,
// case-insensitive name substring and price in [from, to], conjunctively.
func (s *ProductService) FindFiltered(ctx context.Context, categories []string, name string, from, to float64, req pagination.Request) (pagination.Page[catalog.Product], error) {
	return s.store.ListFiltered(ctx, categories, name, from, to, req)
}
