// Package service holds the thin resource services for products and
// reviews. They validate request shape, delegate to the repositories,
// and convert persistence failures into the client-facing taxonomy.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/minhokang/review-market/internal/apperr"
	"github.com/minhokang/review-market/internal/model"
)

const msgDBFailure = "데이터베이스 작업 중 오류가 발생했습니다"

// ProductStore is the persistence surface for products.
type ProductStore interface {
	Create(ctx context.Context, name string, price int64) (model.Product, error)
	GetByID(ctx context.Context, id uint64) (model.Product, error)
}

type ProductService struct {
	products ProductStore
	log      *slog.Logger
}

func NewProductService(products ProductStore, log *slog.Logger) *ProductService {
	return &ProductService{products: products, log: log}
}

// Create persists a product. Price is in currency minor units and must
// be non-negative.
func (s *ProductService) Create(ctx context.Context, name string, price int64) (model.Product, error) {
	if strings.TrimSpace(name) == "" {
		return model.Product{}, apperr.Validation("name 이 필요합니다.", nil)
	}
	if price < 0 {
		return model.Product{}, apperr.Validation("price must not be negative", map[string]int64{"price": price})
	}
	p, err := s.products.Create(ctx, name, price)
	if err != nil {
		s.log.Error("persistence failure", "op", "create product", "err", err)
		return model.Product{}, apperr.Server(msgDBFailure)
	}
	return p, nil
}

// GetByID returns a product or a 404 error.
func (s *ProductService) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Product{}, apperr.NotFound("Product not found")
		}
		s.log.Error("persistence failure", "op", "get product", "err", err)
		return model.Product{}, apperr.Server(msgDBFailure)
	}
	return p, nil
}
