package repository

import (
	"context"
	"database/sql"

	"github.com/minhokang/review-market/internal/model"
)

type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

// Create inserts a product and returns the stored row.
func (r *ProductRepo) Create(ctx context.Context, name string, price int64) (model.Product, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO products (name, price) VALUES (?,?)", name, price)
	if err != nil {
		return model.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Product{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a product by id.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (model.Product, error) {
	var p model.Product
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,price,created_at,updated_at FROM products WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
