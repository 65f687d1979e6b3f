package repository

import (
	"context"
	"database/sql"

	"github.com/minhokang/review-market/internal/model"
)

type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

const reviewCols = "id,title,description,rating,product_id,author_id,created_at,updated_at"

// Create inserts a review and returns the stored row.
func (r *ReviewRepo) Create(ctx context.Context, title, description string, rating int, productID, authorID uint64) (model.Review, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (title, description, rating, product_id, author_id) VALUES (?,?,?,?,?)",
		title, description, rating, productID, authorID)
	if err != nil {
		return model.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Review{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a review by id.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	return scanReview(r.DB.QueryRowContext(ctx,
		"SELECT "+reviewCols+" FROM reviews WHERE id=? LIMIT 1", id))
}

// GetAll lists every review, newest first.
func (r *ReviewRepo) GetAll(ctx context.Context) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reviewCols+" FROM reviews ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.Title, &rv.Description, &rv.Rating,
			&rv.ProductID, &rv.AuthorID, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Update overwrites the mutable columns and returns the stored row.
// AuthorID and ProductID are fixed at creation and never touched here.
func (r *ReviewRepo) Update(ctx context.Context, id uint64, title, description string, rating int) (model.Review, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE reviews SET title=?, description=?, rating=? WHERE id=?",
		title, description, rating, id)
	if err != nil {
		return model.Review{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a review and returns the deleted row.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) (model.Review, error) {
	rv, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Review{}, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id); err != nil {
		return model.Review{}, err
	}
	return rv, nil
}

func scanReview(row *sql.Row) (model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.Title, &rv.Description, &rv.Rating,
		&rv.ProductID, &rv.AuthorID, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}
