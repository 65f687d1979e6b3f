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

// ReviewStore is the persistence surface for reviews.
type ReviewStore interface {
	Create(ctx context.Context, title, description string, rating int, productID, authorID uint64) (model.Review, error)
	GetByID(ctx context.Context, id uint64) (model.Review, error)
	GetAll(ctx context.Context) ([]model.Review, error)
	Update(ctx context.Context, id uint64, title, description string, rating int) (model.Review, error)
	Delete(ctx context.Context, id uint64) (model.Review, error)
}

// ReviewUpdate carries the mutable fields of a review. Nil means "keep
// the stored value".
type ReviewUpdate struct {
	Title       *string
	Description *string
	Rating      *int
}

type ReviewService struct {
	reviews ReviewStore
	log     *slog.Logger
}

func NewReviewService(reviews ReviewStore, log *slog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, log: log}
}

// Create persists a review authored by the caller. Rating bounds are
// enforced here: the schema documents 1..5 and the server rejects the
// rest rather than storing out-of-range values.
func (s *ReviewService) Create(ctx context.Context, title, description string, rating int, productID, authorID uint64) (model.Review, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" || productID == 0 {
		return model.Review{}, apperr.Validation("title, description, productId are required", nil)
	}
	if err := checkRating(rating); err != nil {
		return model.Review{}, err
	}
	rv, err := s.reviews.Create(ctx, title, description, rating, productID, authorID)
	if err != nil {
		s.log.Error("persistence failure", "op", "create review", "err", err)
		return model.Review{}, apperr.Server(msgDBFailure)
	}
	return rv, nil
}

// GetByID returns a review or a 404 error.
func (s *ReviewService) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Review{}, apperr.NotFound("Review not found")
		}
		s.log.Error("persistence failure", "op", "get review", "err", err)
		return model.Review{}, apperr.Server(msgDBFailure)
	}
	return rv, nil
}

// GetAll lists every review.
func (s *ReviewService) GetAll(ctx context.Context) ([]model.Review, error) {
	out, err := s.reviews.GetAll(ctx)
	if err != nil {
		s.log.Error("persistence failure", "op", "list reviews", "err", err)
		return nil, apperr.Server(msgDBFailure)
	}
	return out, nil
}

// Update applies a partial update to title/description/rating. The
// author and product bindings are immutable. Ownership has already been
// checked by the gate in front of the handler.
func (s *ReviewService) Update(ctx context.Context, id uint64, upd ReviewUpdate) (model.Review, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Review{}, err
	}
	title, description, rating := current.Title, current.Description, current.Rating
	if upd.Title != nil {
		title = *upd.Title
	}
	if upd.Description != nil {
		description = *upd.Description
	}
	if upd.Rating != nil {
		rating = *upd.Rating
	}
	if err := checkRating(rating); err != nil {
		return model.Review{}, err
	}
	rv, err := s.reviews.Update(ctx, id, title, description, rating)
	if err != nil {
		s.log.Error("persistence failure", "op", "update review", "err", err)
		return model.Review{}, apperr.Server(msgDBFailure)
	}
	return rv, nil
}

// Delete removes a review and returns the deleted record.
func (s *ReviewService) Delete(ctx context.Context, id uint64) (model.Review, error) {
	rv, err := s.reviews.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Review{}, apperr.NotFound("Review not found")
		}
		s.log.Error("persistence failure", "op", "delete review", "err", err)
		return model.Review{}, apperr.Server(msgDBFailure)
	}
	return rv, nil
}

func checkRating(rating int) error {
	if rating < 1 || rating > 5 {
		return apperr.Validation("rating must be between 1 and 5", map[string]int{"rating": rating})
	}
	return nil
}
