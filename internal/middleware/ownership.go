package middleware

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minhokang/review-market/internal/apperr"
	"github.com/minhokang/review-market/internal/model"
)

// ReviewFinder is the single lookup the ownership gate needs.
type ReviewFinder interface {
	GetByID(ctx context.Context, id uint64) (model.Review, error)
}

// ReviewOwnership guards review mutations. Order matters and is part of
// the contract: a missing review is 404 before any identity question, a
// missing caller is 401, a non-author caller is 403.
func ReviewOwnership(reviews ReviewFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil {
				return apperr.NotFound("Review not found")
			}
			review, err := reviews.GetByID(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apperr.NotFound("Review not found")
				}
				return err
			}
			caller, ok := CallerFrom(c)
			if !ok {
				return apperr.Authentication("User not authenticated")
			}
			if review.AuthorID != caller.UserID {
				return apperr.Forbidden("Forbidden")
			}
			return next(c)
		}
	}
}
