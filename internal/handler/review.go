package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minhokang/review-market/internal/apperr"
	"github.com/minhokang/review-market/internal/middleware"
	"github.com/minhokang/review-market/internal/queue"
	"github.com/minhokang/review-market/internal/service"
)

type ReviewHandler struct {
	Svc    *service.ReviewService
	Events *queue.Publisher
}

func NewReviewHandler(svc *service.ReviewService, events *queue.Publisher) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Events: events}
}

type createReviewReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
	ProductID   uint64 `json:"productId"`
}

type updateReviewReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Rating      *int    `json:"rating"`
}

// Create stores a review authored by the access-token caller and
// publishes a review.created event. Publish failures are logged inside
// the publisher and do not fail the request. POST /reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return apperr.Authentication("Unauthorized")
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("title, description, productId are required", nil)
	}
	ctx := c.Request().Context()
	rv, err := h.Svc.Create(ctx, req.Title, req.Description, req.Rating, req.ProductID, caller.UserID)
	if err != nil {
		return err
	}
	_ = h.Events.PublishReviewCreated(ctx, queue.ReviewCreatedEvent{
		ReviewID:  rv.ID,
		ProductID: rv.ProductID,
		AuthorID:  rv.AuthorID,
		Rating:    rv.Rating,
		Title:     rv.Title,
		CreatedAt: rv.CreatedAt.UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, rv)
}

// Get returns a review by id. GET /reviews/:id.
func (h *ReviewHandler) Get(c echo.Context) error {
	id, err := reviewID(c)
	if err != nil {
		return err
	}
	rv, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rv)
}

// GetAll lists every review. GET /reviews.
func (h *ReviewHandler) GetAll(c echo.Context) error {
	out, err := h.Svc.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Update mutates a review. Runs behind the access-token gate and the
// ownership gate. PUT /reviews/:id.
func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := reviewID(c)
	if err != nil {
		return err
	}
	var req updateReviewReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid body", nil)
	}
	rv, err := h.Svc.Update(c.Request().Context(), id, service.ReviewUpdate{
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rv)
}

// Delete removes a review. Runs behind the access-token gate and the
// ownership gate. DELETE /reviews/:id.
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := reviewID(c)
	if err != nil {
		return err
	}
	rv, err := h.Svc.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rv)
}

func reviewID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.NotFound("Review not found")
	}
	return id, nil
}
