package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minhokang/review-market/internal/apperr"
	"github.com/minhokang/review-market/internal/service"
)

type ProductHandler struct {
	Svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{Svc: svc}
}

type createProductReq struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Create stores a product. Requires a session login. POST /products.
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("name, price 가 모두 필요합니다.", nil)
	}
	p, err := h.Svc.Create(c.Request().Context(), req.Name, req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Get returns a product by id. GET /products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return apperr.NotFound("Product not found")
	}
	p, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
