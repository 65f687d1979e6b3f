package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minhokang/review-market/internal/apperr"
)

// errorBody is the failure envelope every non-bypassed error renders.
type errorBody struct {
	Path    string    `json:"path"`
	Method  string    `json:"method"`
	Message string    `json:"message"`
	Data    any       `json:"data,omitempty"`
	Date    time.Time `json:"date"`
}

// NewHTTPErrorHandler maps errors onto the JSON envelope. Taxonomy
// errors keep their status and payload; echo's own errors keep their
// code; anything else is a 500 with a generic message, logged with full
// detail server-side since the client sees none of it.
func NewHTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := errorBody{
			Path:    c.Request().URL.Path,
			Method:  c.Request().Method,
			Message: "Internal Server Error",
			Date:    time.Now().UTC(),
		}
		status := http.StatusInternalServerError

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			status = ae.Status
			body.Message = ae.Message
			body.Data = ae.Data
		case errors.As(err, &he):
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				body.Message = msg
			}
		default:
			log.Error("unhandled error", "path", body.Path, "method", body.Method, "err", err)
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed", "path", body.Path, "method", body.Method, "status", status, "err", err)
		}

		if writeErr := c.JSON(status, body); writeErr != nil {
			log.Error("write error response", "err", writeErr)
		}
	}
}
