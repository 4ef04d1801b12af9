// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-client/internal/domain/catalog"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/enrollment"
	"github.com/your-org/storefront-client/internal/pkg/apperrors"
)

// respondError maps the error taxonomy onto HTTP statuses and surfaces the
// human-readable message verbatim
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrInvalidItem),
		errors.Is(err, checkout.ErrUnsupportedPaymentMethod),
		errors.Is(err, enrollment.ErrMissingFields):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrAuthenticationFailed),
		errors.Is(err, apperrors.ErrAuthenticationRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, catalog.ErrQuizNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrEmptyCart):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrNetwork),
		errors.Is(err, apperrors.ErrServer):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
