package httpserver

import (
	"errors"
	"net/http"

	"paintland/internal/domain"
	devicesvc "paintland/internal/service/device"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	StatusCode int           `json:"statusCode"`
	Message    string        `json:"message"`
	Errors     []errorDetail `json:"errors"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{
		StatusCode: status,
		Message:    message,
		Errors:     []errorDetail{{Code: code, Message: message}},
	})
}

// writeDomainError maps service errors to HTTP responses.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(c, http.StatusNotFound, "ResourceNotFound", "The resource could not be found.")
	case errors.Is(err, domain.ErrInvalidProduct), errors.Is(err, domain.ErrInvalidQuantity):
		writeError(c, http.StatusBadRequest, "InvalidInput", err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		writeError(c, http.StatusUnprocessableEntity, "EmptyCart", "Your cart is empty.")
	case errors.Is(err, devicesvc.ErrInvalidToken):
		writeError(c, http.StatusUnauthorized, "invalid_token", "invalid or expired device token")
	default:
		writeError(c, http.StatusInternalServerError, "General", "internal error")
	}
}
