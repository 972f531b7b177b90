package api

import (
	"errors"
	"net/http"

	"github.com/GIVandez/plot-twister/internal/domain"
	"github.com/GIVandez/plot-twister/internal/imagestore"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: status})
}

// statusFor maps a service error onto an HTTP status and a client-safe
// message. Internal failures never expose their cause.
func statusFor(err error) (int, string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, imagestore.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "image is too large"
	case errors.Is(err, domain.ErrInternal):
		return http.StatusInternalServerError, "internal server error"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrCrossProject):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	abortWithError(c, status, msg)
}

func badRequest(c *gin.Context, msg string) {
	abortWithError(c, http.StatusBadRequest, msg)
}
