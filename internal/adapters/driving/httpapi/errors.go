package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/wortlens/internal/core/domain"
	"github.com/custodia-labs/wortlens/internal/logger"
)

// APIError is the body of every error response.
// Example: { "error": { "code": "not_found", "message": "session not found" } }
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response.
func JSONError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, msg string) {
	JSONError(c, http.StatusBadRequest, "bad_request", msg)
}

// statusFor maps domain errors to HTTP status codes and error codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, "unsupported_format"
	case errors.Is(err, domain.ErrDecoding), errors.Is(err, domain.ErrParse):
		return http.StatusUnprocessableEntity, "extraction_failed"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrModelUnavailable):
		return http.StatusServiceUnavailable, "model_unavailable"
	case errors.Is(err, domain.ErrUnsupportedLanguage), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrNothingToExport):
		return http.StatusConflict, "nothing_to_export"
	case errors.Is(err, domain.ErrTranslation):
		return http.StatusBadGateway, "translation_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// respondError maps err to a status and writes the user-facing message.
func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Warn("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	JSONError(c, status, code, domain.UserMessage(err))
}
