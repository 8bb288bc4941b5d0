package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zirospace/zirospace-cms/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// StatusFor maps err onto the HTTP status of its category.
func StatusFor(err error) int {
	categorized := domain.Categorize(err)
	if categorized == nil || categorized.Code == 0 {
		return http.StatusInternalServerError
	}
	return categorized.Code
}

func errorBody(err error) ErrorResponse {
	body := ErrorResponse{
		Error:   domain.Describe(err),
		Code:    domain.KindOf(err).String(),
		Details: err.Error(),
	}
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		body.Fields = invalid.Fields()
	}
	return body
}

func (s *Server) abort(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Request.Method, "route", c.FullPath(), "status", status, "error", err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorBody(err))
}

func badRequest(resource string, err error) error {
	return domain.NewValidationError(resource, err)
}
