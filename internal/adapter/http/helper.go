package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"dealflow-backend/internal/domain/contract"
	"dealflow-backend/internal/domain/property"
)

// writeDomainError maps the core's typed failures onto HTTP codes. Blocked
// and rejected decisions never reach here: those are 200s.
func writeDomainError(c echo.Context, err error) error {
	var (
		ve *property.ValidationError
		sv *property.StageViolationError
		pe *property.PreconditionError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Message}},
		})
	case errors.As(err, &sv):
		return c.JSON(http.StatusConflict, map[string]any{
			"error":          "illegal stage transition",
			"event":          sv.Event,
			"required_stage": sv.Required,
			"actual_stage":   sv.Actual,
		})
	case errors.As(err, &pe):
		return c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: pe.Message})
	case errors.Is(err, property.ErrNotFound), errors.Is(err, contract.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, property.ErrConcurrentModification):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "concurrent modification, retry the request"})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
