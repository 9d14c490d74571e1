package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/pkg/validate"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes what went wrong.
type ErrorDetail struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// statusFromErr maps domain errors to HTTP statuses.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, domain.ErrRuleNotFound), errors.Is(err, domain.ErrQuoteNotFound):
		return http.StatusNotFound

	case errors.Is(err, validate.ErrValidation),
		errors.Is(err, domain.ErrInvalidRuleRequest),
		errors.Is(err, domain.ErrEmptyRuleName),
		errors.Is(err, domain.ErrInvalidDiscountType),
		errors.Is(err, domain.ErrInvalidDiscountValue),
		errors.Is(err, domain.ErrInvalidPercentage),
		errors.Is(err, domain.ErrInvalidTier),
		errors.Is(err, domain.ErrInvalidMinimum),
		errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error, code int) ErrorResponse {
	if code == http.StatusInternalServerError {
		return ErrorResponse{Error: ErrorDetail{Message: "internal server error"}}
	}

	detail := ErrorDetail{Message: err.Error()}
	var fields validate.FieldErrors
	if errors.As(err, &fields) {
		detail.Message = validate.ErrValidation.Error()
		detail.Fields = fields
	}
	return ErrorResponse{Error: detail}
}
