package pricing

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/printshop-pricing/internal/app/pricing/domain"
	"github.com/light-bringer/printshop-pricing/internal/pkg/validate"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrRuleNotFound):
		return status.Error(codes.NotFound, "pricing rule not found")

	case errors.Is(err, domain.ErrQuoteNotFound):
		return status.Error(codes.NotFound, "quote not found")

	case errors.Is(err, validate.ErrValidation),
		errors.Is(err, domain.ErrInvalidRuleRequest),
		errors.Is(err, domain.ErrEmptyRuleName),
		errors.Is(err, domain.ErrInvalidDiscountType),
		errors.Is(err, domain.ErrInvalidDiscountValue),
		errors.Is(err, domain.ErrInvalidPercentage),
		errors.Is(err, domain.ErrInvalidTier),
		errors.Is(err, domain.ErrInvalidMinimum),
		errors.Is(err, domain.ErrInvalidDateRange):
		return status.Error(codes.InvalidArgument, err.Error())

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")

	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
