package handler

import (
	"errors"
	"net/http"

	"go-banking-core/common"
	"go-banking-core/policy"
	"go-banking-core/service"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

// mapServiceError translates engine rejections into HTTP status codes.
// Validation failures and insufficient funds are 400, policy ceiling
// violations 422 (so callers can tell "fix request" from "add funds" from
// "account is capped"), repeat fee charges 409, unknown ids 404. Anything
// unrecognized is an infrastructure failure.
func mapServiceError(err error, fallback string) *common.AppError {
	var (
		notFound     *service.AccountNotFoundError
		insufficient *service.InsufficientFundsError
		limit        *policy.BalanceLimitError
	)

	switch {
	case errors.As(err, &notFound),
		errors.Is(err, service.ErrCustomerNotFound):
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case errors.As(err, &limit):
		return common.NewAppError(http.StatusUnprocessableEntity, err.Error(), err)
	case errors.As(err, &insufficient),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrUnknownTransactionType),
		errors.Is(err, service.ErrMissingAccountReference),
		errors.Is(err, service.ErrUnknownAccountType),
		errors.Is(err, policy.ErrOverdraftNotSupported),
		errors.Is(err, policy.ErrInterestNotSupported):
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrFeeAlreadyCharged),
		errors.Is(err, service.ErrCustomerAlreadyExists):
		return common.NewAppError(http.StatusConflict, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err)
	}
}
