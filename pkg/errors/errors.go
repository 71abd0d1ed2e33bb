package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidInput       = errors.New("invalid projection input")
	ErrInvalidAsset       = errors.New("invalid asset")
	ErrInvalidInvestment  = errors.New("invalid investment request")
	ErrPortfolioNotFound  = errors.New("portfolio not found")
	ErrInvalidTenantID    = errors.New("invalid tenant id")
	ErrMissingDebtService = errors.New("debt service must be positive while debt is outstanding")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeInvalidAsset      = "INVALID_ASSET"
	ErrCodeInvalidInvestment = "INVALID_INVESTMENT"
	ErrCodePortfolioNotFound = "PORTFOLIO_NOT_FOUND"
	ErrCodeInvalidTenantID   = "INVALID_TENANT_ID"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
)

// IsBusinessError reports whether err carries a BusinessError and returns it.
func IsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// WrapInvalidInput keeps both ErrInvalidInput and reason in the error chain.
func WrapInvalidInput(reason error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInput,
		fmt.Sprintf("Projection input rejected: %v", reason),
		fmt.Errorf("%w: %w", ErrInvalidInput, reason),
	)
}

func WrapInvalidAsset(reason error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAsset,
		fmt.Sprintf("Asset rejected: %v", reason),
		fmt.Errorf("%w: %w", ErrInvalidAsset, reason),
	)
}

func WrapInvalidInvestment(reason error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidInvestment,
		fmt.Sprintf("Investment request rejected: %v", reason),
		fmt.Errorf("%w: %w", ErrInvalidInvestment, reason),
	)
}

func WrapPortfolioNotFound(tenantID string) *BusinessError {
	return NewBusinessError(
		ErrCodePortfolioNotFound,
		fmt.Sprintf("No active portfolio for tenant %s", tenantID),
		ErrPortfolioNotFound,
	)
}

func WrapInvalidTenantID(tenantID string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTenantID,
		fmt.Sprintf("Tenant ID %q is not a valid UUID", tenantID),
		ErrInvalidTenantID,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}
