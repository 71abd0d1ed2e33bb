package engine

import (
	"github.com/kaufy/projection-engine/internal/domain"
	"github.com/kaufy/projection-engine/internal/validation"
	customError "github.com/kaufy/projection-engine/pkg/errors"
)

var validate = validation.New()

// Validate rejects inputs whose monetary fields are negative, and debt that has no
// debt service to pay it down. Rates are deliberately unchecked.
func Validate(input domain.ProjectionInput) error {
	if err := validate.Struct(input); err != nil {
		return customError.WrapInvalidInput(err)
	}

	if input.OutstandingDebt.IsPositive() && !input.AnnualDebtService.IsPositive() {
		return customError.WrapInvalidInput(customError.ErrMissingDebtService)
	}

	return nil
}

// ValidateAsset rejects a new asset with negative price, rent or equity.
func ValidateAsset(asset domain.NewAsset) error {
	if err := validate.Struct(asset); err != nil {
		return customError.WrapInvalidAsset(err)
	}
	return nil
}

// ValidateInvestment checks the calculator request against its field constraints.
func ValidateInvestment(req domain.InvestmentRequest) error {
	if err := validate.Struct(req); err != nil {
		return customError.WrapInvalidInvestment(err)
	}
	return nil
}
