package engine

import (
	"github.com/shopspring/decimal"

	"github.com/kaufy/projection-engine/internal/domain"
)

var monthsPerYear = decimal.NewFromInt(12)

// LoanAmount is the part of the price not covered by equity. Equity above the price means no loan.
func LoanAmount(price, equity decimal.Decimal) decimal.Decimal {
	return decimal.Max(price.Sub(equity), decimal.Zero)
}

// CombineWithAdditionalAsset merges a prospective acquisition into an aggregate input.
//
// The new loan is serviced as a level payment of loan * (interest + amortization rate).
// The combined interest rate is weighted by debt so that charging it on the combined
// balance yields the same first-year interest as charging each rate on its own balance.
// Growth rates and horizon are inherited from base.
func CombineWithAdditionalAsset(base domain.ProjectionInput, asset domain.NewAsset) domain.ProjectionInput {
	loan := LoanAmount(asset.Price, asset.Equity)
	debtService := loan.Mul(asset.InterestRate.Add(asset.AmortizationRate))

	combinedDebt := base.OutstandingDebt.Add(loan)
	rate := WeightedRate(base.OutstandingDebt, base.InterestRate, loan, asset.InterestRate)

	return domain.ProjectionInput{
		PropertyValue:     base.PropertyValue.Add(asset.Price),
		OutstandingDebt:   combinedDebt,
		AnnualRent:        base.AnnualRent.Add(asset.MonthlyRent.Mul(monthsPerYear)),
		AnnualDebtService: base.AnnualDebtService.Add(debtService),
		InterestRate:      rate,
		ValueGrowthRate:   base.ValueGrowthRate,
		RentGrowthRate:    base.RentGrowthRate,
		HorizonYears:      base.HorizonYears,
	}
}

// WeightedRate blends two rates by the balances they apply to.
// With no combined balance the base rate is kept.
func WeightedRate(baseDebt, baseRate, newDebt, newRate decimal.Decimal) decimal.Decimal {
	total := baseDebt.Add(newDebt)
	if !total.IsPositive() {
		return baseRate
	}
	return baseDebt.Mul(baseRate).Add(newDebt.Mul(newRate)).Div(total)
}
