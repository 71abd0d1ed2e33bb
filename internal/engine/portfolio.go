package engine

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kaufy/projection-engine/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)

	// Cost and depreciation estimates used by the cash-flow statement.
	nonRecoverableCostRate = decimal.RequireFromString("0.005")
	buildingShareEstimate  = decimal.RequireFromString("0.8")
	linearAfaRate          = decimal.RequireFromString("0.02")
)

// AggregatePortfolio folds a tenant's units, active leases and loans into a summary.
// It returns false when there are no units to aggregate.
func AggregatePortfolio(units []domain.Unit, leases []domain.Lease, loans []domain.Loan) (*domain.PortfolioSummary, bool) {
	if len(units) == 0 {
		return nil, false
	}

	propertyValues := make(map[uuid.UUID]decimal.Decimal)
	for _, unit := range units {
		// first positive market value wins; units repeat their property's value
		if current, seen := propertyValues[unit.PropertyID]; !seen || !current.IsPositive() {
			propertyValues[unit.PropertyID] = unit.MarketValue
		}
	}

	leaseRent := make(map[uuid.UUID]decimal.Decimal)
	for _, lease := range leases {
		if lease.Status != domain.LeaseStatusActive {
			continue
		}
		rent := lease.RentColdEUR
		if !rent.IsPositive() {
			rent = lease.MonthlyRent
		}
		leaseRent[lease.UnitID] = leaseRent[lease.UnitID].Add(rent)
	}

	totalArea := decimal.Zero
	monthlyRent := decimal.Zero
	for _, unit := range units {
		totalArea = totalArea.Add(unit.AreaSqm)

		rent, ok := leaseRent[unit.ID]
		if !ok || !rent.IsPositive() {
			rent = unit.CurrentMonthlyRent
		}
		monthlyRent = monthlyRent.Add(rent)
	}

	totalValue := decimal.Zero
	for _, value := range propertyValues {
		totalValue = totalValue.Add(value)
	}

	totalDebt := decimal.Zero
	monthlyAnnuity := decimal.Zero
	weightedPercent := decimal.Zero
	for _, loan := range loans {
		if _, ok := propertyValues[loan.PropertyID]; !ok {
			continue
		}
		totalDebt = totalDebt.Add(loan.OutstandingBalanceEUR)
		monthlyAnnuity = monthlyAnnuity.Add(loan.AnnuityMonthlyEUR)
		weightedPercent = weightedPercent.Add(loan.OutstandingBalanceEUR.Mul(loan.InterestRatePercent))
	}

	avgRate := decimal.Zero
	if totalDebt.IsPositive() {
		avgRate = weightedPercent.Div(totalDebt).Div(hundred)
	}

	annualIncome := monthlyRent.Mul(monthsPerYear)
	annualDebtService := monthlyAnnuity.Mul(monthsPerYear)
	annualInterest := totalDebt.Mul(avgRate)
	annualAmortization := decimal.Max(annualDebtService.Sub(annualInterest), decimal.Zero)

	avgYield := decimal.Zero
	if totalValue.IsPositive() {
		avgYield = annualIncome.Div(totalValue)
	}

	return &domain.PortfolioSummary{
		PropertyCount:      len(propertyValues),
		UnitCount:          len(units),
		TotalArea:          totalArea,
		TotalValue:         totalValue,
		TotalDebt:          totalDebt,
		NetWealth:          totalValue.Sub(totalDebt),
		AnnualIncome:       annualIncome,
		AnnualDebtService:  annualDebtService,
		AnnualInterest:     annualInterest,
		AnnualAmortization: annualAmortization,
		AnnualSurplus:      annualIncome.Sub(annualDebtService),
		AvgYield:           avgYield,
		AvgInterestRate:    avgRate,
	}, true
}

// Cashflow builds the one-year income-surplus statement of a portfolio.
// A negative taxable surplus produces a tax benefit at the marginal rate.
func Cashflow(summary *domain.PortfolioSummary, marginalTaxRate decimal.Decimal) *domain.CashflowStatement {
	nonRecoverable := summary.TotalValue.Mul(nonRecoverableCostRate)
	afa := summary.TotalValue.Mul(buildingShareEstimate).Mul(linearAfaRate)

	deductible := summary.AnnualInterest.Add(afa).Add(nonRecoverable)
	surplus := summary.AnnualIncome.Sub(deductible)

	benefit := decimal.Zero
	if surplus.IsNegative() {
		benefit = surplus.Abs().Mul(marginalTaxRate)
	}

	before := summary.AnnualIncome.
		Sub(summary.AnnualInterest).
		Sub(nonRecoverable).
		Sub(summary.AnnualAmortization)

	return &domain.CashflowStatement{
		AnnualIncome:       summary.AnnualIncome,
		AnnualInterest:     summary.AnnualInterest,
		NonRecoverableCost: nonRecoverable,
		AnnualAmortization: summary.AnnualAmortization,
		EstimatedAfa:       afa,
		DeductibleSurplus:  surplus,
		TaxBenefit:         benefit,
		CashflowBeforeTax:  before,
		CashflowAfterTax:   before.Add(benefit),
	}
}
