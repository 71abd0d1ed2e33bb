package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PropertyStatusActive = "active"
	LeaseStatusActive    = "active"
)

// Unit is a rentable unit joined with its property's market value and status.
type Unit struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	PropertyID         uuid.UUID       `json:"property_id" db:"property_id"`
	AreaSqm            decimal.Decimal `json:"area_sqm" db:"area_sqm"`
	CurrentMonthlyRent decimal.Decimal `json:"current_monthly_rent" db:"current_monthly_rent"`
	MarketValue        decimal.Decimal `json:"market_value" db:"market_value"`
	PropertyStatus     string          `json:"property_status" db:"property_status"`
}

// Lease is a rental contract on a unit. Cold rent takes precedence over the gross monthly rent.
type Lease struct {
	UnitID      uuid.UUID       `json:"unit_id" db:"unit_id"`
	MonthlyRent decimal.Decimal `json:"monthly_rent" db:"monthly_rent"`
	RentColdEUR decimal.Decimal `json:"rent_cold_eur" db:"rent_cold_eur"`
	Status      string          `json:"status" db:"status"`
}

// Loan is a financing record attached to a property.
type Loan struct {
	ID                    uuid.UUID       `json:"id" db:"id"`
	PropertyID            uuid.UUID       `json:"property_id" db:"property_id"`
	OutstandingBalanceEUR decimal.Decimal `json:"outstanding_balance_eur" db:"outstanding_balance_eur"`
	AnnuityMonthlyEUR     decimal.Decimal `json:"annuity_monthly_eur" db:"annuity_monthly_eur"`
	InterestRatePercent   decimal.Decimal `json:"interest_rate_percent" db:"interest_rate_percent"`
}

// PortfolioSummary aggregates a tenant's active properties, leases and loans.
// Rates are fractions.
type PortfolioSummary struct {
	PropertyCount      int             `json:"property_count"`
	UnitCount          int             `json:"unit_count"`
	TotalArea          decimal.Decimal `json:"total_area"`
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalDebt          decimal.Decimal `json:"total_debt"`
	NetWealth          decimal.Decimal `json:"net_wealth"`
	AnnualIncome       decimal.Decimal `json:"annual_income"`
	AnnualDebtService  decimal.Decimal `json:"annual_debt_service"`
	AnnualInterest     decimal.Decimal `json:"annual_interest"`
	AnnualAmortization decimal.Decimal `json:"annual_amortization"`
	AnnualSurplus      decimal.Decimal `json:"annual_surplus"`
	AvgYield           decimal.Decimal `json:"avg_yield"`
	AvgInterestRate    decimal.Decimal `json:"avg_interest_rate"`
}

// ProjectionInput adapts the summary to the projection engine.
func (s *PortfolioSummary) ProjectionInput(valueGrowth, rentGrowth decimal.Decimal, horizon int) ProjectionInput {
	return ProjectionInput{
		PropertyValue:     s.TotalValue,
		OutstandingDebt:   s.TotalDebt,
		AnnualRent:        s.AnnualIncome,
		AnnualDebtService: s.AnnualDebtService,
		InterestRate:      s.AvgInterestRate,
		ValueGrowthRate:   valueGrowth,
		RentGrowthRate:    rentGrowth,
		HorizonYears:      horizon,
	}
}

// CashflowStatement is the simplified income-surplus statement (EÜR) for one year.
type CashflowStatement struct {
	AnnualIncome       decimal.Decimal `json:"annual_income"`
	AnnualInterest     decimal.Decimal `json:"annual_interest"`
	NonRecoverableCost decimal.Decimal `json:"non_recoverable_cost"`
	AnnualAmortization decimal.Decimal `json:"annual_amortization"`
	EstimatedAfa       decimal.Decimal `json:"estimated_afa"`
	DeductibleSurplus  decimal.Decimal `json:"deductible_surplus"`
	TaxBenefit         decimal.Decimal `json:"tax_benefit"`
	CashflowBeforeTax  decimal.Decimal `json:"cashflow_before_tax"`
	CashflowAfterTax   decimal.Decimal `json:"cashflow_after_tax"`
}

// PortfolioAssumptions are the user-adjustable sliders of the portfolio view.
type PortfolioAssumptions struct {
	ValueGrowthRate decimal.Decimal
	RentGrowthRate  decimal.Decimal
	HorizonYears    int
	MarginalTaxRate decimal.Decimal
}

type PortfolioResponse struct {
	TenantID   uuid.UUID          `json:"tenant_id"`
	Summary    *PortfolioSummary  `json:"summary"`
	Cashflow   *CashflowStatement `json:"cashflow"`
	Projection *ProjectionResult  `json:"projection"`
}
