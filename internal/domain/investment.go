package domain

import (
	"github.com/shopspring/decimal"
)

const (
	MaritalStatusSingle  = "single"
	MaritalStatusMarried = "married"

	AfaModelLinear = "linear"
	AfaModel7i     = "7i"
	AfaModel7h     = "7h"
	AfaModel7b     = "7b"
)

// Tax parameter codes as stored in tax_parameters.code.
const (
	TaxParamAfaLinear = "AFA_LINEAR"
	TaxParamAfa7i     = "AFA_7I"
	TaxParamAfa7h     = "AFA_7H"
	TaxParamAfa7b     = "AFA_7B"
)

// InterestRateEntry is one cell of the financing rate matrix.
type InterestRateEntry struct {
	TermYears    int             `db:"term_years"`
	LTVPercent   int             `db:"ltv_percent"`
	InterestRate decimal.Decimal `db:"interest_rate"`
}

// TaxParameter is a named tax constant such as an AfA rate in percent.
type TaxParameter struct {
	Code  string          `db:"code"`
	Value decimal.Decimal `db:"value"`
}

// InvestmentRequest describes a single acquisition for the investment calculator.
// Percent-valued fields are in percent (2 for 2 %), matching the calculator's sliders.
type InvestmentRequest struct {
	PurchasePrice         decimal.Decimal `json:"purchase_price" validate:"gt=0"`
	MonthlyRent           decimal.Decimal `json:"monthly_rent" validate:"gte=0"`
	Equity                decimal.Decimal `json:"equity" validate:"gte=0"`
	TermYears             int             `json:"term_years" validate:"oneof=5 10 15 20 25 30"`
	RepaymentRate         decimal.Decimal `json:"repayment_rate" validate:"gte=0,lte=100"`
	TaxableIncome         decimal.Decimal `json:"taxable_income" validate:"gte=0"`
	MaritalStatus         string          `json:"marital_status" validate:"oneof=single married"`
	HasChurchTax          bool            `json:"has_church_tax"`
	ChurchTaxState        string          `json:"church_tax_state,omitempty"`
	AfaModel              string          `json:"afa_model" validate:"oneof=linear 7i 7h 7b"`
	BuildingShare         decimal.Decimal `json:"building_share" validate:"gte=0,lte=1"`
	ManagementCostMonthly decimal.Decimal `json:"management_cost_monthly" validate:"gte=0"`
	ValueGrowthRate       decimal.Decimal `json:"value_growth_rate"`
	RentGrowthRate        decimal.Decimal `json:"rent_growth_rate"`
	// HorizonYears overrides the configured horizon when set; 0 is a valid horizon.
	HorizonYears          *int            `json:"horizon_years,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// InvestmentYear decorates a projection snapshot with the tax view of that year.
type InvestmentYear struct {
	YearlySnapshot
	ManagementCost      decimal.Decimal `json:"management_cost"`
	Afa                 decimal.Decimal `json:"afa"`
	TaxableRentalIncome decimal.Decimal `json:"taxable_rental_income"`
	TaxSavings          decimal.Decimal `json:"tax_savings"`
	CashflowBeforeTax   decimal.Decimal `json:"cashflow_before_tax"`
	CashflowAfterTax    decimal.Decimal `json:"cashflow_after_tax"`
}

type InvestmentSummary struct {
	MonthlyBurden    decimal.Decimal `json:"monthly_burden"`
	TotalInvestment  decimal.Decimal `json:"total_investment"`
	LoanAmount       decimal.Decimal `json:"loan_amount"`
	LTV              int             `json:"ltv"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	YearlyRent       decimal.Decimal `json:"yearly_rent"`
	YearlyInterest   decimal.Decimal `json:"yearly_interest"`
	YearlyRepayment  decimal.Decimal `json:"yearly_repayment"`
	YearlyAfa        decimal.Decimal `json:"yearly_afa"`
	YearlyTaxSavings decimal.Decimal `json:"yearly_tax_savings"`
	RoiBeforeTax     decimal.Decimal `json:"roi_before_tax"`
	RoiAfterTax      decimal.Decimal `json:"roi_after_tax"`
}

type InvestmentResult struct {
	Summary           InvestmentSummary `json:"summary"`
	Projection        []InvestmentYear  `json:"projection"`
	ProjectionSummary ProjectionSummary `json:"projection_summary"`
	Inputs            InvestmentRequest `json:"inputs"`
}
