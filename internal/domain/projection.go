package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultHorizonYears is the horizon every presentation surface uses unless told otherwise.
const DefaultHorizonYears = 40

// MaxHorizonYears bounds horizons accepted over HTTP. The engine itself has no ceiling.
const MaxHorizonYears = 100

// ProjectionInput is the starting position and assumptions of a projection.
// Rates are fractions (0.035 for 3.5 %). Negative growth rates model decline and are allowed.
type ProjectionInput struct {
	PropertyValue     decimal.Decimal `json:"property_value" yaml:"property_value" validate:"gte=0"`
	OutstandingDebt   decimal.Decimal `json:"outstanding_debt" yaml:"outstanding_debt" validate:"gte=0"`
	AnnualRent        decimal.Decimal `json:"annual_rent" yaml:"annual_rent" validate:"gte=0"`
	AnnualDebtService decimal.Decimal `json:"annual_debt_service" yaml:"annual_debt_service" validate:"gte=0"`
	InterestRate      decimal.Decimal `json:"interest_rate" yaml:"interest_rate"`
	ValueGrowthRate   decimal.Decimal `json:"value_growth_rate" yaml:"value_growth_rate"`
	RentGrowthRate    decimal.Decimal `json:"rent_growth_rate" yaml:"rent_growth_rate"`
	HorizonYears      int             `json:"horizon_years" yaml:"horizon_years"`
}

// YearlySnapshot is the state at the end of a projected year. Year 0 is the starting position.
type YearlySnapshot struct {
	Year          int             `json:"year"`
	Rent          decimal.Decimal `json:"rent"`
	Interest      decimal.Decimal `json:"interest"`
	Amortization  decimal.Decimal `json:"amortization"`
	RemainingDebt decimal.Decimal `json:"remaining_debt"`
	PropertyValue decimal.Decimal `json:"property_value"`
	NetWealth     decimal.Decimal `json:"net_wealth"`
}

// ProjectionSummary is a read-only view over a snapshot sequence.
type ProjectionSummary struct {
	// FullRepaymentYear equals HorizonYears when FullyRepaid is false.
	FullRepaymentYear     int             `json:"full_repayment_year"`
	FullyRepaid           bool            `json:"fully_repaid"`
	TotalInterestPaid     decimal.Decimal `json:"total_interest_paid"`
	TotalAmortizationPaid decimal.Decimal `json:"total_amortization_paid"`
	HorizonYears          int             `json:"horizon_years"`

	snapshots []YearlySnapshot
}

// NewProjectionSummary binds a summary to the snapshots it was derived from so milestones can be looked up.
func NewProjectionSummary(snapshots []YearlySnapshot) ProjectionSummary {
	return ProjectionSummary{snapshots: snapshots}
}

// AtYear returns the snapshot for year n, or false when n lies outside the horizon.
func (s ProjectionSummary) AtYear(n int) (YearlySnapshot, bool) {
	if n < 0 || n >= len(s.snapshots) {
		return YearlySnapshot{}, false
	}
	return s.snapshots[n], true
}

// NewAsset is a prospective acquisition merged into an existing portfolio projection.
type NewAsset struct {
	Price            decimal.Decimal `json:"price" yaml:"price" validate:"gte=0"`
	MonthlyRent      decimal.Decimal `json:"monthly_rent" yaml:"monthly_rent" validate:"gte=0"`
	Equity           decimal.Decimal `json:"equity" yaml:"equity" validate:"gte=0"`
	InterestRate     decimal.Decimal `json:"interest_rate" yaml:"interest_rate"`
	AmortizationRate decimal.Decimal `json:"amortization_rate" yaml:"amortization_rate"`
}

// ProjectionResult bundles a projection with its derived summary and milestones.
type ProjectionResult struct {
	Input      ProjectionInput        `json:"input"`
	Snapshots  []YearlySnapshot       `json:"snapshots"`
	Summary    ProjectionSummary      `json:"summary"`
	Degenerate bool                   `json:"degenerate"`
	Milestones map[int]YearlySnapshot `json:"milestones,omitempty"`
	FromCache  bool                   `json:"from_cache"`
}

// DTOs for requests and responses

type ProjectionRequest struct {
	Input      ProjectionInput `json:"input"`
	Milestones []int           `json:"milestones,omitempty" validate:"max=20,dive,gte=0"`
}

type CombineRequest struct {
	Base       ProjectionInput `json:"base"`
	Asset      NewAsset        `json:"asset"`
	Milestones []int           `json:"milestones,omitempty" validate:"max=20,dive,gte=0"`
}

type CombineResponse struct {
	Combined   ProjectionInput   `json:"combined"`
	Projection *ProjectionResult `json:"projection"`
}
