package engine

import (
	"github.com/shopspring/decimal"

	"github.com/kaufy/projection-engine/internal/domain"
)

// RateKey addresses one cell of the financing rate matrix.
type RateKey struct {
	TermYears  int
	LTVPercent int
}

// RateMatrix maps term and LTV bracket to a nominal interest rate in percent.
type RateMatrix map[RateKey]decimal.Decimal

// NewRateMatrix indexes the stored matrix entries.
func NewRateMatrix(entries []domain.InterestRateEntry) RateMatrix {
	matrix := make(RateMatrix, len(entries))
	for _, e := range entries {
		matrix[RateKey{TermYears: e.TermYears, LTVPercent: e.LTVPercent}] = e.InterestRate
	}
	return matrix
}

// Lookup returns the rate for a term and LTV, falling back when the cell is missing.
func (m RateMatrix) Lookup(termYears, ltv int, fallback decimal.Decimal) decimal.Decimal {
	if rate, ok := m[RateKey{TermYears: termYears, LTVPercent: LTVBracket(ltv)}]; ok {
		return rate
	}
	return fallback
}

// LTVBracket rounds an LTV up to the next ten, clamped to the 60..100 range the matrix covers.
func LTVBracket(ltv int) int {
	bracket := ((ltv + 9) / 10) * 10
	switch {
	case bracket < 60:
		return 60
	case bracket > 100:
		return 100
	}
	return bracket
}

// LTV is the loan-to-value ratio in whole percent.
func LTV(loan, price decimal.Decimal) int {
	if !price.IsPositive() {
		return 0
	}
	return int(loan.Div(price).Mul(hundred).Round(0).IntPart())
}

// AfaRates maps a depreciation model to its yearly rate in percent.
type AfaRates map[string]decimal.Decimal

// DefaultAfaRates are used for any model the tax parameters do not override.
func DefaultAfaRates() AfaRates {
	return AfaRates{
		domain.AfaModelLinear: decimal.NewFromInt(2),
		domain.AfaModel7i:     decimal.NewFromInt(9),
		domain.AfaModel7h:     decimal.NewFromInt(9),
		domain.AfaModel7b:     decimal.NewFromInt(5),
	}
}

// NewAfaRates overlays stored tax parameters on the defaults.
func NewAfaRates(params []domain.TaxParameter) AfaRates {
	rates := DefaultAfaRates()
	codes := map[string]string{
		domain.TaxParamAfaLinear: domain.AfaModelLinear,
		domain.TaxParamAfa7i:     domain.AfaModel7i,
		domain.TaxParamAfa7h:     domain.AfaModel7h,
		domain.TaxParamAfa7b:     domain.AfaModel7b,
	}
	for _, p := range params {
		if model, ok := codes[p.Code]; ok && p.Value.IsPositive() {
			rates[model] = p.Value
		}
	}
	return rates
}

// InvestmentParams are the looked-up market and tax parameters of a calculation.
type InvestmentParams struct {
	Rates            RateMatrix
	FallbackRate     decimal.Decimal
	Afa              AfaRates
	ChurchTaxPercent decimal.Decimal
	HorizonYears     int
}

// CalculateInvestment evaluates a single acquisition: first-year figures, tax effect
// against the investor's current taxable income, and a projection on the shared engine
// decorated with the tax view of every year. Percent inputs are converted to fractions here.
func CalculateInvestment(req domain.InvestmentRequest, params InvestmentParams) *domain.InvestmentResult {
	loan := LoanAmount(req.PurchasePrice, req.Equity)
	ltv := LTV(loan, req.PurchasePrice)
	ratePercent := params.Rates.Lookup(req.TermYears, ltv, params.FallbackRate)

	rate := ratePercent.Div(hundred)
	repayment := req.RepaymentRate.Div(hundred)

	afaRate := params.Afa[req.AfaModel]
	yearlyAfa := req.PurchasePrice.Mul(req.BuildingShare).Mul(afaRate).Div(hundred)

	yearlyRent := req.MonthlyRent.Mul(monthsPerYear)
	yearlyManagement := req.ManagementCostMonthly.Mul(monthsPerYear)
	yearlyInterest := loan.Mul(rate)
	yearlyRepayment := loan.Mul(repayment)

	profile := TaxProfile{
		MaritalStatus:    req.MaritalStatus,
		HasChurchTax:     req.HasChurchTax,
		ChurchTaxPercent: params.ChurchTaxPercent,
	}
	taxBefore := profile.TotalTax(req.TaxableIncome)

	taxSavings := func(rent, interest decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
		taxable := rent.Sub(interest).Sub(yearlyManagement).Sub(yearlyAfa)
		return taxable, taxBefore.Sub(profile.TotalTax(req.TaxableIncome.Add(taxable)))
	}

	_, yearlySavings := taxSavings(yearlyRent, yearlyInterest)
	operating := yearlyRent.Sub(yearlyInterest).Sub(yearlyManagement)
	cashflowBefore := operating.Sub(yearlyRepayment)
	cashflowAfter := cashflowBefore.Add(yearlySavings)

	roiBefore, roiAfter := decimal.Zero, decimal.Zero
	if req.Equity.IsPositive() {
		roiBefore = operating.Div(req.Equity).Mul(hundred)
		roiAfter = operating.Add(yearlySavings).Div(req.Equity).Mul(hundred)
	}

	horizon := params.HorizonYears
	if req.HorizonYears != nil {
		horizon = *req.HorizonYears
	}

	input := domain.ProjectionInput{
		PropertyValue:     req.PurchasePrice,
		OutstandingDebt:   loan,
		AnnualRent:        yearlyRent,
		AnnualDebtService: loan.Mul(rate.Add(repayment)),
		InterestRate:      rate,
		ValueGrowthRate:   req.ValueGrowthRate.Div(hundred),
		RentGrowthRate:    req.RentGrowthRate.Div(hundred),
		HorizonYears:      horizon,
	}
	snapshots := Project(input)

	years := make([]domain.InvestmentYear, 0, len(snapshots))
	for _, s := range snapshots[1:] {
		taxable, savings := taxSavings(s.Rent, s.Interest)
		before := s.Rent.Sub(s.Interest).Sub(yearlyManagement).Sub(s.Amortization)

		years = append(years, domain.InvestmentYear{
			YearlySnapshot:      s,
			ManagementCost:      yearlyManagement,
			Afa:                 yearlyAfa,
			TaxableRentalIncome: taxable.Round(2),
			TaxSavings:          savings.Round(2),
			CashflowBeforeTax:   before.Round(2),
			CashflowAfterTax:    before.Add(savings).Round(2),
		})
	}

	return &domain.InvestmentResult{
		Summary: domain.InvestmentSummary{
			MonthlyBurden:    cashflowAfter.Neg().Div(monthsPerYear).Round(2),
			TotalInvestment:  req.Equity,
			LoanAmount:       loan,
			LTV:              ltv,
			InterestRate:     ratePercent,
			YearlyRent:       yearlyRent,
			YearlyInterest:   yearlyInterest.Round(2),
			YearlyRepayment:  yearlyRepayment.Round(2),
			YearlyAfa:        yearlyAfa.Round(2),
			YearlyTaxSavings: yearlySavings.Round(2),
			RoiBeforeTax:     roiBefore.Round(2),
			RoiAfterTax:      roiAfter.Round(2),
		},
		Projection:        years,
		ProjectionSummary: Summarize(snapshots),
		Inputs:            req,
	}
}
