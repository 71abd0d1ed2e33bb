package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaufy/projection-engine/internal/domain"
)

type portfolioFixture struct {
	units  []domain.Unit
	leases []domain.Lease
	loans  []domain.Loan
}

func newPortfolioFixture() portfolioFixture {
	propA, propB, propC := uuid.New(), uuid.New(), uuid.New()
	unitA1, unitA2, unitB := uuid.New(), uuid.New(), uuid.New()

	return portfolioFixture{
		units: []domain.Unit{
			{ID: unitA1, PropertyID: propA, AreaSqm: d("70"), CurrentMonthlyRent: d("600"), MarketValue: d("400000"), PropertyStatus: domain.PropertyStatusActive},
			{ID: unitA2, PropertyID: propA, AreaSqm: d("50"), CurrentMonthlyRent: d("500"), MarketValue: d("400000"), PropertyStatus: domain.PropertyStatusActive},
			{ID: unitB, PropertyID: propB, AreaSqm: d("80"), CurrentMonthlyRent: d("900"), MarketValue: d("200000"), PropertyStatus: domain.PropertyStatusActive},
		},
		leases: []domain.Lease{
			{UnitID: unitA1, RentColdEUR: d("750"), MonthlyRent: d("900"), Status: domain.LeaseStatusActive},
			{UnitID: unitB, MonthlyRent: d("1000"), Status: domain.LeaseStatusActive},
			{UnitID: unitA2, RentColdEUR: d("999"), Status: "terminated"},
		},
		loans: []domain.Loan{
			{ID: uuid.New(), PropertyID: propA, OutstandingBalanceEUR: d("300000"), AnnuityMonthlyEUR: d("1250"), InterestRatePercent: d("3")},
			{ID: uuid.New(), PropertyID: propB, OutstandingBalanceEUR: d("100000"), AnnuityMonthlyEUR: d("500"), InterestRatePercent: d("4")},
			// belongs to a property outside the active set
			{ID: uuid.New(), PropertyID: propC, OutstandingBalanceEUR: d("999999"), AnnuityMonthlyEUR: d("9999"), InterestRatePercent: d("9")},
		},
	}
}

func TestAggregatePortfolio(t *testing.T) {
	f := newPortfolioFixture()

	summary, ok := AggregatePortfolio(f.units, f.leases, f.loans)
	require.True(t, ok)

	assert.Equal(t, 2, summary.PropertyCount)
	assert.Equal(t, 3, summary.UnitCount)
	assertDecimal(t, "200", summary.TotalArea)
	assertDecimal(t, "600000", summary.TotalValue)
	assertDecimal(t, "400000", summary.TotalDebt)
	assertDecimal(t, "200000", summary.NetWealth)
	// 750 cold + 500 unit fallback + 1000 lease, times 12
	assertDecimal(t, "27000", summary.AnnualIncome)
	assertDecimal(t, "21000", summary.AnnualDebtService)
	// (300000*3 + 100000*4) / 400000 = 3.25 %
	assertDecimal(t, "0.0325", summary.AvgInterestRate)
	assertDecimal(t, "13000", summary.AnnualInterest)
	assertDecimal(t, "8000", summary.AnnualAmortization)
	assertDecimal(t, "6000", summary.AnnualSurplus)
	assertDecimal(t, "0.045", summary.AvgYield)
}

func TestAggregatePortfolio_Empty(t *testing.T) {
	summary, ok := AggregatePortfolio(nil, nil, nil)
	assert.False(t, ok)
	assert.Nil(t, summary)
}

func TestAggregatePortfolio_NoLoans(t *testing.T) {
	f := newPortfolioFixture()

	summary, ok := AggregatePortfolio(f.units, f.leases, nil)
	require.True(t, ok)
	assert.True(t, summary.TotalDebt.IsZero())
	assert.True(t, summary.AvgInterestRate.IsZero())

	snapshots := Project(summary.ProjectionInput(d("0.02"), d("0.015"), 40))
	for _, s := range snapshots {
		assert.True(t, s.Interest.IsZero())
		assert.True(t, s.RemainingDebt.IsZero())
	}
}

func TestPortfolioSummary_ProjectionInput(t *testing.T) {
	f := newPortfolioFixture()
	summary, _ := AggregatePortfolio(f.units, f.leases, f.loans)

	input := summary.ProjectionInput(d("0.02"), d("0.015"), 30)
	assertDecimal(t, "600000", input.PropertyValue)
	assertDecimal(t, "400000", input.OutstandingDebt)
	assertDecimal(t, "27000", input.AnnualRent)
	assertDecimal(t, "21000", input.AnnualDebtService)
	assertDecimal(t, "0.0325", input.InterestRate)
	assert.Equal(t, 30, input.HorizonYears)

	snapshots := Project(input)
	assertDecimal(t, "13000", snapshots[1].Interest)
	assertDecimal(t, "8000", snapshots[1].Amortization)
}

func TestCashflow(t *testing.T) {
	summary := &domain.PortfolioSummary{
		TotalValue:         d("600000"),
		AnnualIncome:       d("27000"),
		AnnualInterest:     d("13000"),
		AnnualAmortization: d("8000"),
	}

	statement := Cashflow(summary, d("0.42"))

	assertDecimal(t, "3000", statement.NonRecoverableCost) // 0.5 % of value
	assertDecimal(t, "9600", statement.EstimatedAfa)       // 2 % of 80 % of value
	assertDecimal(t, "1400", statement.DeductibleSurplus)  // 27000 - 13000 - 9600 - 3000
	assertDecimal(t, "0", statement.TaxBenefit)
	assertDecimal(t, "3000", statement.CashflowBeforeTax)
	assertDecimal(t, "3000", statement.CashflowAfterTax)

	summary.AnnualIncome = d("20000")
	statement = Cashflow(summary, d("0.42"))
	assertDecimal(t, "-5600", statement.DeductibleSurplus)
	assertDecimal(t, "2352", statement.TaxBenefit)
	assertDecimal(t, "-4000", statement.CashflowBeforeTax)
	assertDecimal(t, "-1648", statement.CashflowAfterTax)
}
