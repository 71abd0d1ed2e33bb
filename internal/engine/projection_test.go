package engine

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaufy/projection-engine/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func exposeInput() domain.ProjectionInput {
	return domain.ProjectionInput{
		PropertyValue:     d("250000"),
		OutstandingDebt:   d("200000"),
		AnnualRent:        d("9600"),
		AnnualDebtService: d("11000"),
		InterestRate:      d("0.035"),
		ValueGrowthRate:   d("0.02"),
		RentGrowthRate:    d("0.015"),
		HorizonYears:      domain.DefaultHorizonYears,
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, actual.Equal(d(expected)), "expected %s, got %s", expected, actual.String())
}

func TestProject_ConcreteScenario(t *testing.T) {
	snapshots := Project(exposeInput())
	require.Len(t, snapshots, 41)

	start := snapshots[0]
	assert.Equal(t, 0, start.Year)
	assertDecimal(t, "9600", start.Rent)
	assertDecimal(t, "0", start.Interest)
	assertDecimal(t, "0", start.Amortization)
	assertDecimal(t, "200000", start.RemainingDebt)
	assertDecimal(t, "250000", start.PropertyValue)
	assertDecimal(t, "50000", start.NetWealth)

	first := snapshots[1]
	assert.Equal(t, 1, first.Year)
	assertDecimal(t, "7000", first.Interest)
	assertDecimal(t, "4000", first.Amortization)
	assertDecimal(t, "196000", first.RemainingDebt)
	assertDecimal(t, "255000", first.PropertyValue)
	assertDecimal(t, "9744", first.Rent)
	assertDecimal(t, "59000", first.NetWealth)

	second := snapshots[2]
	assertDecimal(t, "6860", second.Interest) // 196000 * 0.035
	assertDecimal(t, "4140", second.Amortization)
	assertDecimal(t, "191860", second.RemainingDebt)
	assertDecimal(t, "260100", second.PropertyValue)
}

func TestProject_Invariants(t *testing.T) {
	inputs := map[string]domain.ProjectionInput{
		"expose scenario": exposeInput(),
		"shortfall": {
			PropertyValue:     d("100000"),
			OutstandingDebt:   d("100000"),
			AnnualDebtService: d("2000"),
			InterestRate:      d("0.05"),
			ValueGrowthRate:   d("0.01"),
			HorizonYears:      40,
		},
		"declining market": {
			PropertyValue:     d("400000"),
			OutstandingDebt:   d("350000"),
			AnnualRent:        d("14400"),
			AnnualDebtService: d("21000"),
			InterestRate:      d("0.04"),
			ValueGrowthRate:   d("-0.03"),
			RentGrowthRate:    d("-0.01"),
			HorizonYears:      60,
		},
		"negative interest": {
			PropertyValue:     d("100000"),
			OutstandingDebt:   d("80000"),
			AnnualDebtService: d("4000"),
			InterestRate:      d("-0.005"),
			HorizonYears:      40,
		},
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			snapshots := Project(input)
			require.Len(t, snapshots, input.HorizonYears+1)

			for i, s := range snapshots {
				assert.Equal(t, i, s.Year)
				assert.False(t, s.RemainingDebt.IsNegative(), "year %d debt negative", s.Year)
				assert.False(t, s.Amortization.IsNegative(), "year %d amortization negative", s.Year)
				assert.True(t, s.NetWealth.Equal(s.PropertyValue.Sub(s.RemainingDebt)), "year %d wealth identity", s.Year)

				if i > 0 {
					prev := snapshots[i-1]
					assert.True(t, s.RemainingDebt.LessThanOrEqual(prev.RemainingDebt), "year %d debt increased", s.Year)
					assert.True(t, s.RemainingDebt.Equal(prev.RemainingDebt.Sub(s.Amortization)), "year %d debt roll-forward", s.Year)
				}
			}
		})
	}
}

func TestProject_FullRepayment(t *testing.T) {
	input := domain.ProjectionInput{
		PropertyValue:     d("300000"),
		OutstandingDebt:   d("100000"),
		AnnualRent:        d("12000"),
		AnnualDebtService: d("5000"),
		InterestRate:      d("0.03"),
		HorizonYears:      40,
	}

	snapshots := Project(input)
	summary := Summarize(snapshots)

	assert.True(t, summary.FullyRepaid)
	assert.Equal(t, 31, summary.FullRepaymentYear)
	assert.True(t, snapshots[30].RemainingDebt.IsPositive())
	assert.True(t, snapshots[31].RemainingDebt.IsZero())
	assertDecimal(t, "100000", summary.TotalAmortizationPaid)

	// final payment is capped at what is left
	assert.True(t, snapshots[31].Amortization.Equal(snapshots[30].RemainingDebt))
	for _, s := range snapshots[32:] {
		assert.True(t, s.Interest.IsZero())
		assert.True(t, s.Amortization.IsZero())
	}
}

func TestProject_NoDebt(t *testing.T) {
	input := domain.ProjectionInput{
		PropertyValue:     d("500000"),
		AnnualRent:        d("24000"),
		AnnualDebtService: d("12000"),
		InterestRate:      d("0.04"),
		ValueGrowthRate:   d("0.02"),
		HorizonYears:      40,
	}

	snapshots := Project(input)
	value := d("500000")
	for i, s := range snapshots {
		assert.True(t, s.Interest.IsZero())
		assert.True(t, s.Amortization.IsZero())
		assert.True(t, s.RemainingDebt.IsZero())
		if i > 0 {
			value = value.Mul(d("1.02"))
		}
		assert.True(t, s.PropertyValue.Sub(value).Abs().LessThan(d("0.000001")), "year %d value %s", s.Year, s.PropertyValue)
	}

	summary := Summarize(snapshots)
	assert.True(t, summary.FullyRepaid)
	assert.Equal(t, 0, summary.FullRepaymentYear)
	assertDecimal(t, "0", summary.TotalInterestPaid)
}

func TestProject_ZeroGrowthIsFlat(t *testing.T) {
	input := exposeInput()
	input.ValueGrowthRate = decimal.Zero
	input.RentGrowthRate = decimal.Zero

	for _, s := range Project(input) {
		assertDecimal(t, "250000", s.PropertyValue)
		assertDecimal(t, "9600", s.Rent)
	}
}

func TestProject_Horizon(t *testing.T) {
	tests := []struct {
		name     string
		horizon  int
		expected int
	}{
		{name: "zero horizon", horizon: 0, expected: 1},
		{name: "negative horizon", horizon: -5, expected: 1},
		{name: "default horizon", horizon: 40, expected: 41},
		{name: "single year", horizon: 1, expected: 2},
		{name: "long horizon", horizon: 1000, expected: 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := exposeInput()
			input.HorizonYears = tt.horizon

			snapshots := Project(input)
			assert.Len(t, snapshots, tt.expected)
			assert.Equal(t, 0, snapshots[0].Year)
			assert.Equal(t, tt.expected-1, snapshots[len(snapshots)-1].Year)
		})
	}
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	input := exposeInput()
	before := input

	Project(input)

	assert.True(t, before.OutstandingDebt.Equal(input.OutstandingDebt))
	assert.True(t, before.PropertyValue.Equal(input.PropertyValue))
	assert.True(t, before.AnnualRent.Equal(input.AnnualRent))
}

func TestProject_Concurrent(t *testing.T) {
	input := exposeInput()
	want := Project(input)

	var wg sync.WaitGroup
	results := make([][]domain.YearlySnapshot, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Project(input)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Len(t, got, len(want))
		for year := range want {
			assert.True(t, want[year].NetWealth.Equal(got[year].NetWealth))
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Run("not repaid within horizon", func(t *testing.T) {
		input := exposeInput()
		input.HorizonYears = 10

		summary := Summarize(Project(input))
		assert.False(t, summary.FullyRepaid)
		assert.Equal(t, 10, summary.FullRepaymentYear)
		assert.Equal(t, 10, summary.HorizonYears)
	})

	t.Run("totals cover every year", func(t *testing.T) {
		input := exposeInput()
		input.HorizonYears = 2

		summary := Summarize(Project(input))
		assertDecimal(t, "13860", summary.TotalInterestPaid)    // 7000 + 6860
		assertDecimal(t, "8140", summary.TotalAmortizationPaid) // 4000 + 4140
	})

	t.Run("repaid inside horizon", func(t *testing.T) {
		summary := Summarize(Project(exposeInput()))
		assert.True(t, summary.FullyRepaid)
		assert.Equal(t, 30, summary.FullRepaymentYear)
		assertDecimal(t, "200000", summary.TotalAmortizationPaid)
	})

	t.Run("empty sequence", func(t *testing.T) {
		summary := Summarize(nil)
		assert.False(t, summary.FullyRepaid)
		assert.Equal(t, 0, summary.HorizonYears)
		_, ok := summary.AtYear(0)
		assert.False(t, ok)
	})
}

func TestSummary_AtYear(t *testing.T) {
	snapshots := Project(exposeInput())
	summary := Summarize(snapshots)

	tests := []struct {
		name  string
		year  int
		found bool
	}{
		{name: "start", year: 0, found: true},
		{name: "year 10", year: 10, found: true},
		{name: "year 20", year: 20, found: true},
		{name: "last year", year: 40, found: true},
		{name: "past horizon", year: 41, found: false},
		{name: "negative", year: -1, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, ok := summary.AtYear(tt.year)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.year, snapshot.Year)
				assert.True(t, snapshot.NetWealth.Equal(snapshots[tt.year].NetWealth))
			} else {
				assert.Equal(t, domain.YearlySnapshot{}, snapshot)
			}
		})
	}
}

func TestDegenerate(t *testing.T) {
	shortfall := domain.ProjectionInput{
		PropertyValue:     d("100000"),
		OutstandingDebt:   d("100000"),
		AnnualDebtService: d("2000"),
		InterestRate:      d("0.03"),
		HorizonYears:      3,
	}

	snapshots := Project(shortfall)
	assert.True(t, Degenerate(snapshots))
	for _, s := range snapshots {
		assertDecimal(t, "100000", s.RemainingDebt)
	}
	assert.False(t, Summarize(snapshots).FullyRepaid)

	assert.False(t, Degenerate(Project(exposeInput())))
}

func TestRun_Milestones(t *testing.T) {
	result := Run(exposeInput(), []int{1, 10, 50})

	require.NotNil(t, result)
	assert.Len(t, result.Snapshots, 41)
	assert.Len(t, result.Milestones, 2)
	assertDecimal(t, "196000", result.Milestones[1].RemainingDebt)
	_, ok := result.Milestones[50]
	assert.False(t, ok)
	assert.False(t, result.Degenerate)
}
