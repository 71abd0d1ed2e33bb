package engine

import (
	"github.com/shopspring/decimal"

	"github.com/kaufy/projection-engine/internal/domain"
)

// scale bounds the number of decimal places carried by compounded amounts.
// Without it every year multiplies the digit count of value and rent.
const scale int32 = 10

var one = decimal.NewFromInt(1)

// Project computes the year-by-year amortization and wealth trajectory of input.
// The result has HorizonYears+1 entries (year 0 is the starting position); a negative
// horizon is treated as zero. Project is a pure function and safe for concurrent use.
//
// Interest is charged on the balance entering the year. Amortization is the part of the
// debt service left after interest, capped at the remaining debt and never negative, so a
// debt service that does not cover interest leaves the balance flat instead of growing it.
func Project(input domain.ProjectionInput) []domain.YearlySnapshot {
	horizon := input.HorizonYears
	if horizon < 0 {
		horizon = 0
	}

	debt := input.OutstandingDebt
	value := input.PropertyValue
	rent := input.AnnualRent

	valueFactor := one.Add(input.ValueGrowthRate)
	rentFactor := one.Add(input.RentGrowthRate)

	snapshots := make([]domain.YearlySnapshot, 0, horizon+1)
	snapshots = append(snapshots, domain.YearlySnapshot{
		Year:          0,
		Rent:          rent,
		Interest:      decimal.Zero,
		Amortization:  decimal.Zero,
		RemainingDebt: debt,
		PropertyValue: value,
		NetWealth:     value.Sub(debt),
	})

	for year := 1; year <= horizon; year++ {
		interest := debt.Mul(input.InterestRate).Round(scale)

		amortization := decimal.Zero
		if debt.IsPositive() {
			amortization = decimal.Min(input.AnnualDebtService.Sub(interest), debt)
			if amortization.IsNegative() {
				amortization = decimal.Zero
			}
		}

		debt = debt.Sub(amortization)
		if debt.IsNegative() {
			debt = decimal.Zero
		}

		value = value.Mul(valueFactor).Round(scale)
		rent = rent.Mul(rentFactor).Round(scale)

		snapshots = append(snapshots, domain.YearlySnapshot{
			Year:          year,
			Rent:          rent,
			Interest:      interest,
			Amortization:  amortization,
			RemainingDebt: debt,
			PropertyValue: value,
			NetWealth:     value.Sub(debt),
		})
	}

	return snapshots
}

// Summarize derives the headline figures of a projection in a single pass.
func Summarize(snapshots []domain.YearlySnapshot) domain.ProjectionSummary {
	summary := domain.NewProjectionSummary(snapshots)
	summary.TotalInterestPaid = decimal.Zero
	summary.TotalAmortizationPaid = decimal.Zero
	if len(snapshots) == 0 {
		return summary
	}

	summary.HorizonYears = snapshots[len(snapshots)-1].Year
	summary.FullRepaymentYear = summary.HorizonYears

	for _, snapshot := range snapshots {
		summary.TotalInterestPaid = summary.TotalInterestPaid.Add(snapshot.Interest)
		summary.TotalAmortizationPaid = summary.TotalAmortizationPaid.Add(snapshot.Amortization)

		if !summary.FullyRepaid && snapshot.RemainingDebt.IsZero() {
			summary.FullyRepaid = true
			summary.FullRepaymentYear = snapshot.Year
		}
	}

	return summary
}

// Degenerate reports whether some year carried debt into it but amortized nothing,
// i.e. the debt service did not cover that year's interest.
func Degenerate(snapshots []domain.YearlySnapshot) bool {
	for i := 1; i < len(snapshots); i++ {
		if snapshots[i-1].RemainingDebt.IsPositive() && snapshots[i].Amortization.IsZero() {
			return true
		}
	}
	return false
}

// Milestones picks the requested years out of a summary; years beyond the horizon are skipped.
func Milestones(summary domain.ProjectionSummary, years []int) map[int]domain.YearlySnapshot {
	if len(years) == 0 {
		return nil
	}

	milestones := make(map[int]domain.YearlySnapshot, len(years))
	for _, year := range years {
		if snapshot, ok := summary.AtYear(year); ok {
			milestones[year] = snapshot
		}
	}
	return milestones
}

// Run projects input and derives everything a presentation surface needs from it.
func Run(input domain.ProjectionInput, milestoneYears []int) *domain.ProjectionResult {
	return Derive(input, Project(input), milestoneYears)
}

// Derive rebuilds a result from snapshots that were already projected for input,
// e.g. ones read back from a cache.
func Derive(input domain.ProjectionInput, snapshots []domain.YearlySnapshot, milestoneYears []int) *domain.ProjectionResult {
	summary := Summarize(snapshots)

	return &domain.ProjectionResult{
		Input:      input,
		Snapshots:  snapshots,
		Summary:    summary,
		Degenerate: Degenerate(snapshots),
		Milestones: Milestones(summary, milestoneYears),
	}
}
