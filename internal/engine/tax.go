package engine

import (
	"github.com/shopspring/decimal"

	"github.com/kaufy/projection-engine/internal/domain"
)

// Simplified 2024 income tax tariff (§32a EStG).
var (
	basicAllowance = decimal.NewFromInt(11604)
	zone2Limit     = decimal.NewFromInt(17005)
	zone3Limit     = decimal.NewFromInt(66760)
	zone4Limit     = decimal.NewFromInt(277825)
	tenThousand    = decimal.NewFromInt(10000)

	zone2Factor = decimal.RequireFromString("922.98")
	zone2Base   = decimal.NewFromInt(1400)
	zone3Factor = decimal.RequireFromString("181.19")
	zone3Base   = decimal.NewFromInt(2397)
	zone3Offset = decimal.RequireFromString("1025.38")
	zone4Rate   = decimal.RequireFromString("0.42")
	zone4Offset = decimal.RequireFromString("10602.13")
	zone5Rate   = decimal.RequireFromString("0.45")
	zone5Offset = decimal.RequireFromString("18936.88")

	soliThreshold = decimal.NewFromInt(18130)
	soliRate      = decimal.RequireFromString("0.055")

	two = decimal.NewFromInt(2)
)

// IncomeTax computes the income tax on taxable income zvE. Married couples are
// taxed by splitting: half the income is taxed and the result doubled.
func IncomeTax(zvE decimal.Decimal, maritalStatus string) decimal.Decimal {
	married := maritalStatus == domain.MaritalStatusMarried

	income := zvE
	if married {
		income = income.Div(two)
	}

	var tax decimal.Decimal
	switch {
	case income.LessThanOrEqual(basicAllowance):
		tax = decimal.Zero
	case income.LessThanOrEqual(zone2Limit):
		y := income.Sub(basicAllowance).Div(tenThousand)
		tax = zone2Factor.Mul(y).Add(zone2Base).Mul(y)
	case income.LessThanOrEqual(zone3Limit):
		z := income.Sub(zone2Limit).Div(tenThousand)
		tax = zone3Factor.Mul(z).Add(zone3Base).Mul(z).Add(zone3Offset)
	case income.LessThanOrEqual(zone4Limit):
		tax = zone4Rate.Mul(income).Sub(zone4Offset)
	default:
		tax = zone5Rate.Mul(income).Sub(zone5Offset)
	}

	if married {
		tax = tax.Mul(two)
	}

	return decimal.Max(decimal.Zero, tax.Round(2))
}

// Soli is the solidarity surcharge; income tax up to the exemption threshold pays none.
func Soli(incomeTax decimal.Decimal) decimal.Decimal {
	if incomeTax.LessThanOrEqual(soliThreshold) {
		return decimal.Zero
	}
	return incomeTax.Mul(soliRate).Round(2)
}

// ChurchTax applies a church tax rate given in percent.
func ChurchTax(incomeTax, ratePercent decimal.Decimal) decimal.Decimal {
	return incomeTax.Mul(ratePercent).Div(hundred).Round(2)
}

// TaxProfile carries everything needed to compute a household's total tax burden.
type TaxProfile struct {
	MaritalStatus    string
	HasChurchTax     bool
	ChurchTaxPercent decimal.Decimal
}

// TotalTax is income tax plus surcharges for the profile. Negative income is taxed as zero.
func (p TaxProfile) TotalTax(zvE decimal.Decimal) decimal.Decimal {
	tax := IncomeTax(decimal.Max(decimal.Zero, zvE), p.MaritalStatus)
	total := tax.Add(Soli(tax))
	if p.HasChurchTax {
		total = total.Add(ChurchTax(tax, p.ChurchTaxPercent))
	}
	return total
}
