package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaufy/projection-engine/internal/domain"
)

func TestIncomeTax(t *testing.T) {
	tests := []struct {
		name     string
		zvE      string
		status   string
		expected string
	}{
		{name: "below basic allowance", zvE: "10000", status: domain.MaritalStatusSingle, expected: "0"},
		{name: "first progression zone", zvE: "15000", status: domain.MaritalStatusSingle, expected: "581.89"},
		{name: "second progression zone", zvE: "50000", status: domain.MaritalStatusSingle, expected: "10906.84"},
		{name: "proportional zone", zvE: "100000", status: domain.MaritalStatusSingle, expected: "31397.87"},
		{name: "top rate", zvE: "300000", status: domain.MaritalStatusSingle, expected: "116063.12"},
		{name: "splitting for married couples", zvE: "100000", status: domain.MaritalStatusMarried, expected: "21813.69"},
		{name: "negative income", zvE: "-5000", status: domain.MaritalStatusSingle, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, IncomeTax(d(tt.zvE), tt.status))
		})
	}
}

func TestSoli(t *testing.T) {
	assertDecimal(t, "0", Soli(d("18130")))
	assertDecimal(t, "1726.88", Soli(d("31397.87")))
}

func TestChurchTax(t *testing.T) {
	assertDecimal(t, "900", ChurchTax(d("10000"), d("9")))
	assertDecimal(t, "800", ChurchTax(d("10000"), d("8")))
}

func TestTaxProfile_TotalTax(t *testing.T) {
	single := TaxProfile{MaritalStatus: domain.MaritalStatusSingle}
	assertDecimal(t, "14680.71", single.TotalTax(d("60000")))

	withChurch := TaxProfile{MaritalStatus: domain.MaritalStatusSingle, HasChurchTax: true, ChurchTaxPercent: d("9")}
	// 31397.87 + 1726.88 soli + 2825.81 church
	assertDecimal(t, "35950.56", withChurch.TotalTax(d("100000")))

	assert.True(t, single.TotalTax(d("-1000")).IsZero())
}
