package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_FormatRupiah(t *testing.T) {
	cases := map[string]string{
		"0":           "Rp 0",
		"999":         "Rp 999",
		"1000":        "Rp 1.000",
		"50000":       "Rp 50.000",
		"1000000":     "Rp 1.000.000",
		"1234567.5":   "Rp 1.234.568",
		"1234567.49":  "Rp 1.234.567",
		"-50000.25":   "Rp -50.000",
		"66666.66667": "Rp 66.667",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatRupiah(decimal.RequireFromString(in)), in)
	}
}

func Test_FormatPercent(t *testing.T) {
	assert.Equal(t, "4%", FormatPercent(decimal.NewFromInt(4)))
	assert.Equal(t, "33.3%", FormatPercent(decimal.RequireFromString("33.33333")))
	assert.Equal(t, "100%", FormatPercent(decimal.NewFromInt(100)))
}

func Test_GroupThousands_ShouldUseIndonesianSeparators(t *testing.T) {
	assert.Equal(t, "1.234.567.890", GroupThousands(decimal.NewFromInt(1234567890)))
	assert.Equal(t, "-1.000", GroupThousands(decimal.NewFromInt(-1000)))
	assert.Equal(t, "0", GroupThousands(decimal.RequireFromString("0.4")))
}
