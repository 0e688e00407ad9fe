package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestINR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "₹0"},
		{"100", "₹100"},
		{"999", "₹999"},
		{"1000", "₹1,000"},
		{"100000", "₹1,00,000"},
		{"1234567", "₹12,34,567"},
		{"12345678", "₹1,23,45,678"},
		{"100.5", "₹100.5"},
		{"100.50", "₹100.5"},
		{"99.99", "₹99.99"},
		{"99.999", "₹100"},
		{"-2500", "-₹2,500"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, INR(d), "input %s", tc.in)
	}
}

func TestINRStringFallback(t *testing.T) {
	require.Equal(t, "₹1,500", INRString("1500"))
	require.Equal(t, "₹1,500", INRString("  1500  "))
	require.Equal(t, "₹0", INRString("not-a-number"))
	require.Equal(t, "₹0", INRString(""))
}
