package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{1200, "₹1,200.00"},
		{123456.5, "₹1,23,456.50"},
		{12345678.9, "₹1,23,45,678.90"},
		{-450.25, "-₹450.25"},
		// Paise that round up must carry into the rupee part.
		{1.999, "₹2.00"},
		{0.999, "₹1.00"},
		{999.999, "₹1,000.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatINR(tc.in), "input %v", tc.in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1330.00", FormatAmount(1330))
	assert.Equal(t, "12.34", FormatAmount(12.339999))
}
