package fare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"20", 20},
		{" 20 ", 20},
		{"20.5", 20.5},
		{"-15", -15},
		{"+30", 30},
		{"200 rupees", 200},
		{"12.", 12},
		{"1.2.3", 1.2},
		{"", 0},
		{"free", 0},
		{".", 0},
		{"-", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseAmount(tc.in), "input %q", tc.in)
	}
}

func TestChargesSum(t *testing.T) {
	charges := Charges{
		"waiting":    "20",
		"night halt": "300",
		"note":       "see driver",
	}
	assert.Equal(t, 320.0, charges.Sum())
	assert.Equal(t, 0.0, Charges(nil).Sum())
}
