package fare

import (
	"strconv"
	"strings"
)

// Charges is an open-ended set of named surcharges added by the operator,
// e.g. {"waiting": "20", "night halt": "300"}. Values arrive as strings from
// the dashboard forms.
type Charges map[string]string

// ParseAmount converts one charge value to a number. It takes the longest
// leading numeric prefix; an empty or non-numeric value is 0, never an error.
func ParseAmount(v string) float64 {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0
	}
	end := 0
	seenDigit := false
	seenDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '+' || r == '-') && i == 0:
		default:
			goto done
		}
		end = i + 1
	}
done:
	if !seenDigit {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}

// Sum adds every charge value, treating unparseable entries as zero.
func (c Charges) Sum() float64 {
	var total float64
	for _, v := range c {
		total += ParseAmount(v)
	}
	return total
}
