package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatAmount keeps two decimals for money fields on API output and PDFs.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatINR renders an amount in the Indian grouping style (1,23,456.50).
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	// Round to paise first so a fraction that rounds up to 100 carries into
	// the rupee part instead of printing as ".100".
	paise := int64(math.Round(amount * 100))
	whole := paise / 100
	frac := paise % 100

	s := strconv.FormatInt(whole, 10)
	if len(s) > 3 {
		head := s[:len(s)-3]
		tail := s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		s = strings.Join(parts, ",") + "," + tail
	}

	return fmt.Sprintf("%s₹%s.%02d", sign, s, frac)
}
