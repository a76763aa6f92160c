// Package fare is the single implementation of the fare, tax and total
// arithmetic used by every booking screen. The booking detail page and the
// fare popup both call into this package so the math cannot drift.
package fare

import "math"

// TaxAmount rounds estimated*pct/100 to the nearest integer, half away from
// zero.
func TaxAmount(estimated, taxPercentage float64) float64 {
	return math.Round(estimated * taxPercentage / 100)
}

// Total is the flat sum of every fare component:
//
//	estimated + driver charges + tax + driver beta + extra charges
func Total(estimated, tax, driverBeta float64, driverCharges, extraCharges Charges) float64 {
	return estimated + driverCharges.Sum() + tax + driverBeta + extraCharges.Sum()
}

// Remaining is final minus advance. It is not floored at zero: an advance
// larger than the final amount yields a negative remainder the operator has
// to refund.
func Remaining(finalAmount, advanceAmount float64) float64 {
	return finalAmount - advanceAmount
}

// Snapshot carries the current editable inputs of a booking. Recalculation
// always starts from these, never from a previously derived estimate, so
// rounding error cannot compound across edits.
type Snapshot struct {
	Distance       float64
	PricePerKM     float64
	TaxPercentage  float64
	DriverBeta     float64
	DiscountAmount float64
	AdvanceAmount  float64
	Surcharge      float64 // permit + toll + hill from the modified-fare block
	DriverCharges  Charges
	ExtraCharges   Charges
}

// Amounts are the derived fields, recomputed in order: estimated, tax, final.
type Amounts struct {
	EstimatedAmount float64
	TaxAmount       float64
	FinalAmount     float64
	RemainingAmount float64
}

// Recalculate derives all amounts from the snapshot. Any change to distance,
// driver charges or extra charges goes through here.
func Recalculate(s Snapshot) Amounts {
	estimated := s.Distance * s.PricePerKM
	tax := TaxAmount(estimated, s.TaxPercentage)
	final := Total(estimated, tax, s.DriverBeta, s.DriverCharges, s.ExtraCharges) + s.Surcharge - s.DiscountAmount
	return Amounts{
		EstimatedAmount: estimated,
		TaxAmount:       tax,
		FinalAmount:     final,
		RemainingAmount: Remaining(final, s.AdvanceAmount),
	}
}
