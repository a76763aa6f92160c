package fare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxAmount(t *testing.T) {
	assert.Equal(t, 60.0, TaxAmount(1200, 5))
	assert.Equal(t, 0.0, TaxAmount(1200, 0))
	// 1250 * 4.5 / 100 = 56.25, rounds down
	assert.Equal(t, 56.0, TaxAmount(1250, 4.5))
	// 1300 * 4.5 / 100 = 58.5, rounds half away from zero
	assert.Equal(t, 59.0, TaxAmount(1300, 4.5))
}

func TestRecalculate(t *testing.T) {
	amounts := Recalculate(Snapshot{
		Distance:      100,
		PricePerKM:    12,
		TaxPercentage: 5,
	})
	assert.Equal(t, 1200.0, amounts.EstimatedAmount)
	assert.Equal(t, 60.0, amounts.TaxAmount)
	assert.Equal(t, 1260.0, amounts.FinalAmount)
	assert.Equal(t, 1260.0, amounts.RemainingAmount)
}

func TestRecalculateWithBetaAndCharges(t *testing.T) {
	amounts := Recalculate(Snapshot{
		Distance:      100,
		PricePerKM:    12,
		TaxPercentage: 5,
		DriverBeta:    50,
		ExtraCharges:  Charges{"waiting": "20"},
	})
	assert.Equal(t, 1200.0, amounts.EstimatedAmount)
	assert.Equal(t, 60.0, amounts.TaxAmount)
	assert.Equal(t, 1330.0, amounts.FinalAmount)
}

func TestRecalculateSurchargeAndDiscount(t *testing.T) {
	amounts := Recalculate(Snapshot{
		Distance:       100,
		PricePerKM:     10,
		TaxPercentage:  0,
		Surcharge:      150,
		DiscountAmount: 50,
	})
	assert.Equal(t, 1000.0, amounts.EstimatedAmount)
	assert.Equal(t, 1100.0, amounts.FinalAmount)
}

func TestRemainingCanGoNegative(t *testing.T) {
	amounts := Recalculate(Snapshot{
		Distance:      10,
		PricePerKM:    10,
		AdvanceAmount: 500,
	})
	assert.Equal(t, 100.0, amounts.FinalAmount)
	assert.Equal(t, -400.0, amounts.RemainingAmount)
}

func TestRecalculateStartsFromInputs(t *testing.T) {
	s := Snapshot{Distance: 50, PricePerKM: 11, TaxPercentage: 5}
	first := Recalculate(s)
	s.Distance = 75
	second := Recalculate(s)
	assert.Equal(t, 550.0, first.EstimatedAmount)
	assert.Equal(t, 825.0, second.EstimatedAmount)
	assert.Equal(t, 41.0, second.TaxAmount)
}
