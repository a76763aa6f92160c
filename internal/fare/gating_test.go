package fare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldEditableBeforeTrip(t *testing.T) {
	assert.True(t, FieldEditable("distance", EditModeBefore, "Pending", 0))
	assert.True(t, FieldEditable("pickupAddress", EditModeBefore, "Confirmed", 0))
	assert.False(t, FieldEditable("distance", EditModeBefore, "Started", 0))
	assert.False(t, FieldEditable("distance", EditModeBefore, "Completed", 1200))
}

func TestFieldEditableAfterTrip(t *testing.T) {
	// Locked until the end odometer reading is in.
	assert.False(t, FieldEditable("extraCharges", EditModeAfter, "Started", 0))
	assert.True(t, FieldEditable("extraCharges", EditModeAfter, "Started", 1200))
	// Locked again once completed.
	assert.False(t, FieldEditable("extraCharges", EditModeAfter, "Completed", 1200))
}

func TestDerivedAfterFieldsNeverEditable(t *testing.T) {
	derived := []string{
		"pricePerKm",
		"tripCompletedDuration",
		"tripCompletedEstimatedAmount",
		"driverBeta",
		"tripCompletedFinalAmount",
		"tripCompletedTaxAmount",
	}
	for _, field := range derived {
		assert.True(t, DerivedAfterField(field), field)
		assert.False(t, FieldEditable(field, EditModeAfter, "Started", 1200), field)
	}
	assert.False(t, DerivedAfterField("discountAmount"))
	assert.True(t, FieldEditable("discountAmount", EditModeAfter, "Started", 1200))
}

func TestFieldEditableUnknownMode(t *testing.T) {
	assert.False(t, FieldEditable("distance", EditMode("during"), "Pending", 0))
}
