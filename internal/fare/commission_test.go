package fare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommissionAdminBooking(t *testing.T) {
	report := Commission(CommissionInput{
		DriverDeductionAmount:    500,
		TripCompletedTaxAmount:   60,
		TripCompletedFinalAmount: 1330,
		AdminCommission:          200,
		CreatedBy:                "Admin",
	})
	assert.Equal(t, 36.0, report.CommissionTax)
	assert.Equal(t, 440.0, report.CommissionAmount)
	assert.Equal(t, 830.0, report.DriverPayout)
	assert.Nil(t, report.VendorAmount)
}

func TestCommissionVendorBooking(t *testing.T) {
	report := Commission(CommissionInput{
		DriverDeductionAmount:    500,
		TripCompletedTaxAmount:   60,
		TripCompletedFinalAmount: 1330,
		AdminCommission:          200,
		CreatedBy:                "Vendor",
	})
	require.NotNil(t, report.VendorAmount)
	assert.Equal(t, 300.0, *report.VendorAmount)
}
