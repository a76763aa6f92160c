package fare

// Commission tax is a fixed 18% of the admin commission. Displayed in a
// tooltip only, never persisted.
const commissionTaxPercentage = 18

type CommissionInput struct {
	DriverDeductionAmount    float64
	TripCompletedTaxAmount   float64
	TripCompletedFinalAmount float64
	AdminCommission          float64
	CreatedBy                string // "Admin" or "Vendor"
}

type CommissionReport struct {
	CommissionTax    float64  `json:"commission_tax"`
	CommissionAmount float64  `json:"commission_amount"`
	VendorAmount     *float64 `json:"vendor_amount,omitempty"`
	DriverPayout     float64  `json:"driver_payout"`
}

// Commission produces the read-only payout breakdown shown on the booking
// detail screen. Vendor-created bookings get a second total line with the
// admin commission taken out.
func Commission(in CommissionInput) CommissionReport {
	report := CommissionReport{
		CommissionTax:    in.AdminCommission * commissionTaxPercentage / 100,
		CommissionAmount: in.DriverDeductionAmount - in.TripCompletedTaxAmount,
		DriverPayout:     in.TripCompletedFinalAmount - in.DriverDeductionAmount,
	}
	if in.CreatedBy == "Vendor" {
		vendorAmount := in.DriverDeductionAmount - in.AdminCommission
		report.VendorAmount = &vendorAmount
	}
	return report
}
