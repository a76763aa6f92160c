package validators

import (
	"taxidesk/internal/services"
	"taxidesk/internal/utils"
)

// ValidateCreateBooking mirrors the form-side checks. Returns field errors for
// the validation toast, nil when the request is acceptable.
func ValidateCreateBooking(req *services.CreateBookingRequest) map[string]string {
	errors := map[string]string{}

	if req.CustomerID.IsZero() {
		errors["customer_id"] = "customer is required"
	}
	if req.ServiceID.IsZero() {
		errors["service_id"] = "service is required"
	}
	if req.PickupAddress == "" {
		errors["pickup_address"] = "pickup address is required"
	}
	if req.Distance < 0 {
		errors["distance"] = "distance cannot be negative"
	}
	if req.Distance > utils.MaxBookingDistance {
		errors["distance"] = "distance exceeds the service area"
	}
	if req.DiscountAmount < 0 {
		errors["discount_amount"] = "discount cannot be negative"
	}
	if req.AdvanceAmount < 0 {
		errors["advance_amount"] = "advance cannot be negative"
	}

	if len(errors) == 0 {
		return nil
	}
	return errors
}

// ValidateUpdateBooking checks the touched fields of an edit. Unknown or
// locked fields are the service's concern; this only rejects nonsense values.
func ValidateUpdateBooking(req *services.UpdateBookingRequest) map[string]string {
	errors := map[string]string{}

	if req.Distance != nil && (*req.Distance < 0 || *req.Distance > utils.MaxBookingDistance) {
		errors["distance"] = "distance is out of range"
	}
	if req.DiscountAmount != nil && *req.DiscountAmount < 0 {
		errors["discount_amount"] = "discount cannot be negative"
	}
	if req.AdvanceAmount != nil && *req.AdvanceAmount < 0 {
		errors["advance_amount"] = "advance cannot be negative"
	}
	if req.EndOdometerValue != nil && *req.EndOdometerValue < 0 {
		errors["end_odometer_value"] = "odometer reading cannot be negative"
	}

	if len(errors) == 0 {
		return nil
	}
	return errors
}
