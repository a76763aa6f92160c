package validators

import (
	"taxidesk/internal/models"
	"taxidesk/internal/services"
)

func ValidateSaveTariff(req *services.SaveTariffRequest) map[string]string {
	errors := map[string]string{}

	if req.ServiceID.IsZero() {
		errors["service_id"] = "service is required"
	}
	if req.VehicleID.IsZero() {
		errors["vehicle_id"] = "vehicle is required"
	}
	if req.Price < 0 {
		errors["price"] = "price cannot be negative"
	}
	if req.ExtraPrice < 0 {
		errors["extra_price"] = "extra price cannot be negative"
	}

	if len(errors) == 0 {
		return nil
	}
	return errors
}

// ValidateSavePackageLadder checks the parallel rung arrays line up before the
// stored ladder is touched.
func ValidateSavePackageLadder(req *services.SavePackageLadderRequest) map[string]string {
	errors := map[string]string{}

	if req.ServiceID.IsZero() {
		errors["service_id"] = "service is required"
	}
	if req.VehicleID.IsZero() {
		errors["vehicle_id"] = "vehicle is required"
	}
	if req.Type != models.PackageTypeDay && req.Type != models.PackageTypeHourly {
		errors["type"] = "type must be day or hourly"
	}

	n := len(req.DaysOrHours)
	if n == 0 {
		errors["days_or_hours"] = "at least one rung is required"
	}
	if len(req.DistanceLimits) != n {
		errors["distance_limits"] = "distance limits must match the rung count"
	}
	if len(req.Prices) != n {
		errors["prices"] = "prices must match the rung count"
	}
	for _, p := range req.Prices {
		if p < 0 {
			errors["prices"] = "prices cannot be negative"
			break
		}
	}

	if len(errors) == 0 {
		return nil
	}
	return errors
}
