package fare

// EditMode distinguishes the two edit phases of a booking screen.
type EditMode string

const (
	EditModeBefore EditMode = "before"
	EditModeAfter  EditMode = "after"
)

// derivedAfterFields are recomputed by the calculator once the booking enters
// after-trip editing and can never be typed into directly.
var derivedAfterFields = map[string]struct{}{
	"pricePerKm":                   {},
	"tripCompletedDuration":        {},
	"tripCompletedEstimatedAmount": {},
	"driverBeta":                   {},
	"tripCompletedFinalAmount":     {},
	"tripCompletedTaxAmount":       {},
}

// DerivedAfterField reports whether the named field belongs to the fixed
// read-only set of after-trip edit mode.
func DerivedAfterField(field string) bool {
	_, ok := derivedAfterFields[field]
	return ok
}

// FieldEditable decides whether an operator edit to the named field is
// accepted. Before-trip fields lock once the trip has started; after-trip
// fields lock until the end odometer is captured and again once the booking
// is completed.
func FieldEditable(field string, mode EditMode, status string, endOdometerValue float64) bool {
	switch mode {
	case EditModeBefore:
		return status != "Started" && status != "Completed"
	case EditModeAfter:
		if endOdometerValue == 0 || status == "Completed" {
			return false
		}
		return !DerivedAfterField(field)
	default:
		return false
	}
}
