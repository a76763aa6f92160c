package validators

import (
	"taxidesk/internal/utils"
)

// ValidateContact checks the shared name/phone/email trio used by customer,
// driver and enquiry forms. Email is optional but must parse when present.
func ValidateContact(name, phone, email string) map[string]string {
	errors := utils.RequireFields(map[string]string{
		"name":  name,
		"phone": phone,
	})
	if errors == nil {
		errors = map[string]string{}
	}

	if phone != "" && !utils.IsValidPhone(phone) {
		errors["phone"] = "phone number is invalid"
	}
	if email != "" && !utils.IsValidEmail(email) {
		errors["email"] = "email address is invalid"
	}

	if len(errors) == 0 {
		return nil
	}
	return errors
}
