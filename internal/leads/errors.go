package leads

import "errors"

var (
	// ErrInvalidName is returned when the name is invalid
	ErrInvalidName = errors.New("name is required")

	// ErrMissingContact is returned when both email and phone are missing
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrInvalidEmail is returned when the email cannot be parsed
	ErrInvalidEmail = errors.New("email is invalid")

	// ErrMissingPlan is returned when no plan was chosen
	ErrMissingPlan = errors.New("plan is required")

	// ErrUnknownPlan is returned when the plan is not in the catalog
	ErrUnknownPlan = errors.New("plan is not offered")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)

// IsValidationError reports whether err was caused by the request content.
func IsValidationError(err error) bool {
	for _, target := range []error{ErrInvalidName, ErrMissingContact, ErrInvalidEmail, ErrMissingPlan, ErrUnknownPlan} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
