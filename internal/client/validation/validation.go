// Package validation performs client-side checks on the user form before a
// request is sent. Each field reports its own message; a non-empty result
// blocks submission entirely. The backend revalidates everything; this
// exists to give immediate feedback without a round trip.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/useradmin/internal/client/api"
)

// phoneRe accepts "(11) 99999-9999", "(11)99999999", or 10-11 bare digits.
var phoneRe = regexp.MustCompile(`^(\(\d{2}\)\s?\d{4,5}-?\d{4}|\d{10,11})$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Always registers successfully: the function signature matches.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

// Field messages, keyed by struct field + failed tag.
var messages = map[string]string{
	"Name.required":  "Name is required",
	"Name.min":       "Name must be at least 2 characters",
	"Name.max":       "Name must be at most 100 characters",
	"Email.required": "Email is required",
	"Email.email":    "Invalid email format",
	"Phone.phone":    "Invalid phone format",
	"Age.gte":        "Age must be greater than or equal to 0",
	"Age.lte":        "Age must be less than or equal to 120",
}

// ValidateUserForm checks req against the form rules and returns a
// field-name → message map. An empty map means the form may be submitted.
func ValidateUserForm(req api.CreateUserRequest) map[string]string {
	errs := map[string]string{}

	err := validate.Struct(req)
	if err == nil {
		return errs
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "invalid form"
		return errs
	}

	for _, fe := range verrs {
		field := fe.StructField()
		if _, seen := errs[field]; seen {
			continue // first failing rule per field wins
		}
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			errs[field] = msg
		} else {
			errs[field] = "Invalid value"
		}
	}
	return errs
}
