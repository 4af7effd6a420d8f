package customers

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// phoneRe accepts E.164-like numbers: optional leading +, 8 to 16 digits, no
// leading zero.
var phoneRe = regexp.MustCompile(`^\+?[1-9][0-9]{7,15}$`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// ValidEmail reports whether the value is a well-formed address. An empty
// string is not valid.
func ValidEmail(email string) bool {
	return email != "" && validate.Var(email, "email") == nil
}

// ValidPhone reports whether the value looks like a dialable E.164 number.
func ValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}
