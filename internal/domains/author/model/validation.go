package model

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"library-api/internal/shared/apperr"
)

const entityName = "Author"

func countryRule() validation.Rule {
	values := make([]interface{}, len(Countries))
	for i, c := range Countries {
		values[i] = c
	}
	return validation.In(values...).Error("is not a supported country")
}

// ValidateAuthor checks every rule and reports all violations at once.
// The password is only checked when the draft carries one.
func ValidateAuthor(d Draft) error {
	err := validation.Errors{
		"name": validation.Validate(d.Name,
			validation.Required,
			validation.RuneLength(MinNameLength, MaxNameLength),
		),
		"country": validation.Validate(d.Country,
			validation.Required,
			countryRule(),
		),
		"email": validation.Validate(d.Email,
			validation.Required,
			is.EmailFormat,
		),
		"password": validation.Validate(d.Password,
			validation.When(d.PasswordSet,
				validation.Required,
				validation.RuneLength(MinPasswordLength, 0),
				// bcrypt rejects longer input.
				validation.Length(0, MaxPasswordBytes).Error(fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes)),
			),
		),
	}.Filter()

	return apperr.FromValidation(entityName, "", err)
}
