package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"library-api/internal/shared/apperr"
)

const entityName = "Book"

func publisherCountryRule() validation.Rule {
	values := make([]interface{}, len(PublisherCountries))
	for i, c := range PublisherCountries {
		values[i] = c
	}
	return validation.In(values...).Error("is not a supported publisher country")
}

// ValidatePublisher validates the embedded document; both fields are required
// once a publisher is given.
func ValidatePublisher(p Publisher) error {
	return validation.Errors{
		"name": validation.Validate(p.Name,
			validation.Required,
			validation.RuneLength(MinPublisherNameLength, MaxPublisherNameLength),
		),
		"country": validation.Validate(p.Country,
			validation.Required,
			publisherCountryRule(),
		),
	}.Filter()
}

// ValidateBook checks every rule and reports all violations at once. Whether the
// referenced author exists is checked by the service.
func ValidateBook(d Draft) error {
	errs := validation.Errors{
		"title": validation.Validate(d.Title,
			validation.Required,
			validation.RuneLength(MinTitleLength, MaxTitleLength),
		),
		"author": validation.Validate(d.AuthorID,
			is.UUID,
		),
		// Min skips zero values, so a present 0 is caught by Required.
		"pages": validation.Validate(d.Pages,
			validation.When(d.Pages != nil, validation.Required.Error("must be no less than 1")),
			validation.Min(MinPages),
			validation.Max(MaxPages),
		),
	}
	if d.Publisher != nil {
		errs["publisher"] = ValidatePublisher(*d.Publisher)
	}

	return apperr.FromValidation(entityName, "", errs.Filter())
}
