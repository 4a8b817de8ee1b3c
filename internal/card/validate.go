package card

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/youruser/cardforge/internal/apperr"
)

// Validate checks the record against the field bounds. It returns a
// *apperr.ValidationError describing the first offending field.
func (d Data) Validate() error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required, validation.Length(1, MaxNameLen)),
		validation.Field(&d.JobTitle, validation.Length(0, MaxFieldLen)),
		validation.Field(&d.Company, validation.Length(0, MaxFieldLen)),
		validation.Field(&d.Email, validation.Length(0, MaxFieldLen), is.EmailFormat),
		validation.Field(&d.Phone, validation.Length(0, MaxFieldLen)),
		validation.Field(&d.Website, validation.Length(0, MaxFieldLen)),
		validation.Field(&d.Address, validation.Length(0, MaxAddressLen)),
		validation.Field(&d.SocialPlatform, validation.Length(0, MaxFieldLen)),
		validation.Field(&d.SocialHandle, validation.Length(0, MaxFieldLen)),
	)
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for field := range verrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		first := fields[0]
		return &apperr.ValidationError{Field: first, Reason: verrs[first].Error()}
	}
	return &apperr.ValidationError{Reason: err.Error()}
}
