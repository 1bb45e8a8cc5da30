package storeform

import (
	"errors"
	"reflect"
	"regexp"
	"storefront/pkg/domain"

	"github.com/go-playground/validator/v10"
)

// Field names a Draft input, as used in the HTML form.
type Field string

const (
	FieldName      Field = "name"
	FieldSubdomain Field = "subdomain"
	FieldCountry   Field = "country"
	FieldCategory  Field = "category"
	FieldCurrency  Field = "currency"
	FieldEmail     Field = "email"
)

// Code classifies a validation failure.
type Code string

const (
	CodeTooShort      Code = "TooShort"
	CodeRequired      Code = "Required"
	CodeInvalidFormat Code = "InvalidFormat"
	CodeUnsupported   Code = "Unsupported"
)

// ValidationError is one failing field with the message shown next to it.
type ValidationError struct {
	Field   Field
	Code    Code
	Message string
}

// ValidationErrors maps each failing field to its error. Empty means valid.
type ValidationErrors map[Field]ValidationError

// emailPattern is the loose local@domain.tld shape accepted for contact emails.
// Any Unicode space, \v and the byte order mark count as whitespace, since RE2's
// \s only matches ASCII.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}]+$`)

var messages = map[Field]map[Code]string{ //nolint: gochecknoglobals
	FieldName:      {CodeTooShort: "Store name must be at least 3 characters long."},
	FieldSubdomain: {CodeRequired: "Domain is required."},
	FieldEmail: {
		CodeRequired:      "Email is required.",
		CodeInvalidFormat: "Invalid email format!",
	},
	FieldCountry:  {CodeUnsupported: "Please choose a supported country."},
	FieldCategory: {CodeUnsupported: "Please choose a supported category."},
	FieldCurrency: {CodeUnsupported: "Please choose a supported currency."},
}

var tagCodes = map[string]Code{ //nolint: gochecknoglobals
	"min":           CodeTooShort,
	"required":      CodeRequired,
	"storeemail":    CodeInvalidFormat,
	"storecountry":  CodeUnsupported,
	"storecategory": CodeUnsupported,
	"storecurrency": CodeUnsupported,
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})

	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(v.RegisterValidation("storeemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("storecountry", func(fl validator.FieldLevel) bool {
		return domain.Country(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("storecategory", func(fl validator.FieldLevel) bool {
		return domain.Category(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("storecurrency", func(fl validator.FieldLevel) bool {
		return domain.Currency(fl.Field().String()).Valid()
	}))

	return v
}

// validate is safe for concurrent use once built.
var validate = newValidator() //nolint: gochecknoglobals

// Validate checks every field of d and reports all failures at once.
// Within one field the first failing rule wins, so an empty email is
// Required rather than InvalidFormat.
func Validate(d Draft) ValidationErrors {
	errs := ValidationErrors{}

	err := validate.Struct(d)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// only reachable for non-struct input
		panic(err)
	}

	for _, fe := range fieldErrs {
		field := Field(fe.Field())
		code, ok := tagCodes[fe.Tag()]
		if !ok {
			code = CodeInvalidFormat
		}
		errs[field] = ValidationError{
			Field:   field,
			Code:    code,
			Message: messages[field][code],
		}
	}

	return errs
}
