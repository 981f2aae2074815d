package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	id "actavc/pkg/domain"
	dErrors "actavc/pkg/domain-errors"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("stellar_address", func(fl validator.FieldLevel) bool {
		_, err := id.ParseStellarAddress(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("did", func(fl validator.FieldLevel) bool {
		return IsDID(fl.Field().String())
	})
	_ = v.RegisterValidation("rfc3339", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339, fl.Field().String())
		return err == nil
	})
	return v
}

// Validate validates a struct using the default validator and returns a domain error
func Validate(req any) error {
	if err := defaultValidator.Struct(req); err != nil {
		return dErrors.New(dErrors.CodeValidation, ErrorMessage(err))
	}
	return nil
}

// MissingFields reports the snake_case names of fields that failed a
// required or notblank rule. Other rule failures are ignored.
func MissingFields(req any) []string {
	err := defaultValidator.Struct(req)
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	var missing []string
	for _, fe := range validationErrs {
		switch fe.ActualTag() {
		case "required", "notblank":
			missing = append(missing, fieldName(fe))
		}
	}
	return missing
}

// IsDID checks the generic did:<method>:<method-specific-id> shape.
func IsDID(s string) bool {
	rest, ok := strings.CutPrefix(s, "did:")
	if !ok {
		return false
	}
	method, specific, ok := strings.Cut(rest, ":")
	if !ok || method == "" || specific == "" {
		return false
	}
	for _, r := range method {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return !strings.ContainsAny(specific, " \t\r\n")
}

// ErrorMessage converts a validator error into a human-readable message
func ErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid request body"
	}

	fe := validationErrs[0]
	field := fieldName(fe)

	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid url", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "stellar_address":
		return fmt.Sprintf("%s must be a valid stellar account address", field)
	case "did":
		return fmt.Sprintf("%s must be a DID", field)
	case "rfc3339":
		return fmt.Sprintf("%s must be an RFC 3339 timestamp", field)
	default:
		if field == "" {
			return "invalid request body"
		}
		return fmt.Sprintf("%s is invalid", field)
	}
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		name = fe.StructField()
	}
	return toSnakeCase(name)
}

func toSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
