// Package validator adapts go-playground/validator to echo.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	domainerrors "ministry/internal/domain/errors"
	"ministry/internal/errors"

	playground "github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator and reports failures as a
// ValidationError keyed by JSON or query field names.
type Validator struct {
	validate *playground.Validate
}

// New creates a Validator.
func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	return &Validator{validate: v}
}

// Validate checks i against its validate tags.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate request")
	}

	fields := make([]domainerrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}

	return domainerrors.NewValidationError(fields...)
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}

	return field.Name
}

// fieldPath drops the top-level struct name and embedded struct names from
// the namespace, leaving the wire names: "PageInput.limit" becomes "limit".
func fieldPath(fe playground.FieldError) string {
	segments := strings.Split(fe.Namespace(), ".")
	path := make([]string, 0, len(segments))
	for _, seg := range segments[1:] {
		if seg != "" && unicode.IsUpper(rune(seg[0])) {
			continue
		}
		path = append(path, seg)
	}
	if len(path) == 0 {
		return fe.Field()
	}

	return strings.Join(path, ".")
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "url":
		return "value is not a valid URL"
	case "oneof":
		return "value must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("must contain at least %s items or characters", fe.Param())
		}

		return "must be at least " + fe.Param()
	case "max":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("must contain at most %s items or characters", fe.Param())
		}

		return "must be at most " + fe.Param()
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "alpha":
		return "must contain letters only"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func isLengthKind(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return true
	default:
		return false
	}
}
