// Package validation evaluates the struct-tag rules declared on request
// payloads and reports every violated constraint as a domain.Violation.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vollmed/registry-api/internal/core/domain"
)

var crmPattern = regexp.MustCompile(`^\d{4,6}$`)

// Validator wraps go-playground/validator with the registry's custom rules.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the notblank and crm tags registered and
// field names resolved from json tags.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "notblank", notBlank)
	mustRegister(v, "crm", func(fl validator.FieldLevel) bool {
		return crmPattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Validate checks the payload and returns a *domain.ValidationError listing
// all violations in field declaration order, or nil when the payload is valid.
func (val *Validator) Validate(payload any) error {
	err := val.v.Struct(payload)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	violations := make([]domain.Violation, 0, len(ve))
	for _, fe := range ve {
		violations = append(violations, domain.Violation{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return &domain.ValidationError{Violations: violations}
}

// fieldPath drops the top-level struct name from the namespace, leaving the
// json path of the field (e.g. "address.street").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "crm":
		return `must match "\d{4,6}"`
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}
	return !field.IsZero()
}
