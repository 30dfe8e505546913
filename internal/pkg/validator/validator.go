package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Rohang10/saas-copilot/internal/entity"
	"github.com/go-playground/validator/v10"
)

const (
	minPasswordLength = 6
	maxPasswordBytes  = 72
)

// Validator validates incoming request DTOs
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct runs the struct tag rules and wraps violations with entity.ErrValidation.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = describe(e)
	}

	return fmt.Errorf("%w: %s", entity.ErrValidation, joinFields(fields))
}

// ValidateSignup expects a normalized request
func (v *Validator) ValidateSignup(req *entity.SignupRequest) error {
	if n := utf8.RuneCountInString(req.Password); n > 0 && n < minPasswordLength {
		return entity.ErrPasswordTooShort
	}

	if len(req.Password) > maxPasswordBytes {
		return entity.ErrPasswordTooLong
	}

	return v.Struct(req)
}

func (v *Validator) ValidateLogin(req *entity.LoginRequest) error {
	return v.Struct(req)
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	default:
		return fmt.Sprintf("failed on '%s' tag", e.Tag())
	}
}

func joinFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+fields[name])
	}

	return strings.Join(parts, "; ")
}
