package validation

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// MaxLen counts runes, matching how the column sizes are declared.
func MaxLen(field, value string, max int, v Violations) {
	if utf8.RuneCountInString(value) > max {
		v[field] = "too_long"
	}
}

func NonZero(field string, id uint, v Violations) {
	if id == 0 {
		v[field] = "required"
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// Report fields by their json name so violations line up with serialized keys.
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return val
}

// Struct checks the `validate` tags of s and returns one violation per failing field.
func Struct(s any) Violations {
	v := make(Violations)
	err := validate.Struct(s)
	if err == nil {
		return v
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v["_"] = "invalid"
		return v
	}
	for _, fe := range fieldErrs {
		v[fe.Field()] = code(fe.Tag())
	}
	return v
}

func code(tag string) string {
	switch tag {
	case "required":
		return "required"
	case "max":
		return "too_long"
	case "email":
		return "invalid_email"
	}
	return "invalid"
}
