package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return sf.Name
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return PasswordComposition(fl.Field().String()) == nil
	})
	return v
}

// FieldErrors maps a dotted json path to the message to display.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}

func (f FieldErrors) Unwrap() error {
	return perrors.ErrInvalidPayload
}

// Struct checks the `validate` tags of a payload before it is sent. It
// returns nil or FieldErrors with the same wording as the field rules.
func Struct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !perrors.As(err, &verrs) {
		return perrors.Wrapf(perrors.ErrInvalidPayload, "%v", err)
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		if _, seen := out[path]; !seen {
			out[path] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_with", "required_without":
		return MsgRequired
	case "email":
		return MsgEmailFormat
	case "url", "http_url":
		return MsgURLFormat
	case "min", "gte":
		switch {
		case fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map:
			return MsgAtLeastOne
		case isNumber(fe.Kind()):
			return fmt.Sprintf("Must be at least %s.", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max", "lte":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("Cannot exceed %s.", fe.Param())
		}
		return fmt.Sprintf("Cannot exceed %s characters.", fe.Param())
	case "eqfield":
		return "fields do not match."
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "password":
		if err := PasswordComposition(fe.Value()); err != nil {
			return err.Error()
		}
	}
	return fmt.Sprintf("Failed %s validation.", fe.Tag())
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
