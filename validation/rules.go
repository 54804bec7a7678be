package validation

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Messages shown next to the offending field.
const (
	MsgRequired       = "This field is required."
	MsgAtLeastOne     = "Please select at least one item."
	MsgURLFormat      = "Please enter a valid URL."
	MsgEmailFormat    = "Please enter a valid email address."
	MsgNeedsUppercase = "Must contain an uppercase letter."
	MsgNeedsNumber    = "Must contain a number."
	MsgNeedsSpecial   = "Must contain a special character."
)

// Rule checks a single value and returns an error carrying the message to display.
type Rule func(value any) error

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// PasswordRules are the checks applied to every new password.
var PasswordRules = []Rule{Required, MinLength(8), PasswordComposition}

// Validate runs rules in order and returns the first failure.
func Validate(value any, rules ...Rule) error {
	for _, rule := range rules {
		if err := rule(value); err != nil {
			return err
		}
	}
	return nil
}

// Required rejects nil, false, empty collections and blank strings.
func Required(value any) error {
	rv, ok := deref(value)
	if !ok {
		return errors.New(MsgRequired)
	}
	switch rv.Kind() {
	case reflect.Bool:
		if !rv.Bool() {
			return errors.New(MsgRequired)
		}
		return nil
	case reflect.Slice, reflect.Array, reflect.Map:
		if rv.Len() == 0 {
			return errors.New(MsgRequired)
		}
		return nil
	}
	if strings.TrimSpace(fmt.Sprint(rv.Interface())) == "" {
		return errors.New(MsgRequired)
	}
	return nil
}

func AtLeastOne(value any) error {
	rv, ok := deref(value)
	if !ok {
		return errors.New(MsgAtLeastOne)
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		if rv.Len() == 0 {
			return errors.New(MsgAtLeastOne)
		}
		return nil
	}
	return errors.New(MsgAtLeastOne)
}

// URLFormat accepts empty values; anything else must be an absolute URL.
func URLFormat(value any) error {
	s := asString(value)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return errors.New(MsgURLFormat)
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return errors.New(MsgURLFormat)
	}
	return nil
}

func MinLength(length int) Rule {
	return func(value any) error {
		if utf8.RuneCountInString(asString(value)) < length {
			return errors.Errorf("Must be at least %d characters long.", length)
		}
		return nil
	}
}

func MaxLength(length int) Rule {
	return func(value any) error {
		if utf8.RuneCountInString(asString(value)) > length {
			return errors.Errorf("Cannot exceed %d characters.", length)
		}
		return nil
	}
}

// EmailFormat accepts empty values; Required covers presence.
func EmailFormat(value any) error {
	s := asString(value)
	if s == "" {
		return nil
	}
	if !emailPattern.MatchString(s) {
		return errors.New(MsgEmailFormat)
	}
	return nil
}

func PasswordComposition(value any) error {
	s := asString(value)
	switch {
	case !upperPattern.MatchString(s):
		return errors.New(MsgNeedsUppercase)
	case !digitPattern.MatchString(s):
		return errors.New(MsgNeedsNumber)
	case !specialPattern.MatchString(s):
		return errors.New(MsgNeedsSpecial)
	}
	return nil
}

// MustMatch compares against another field read at validation time.
func MustMatch(target func() string, fieldName string) Rule {
	if fieldName == "" {
		fieldName = "fields"
	}
	return func(value any) error {
		if asString(value) != target() {
			return errors.Errorf("%s do not match.", fieldName)
		}
		return nil
	}
}

func deref(value any) (reflect.Value, bool) {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return rv, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

func asString(value any) string {
	rv, ok := deref(value)
	if !ok {
		return ""
	}
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return fmt.Sprint(rv.Interface())
}
