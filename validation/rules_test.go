package validation_test

import (
	"testing"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
	"github.com/jrsteele09/go-marketplace-client/validation"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	var nilPtr *string
	for name, value := range map[string]any{
		"nil":         nil,
		"nil pointer": nilPtr,
		"false":       false,
		"blank":       "   ",
		"empty slice": []string{},
	} {
		t.Run(name, func(t *testing.T) {
			require.EqualError(t, validation.Required(value), validation.MsgRequired)
		})
	}

	require.NoError(t, validation.Required("x"))
	require.NoError(t, validation.Required(0))
	require.NoError(t, validation.Required(true))
	require.NoError(t, validation.Required([]int{1}))
}

func TestAtLeastOne(t *testing.T) {
	require.EqualError(t, validation.AtLeastOne(nil), validation.MsgAtLeastOne)
	require.EqualError(t, validation.AtLeastOne([]int{}), validation.MsgAtLeastOne)
	require.NoError(t, validation.AtLeastOne([]string{"go"}))
}

func TestURLFormat(t *testing.T) {
	require.NoError(t, validation.URLFormat(""))
	require.NoError(t, validation.URLFormat("https://example.com/portfolio"))
	require.NoError(t, validation.URLFormat("mailto:someone@example.com"))
	require.EqualError(t, validation.URLFormat("example.com"), validation.MsgURLFormat)
	require.EqualError(t, validation.URLFormat("http://"), validation.MsgURLFormat)
}

func TestLengthRules(t *testing.T) {
	require.EqualError(t, validation.MinLength(8)("short"), "Must be at least 8 characters long.")
	require.NoError(t, validation.MinLength(3)("abc"))
	require.EqualError(t, validation.MaxLength(3)("abcd"), "Cannot exceed 3 characters.")
	require.NoError(t, validation.MaxLength(3)(nil))
}

func TestEmailFormat(t *testing.T) {
	require.NoError(t, validation.EmailFormat(""))
	require.NoError(t, validation.EmailFormat("jane@example.co.ke"))
	require.EqualError(t, validation.EmailFormat("jane@example"), validation.MsgEmailFormat)
	require.EqualError(t, validation.EmailFormat("ja ne@example.com"), validation.MsgEmailFormat)
}

func TestPasswordRules(t *testing.T) {
	tests := []struct {
		password string
		want     string
	}{
		{"", validation.MsgRequired},
		{"Ab1!", "Must be at least 8 characters long."},
		{"lowercase1!", validation.MsgNeedsUppercase},
		{"Uppercase!", validation.MsgNeedsNumber},
		{"Uppercase1", validation.MsgNeedsSpecial},
		{"Uppercase1!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := validation.Validate(tt.password, validation.PasswordRules...)
			if tt.want == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestMustMatch(t *testing.T) {
	password := "Secret1!"
	rule := validation.MustMatch(func() string { return password }, "Passwords")
	require.NoError(t, rule("Secret1!"))
	require.EqualError(t, rule("Secret2!"), "Passwords do not match.")

	require.EqualError(t, validation.MustMatch(func() string { return "a" }, "")("b"), "fields do not match.")
}

type signup struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8,password"`
	Confirm  string   `json:"password_confirmation" validate:"eqfield=Password"`
	Skills   []string `json:"skills" validate:"min=1"`
	Website  string   `json:"website" validate:"omitempty,url"`
}

func TestStructCollectsFieldMessages(t *testing.T) {
	err := validation.Struct(signup{
		Email:    "nope",
		Password: "lowercase1!",
		Confirm:  "other",
		Website:  "not a url",
	})
	require.Error(t, err)
	require.True(t, perrors.Is(err, perrors.ErrInvalidPayload))

	var fieldErrs validation.FieldErrors
	require.True(t, perrors.As(err, &fieldErrs))
	require.Equal(t, validation.MsgEmailFormat, fieldErrs["email"])
	require.Equal(t, validation.MsgNeedsUppercase, fieldErrs["password"])
	require.Equal(t, "fields do not match.", fieldErrs["password_confirmation"])
	require.Equal(t, validation.MsgAtLeastOne, fieldErrs["skills"])
	require.Equal(t, validation.MsgURLFormat, fieldErrs["website"])

	require.NoError(t, validation.Struct(signup{
		Email:    "jane@example.com",
		Password: "Uppercase1!",
		Confirm:  "Uppercase1!",
		Skills:   []string{"go"},
	}))
}
