package authmodel

import (
	"time"

	"github.com/jrsteele09/go-marketplace-client/users"
)

// AuthResponse is returned by /auth/login/ and /oauth2callback/.
type AuthResponse struct {
	// Access is the short lived bearer credential.
	// Usage: "Authorization: Bearer <access>" on every authenticated call
	// Lifespan: enforced server side, an expired token produces a 401
	Access string `json:"access"`

	// Refresh is the long lived credential exchanged at /auth/token/refresh/.
	// Behavior: may be rotated on refresh
	Refresh string `json:"refresh"`

	// AccessExpires and RefreshExpires are ISO-8601 timestamps. Older backends omit them.
	// Example: "2025-01-31T10:15:00Z"
	AccessExpires  string `json:"access_expires,omitempty"`
	RefreshExpires string `json:"refresh_expires,omitempty"`

	// UserType is the role of the account and decides where the profile is nested.
	UserType users.UserType `json:"user_type"`

	// User carries the role dependent profile payload.
	User AuthUser `json:"user"`

	// IsNew is set by /oauth2callback/ when the Google sign in created the account.
	IsNew bool `json:"is_new,omitempty"`
}

type AuthUser struct {
	ProfileData ProfileData `json:"profile_data"`
}

// AccessExpiry parses AccessExpires and returns the zero time when absent or malformed.
func (r *AuthResponse) AccessExpiry() time.Time {
	return parseTimestamp(r.AccessExpires)
}

// TokenRefreshResponse is returned by /auth/token/refresh/.
type TokenRefreshResponse struct {
	// Access is the replacement bearer credential. Always present on success.
	Access string `json:"access"`

	// Refresh is only present when the backend rotates refresh tokens.
	// Behavior: empty means keep the current refresh token
	Refresh string `json:"refresh,omitempty"`

	AccessExpires string `json:"access_expires,omitempty"`
}

func (r *TokenRefreshResponse) AccessExpiry() time.Time {
	return parseTimestamp(r.AccessExpires)
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
