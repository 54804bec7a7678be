package errors

import (
	"errors"
	"fmt"
)

// Common error types for the marketplace client
var (
	// Session errors
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrNoRefreshToken  = errors.New("no refresh token")
	ErrRefreshFailed   = errors.New("token refresh failed")
	ErrSessionCorrupt  = errors.New("stored session is corrupt")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrMissingIDToken  = errors.New("identity provider did not return a token")
	ErrMissingClientID = errors.New("missing google client id")

	// Request errors
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrMissingRedirect = errors.New("no redirect url provided")

	// Storage errors
	ErrStorageKeyNotFound = errors.New("storage key not found")
	ErrStoragePassphrase  = errors.New("storage passphrase required")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
