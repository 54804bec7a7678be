package apiclient

import (
	"encoding/json"
	"fmt"
	"strings"

	perrors "github.com/jrsteele09/go-marketplace-client/internal/errors"
)

// Kind classifies a failed call.
type Kind int

const (
	KindNetwork Kind = iota
	KindAuthentication
	KindClientRequest
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindClientRequest:
		return "client_request"
	case KindServer:
		return "server"
	default:
		return "network"
	}
}

// KindForStatus maps an HTTP status onto the error taxonomy.
func KindForStatus(status int) Kind {
	switch {
	case status == 401:
		return KindAuthentication
	case status >= 400 && status < 500:
		return KindClientRequest
	case status >= 500 && status < 600:
		return KindServer
	default:
		return KindNetwork
	}
}

const DefaultErrorMessage = "An unexpected error occurred."

// DefaultMessageKeys are the DRF error keys, in priority order.
var DefaultMessageKeys = []string{"detail", "message", "error"}

// APIError is returned for every non-2xx response and for transport failures.
type APIError struct {
	Kind    Kind
	Status  int // 0 when no response was received
	Message string
	Method  string
	URL     string
	Body    []byte
	Err     error // transport failure, nil when a response was received
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AsAPIError finds the APIError in err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := perrors.As(err, &apiErr)
	return apiErr, ok
}

// IsUnauthorized reports a 401 anywhere in err's chain.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == KindAuthentication
}

// ExtractMessage returns the first non-empty value among DefaultMessageKeys,
// or DefaultErrorMessage.
func ExtractMessage(body []byte) string {
	return ExtractMessageFrom(body, DefaultErrorMessage, DefaultMessageKeys...)
}

// ExtractMessageFrom is ExtractMessage with an explicit key order and fallback.
// String values are used as is; a list of strings (DRF non_field_errors style)
// yields its first entry.
func ExtractMessageFrom(body []byte, fallback string, keys ...string) string {
	var payload map[string]json.RawMessage
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return fallback
	}
	for _, key := range keys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		if msg := messageValue(raw); msg != "" {
			return msg
		}
	}
	return fallback
}

func messageValue(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
		return strings.TrimSpace(list[0])
	}
	return ""
}

// Messages shown by the gateway.
const (
	MsgSessionExpired = "Session expired. Please log in again."
	MsgPleaseLogIn    = "Please log in to access this resource."
	MsgServerError    = "Server error. Please try again later."
	MsgNetworkError   = "Network error or unknown issue."
)

// UserMessage is the notification text for a failed call. A 401 yields
// MsgPleaseLogIn; the gateway picks its own text when a refresh is involved.
func UserMessage(err error) string {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return MsgNetworkError
	}
	switch apiErr.Kind {
	case KindAuthentication:
		return MsgPleaseLogIn
	case KindClientRequest:
		return "Error: " + apiErr.Message
	case KindServer:
		return MsgServerError
	default:
		return MsgNetworkError
	}
}
