package gateway

import (
	"fmt"
	"net/http"
	"strings"
)

// Error kinds, one per row of the taxonomy.
// Every failed call through the gateway is classified into exactly one kind.
const (
	KindAuthExpired      = "auth_expired"       // 401: session cleared, forced re-login
	KindForbidden        = "forbidden"          // 403
	KindNotFound         = "not_found"          // 404
	KindValidationFailed = "validation_failed"  // 422
	KindServerError      = "server_error"       // 500
	KindUnknownHTTP      = "unknown_http_error" // any other 4xx/5xx
	KindConnection       = "connection_error"   // no response received at all
)

// Error is the typed value every gateway call returns on failure
type Error struct {
	Kind    string
	Message string

	// Field level messages from a 422 body, in server order
	Fields []string

	// HTTP status that produced the classification, 0 for KindConnection
	Status int

	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("kind: %s, status: %d, message: %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorBody is the error envelope the backend uses: an optional message
// and an optional list of field level messages
type errorBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// classify maps a non-2xx response onto the taxonomy.
// Messages match what the dashboard showed users for each case.
func classify(status int, body errorBody) *Error {
	switch status {
	case http.StatusUnauthorized:
		return &Error{
			Kind:    KindAuthExpired,
			Message: "Your session has expired. Please log in again.",
			Status:  status,
		}
	case http.StatusForbidden:
		return &Error{
			Kind:    KindForbidden,
			Message: "You do not have permission to perform this action.",
			Status:  status,
		}
	case http.StatusNotFound:
		return &Error{
			Kind:    KindNotFound,
			Message: "The requested resource was not found.",
			Status:  status,
		}
	case http.StatusUnprocessableEntity:
		message := body.Message
		if len(body.Errors) > 0 {
			message = strings.Join(body.Errors, ", ")
		}
		if message == "" {
			message = "Validation failed"
		}
		return &Error{
			Kind:    KindValidationFailed,
			Message: message,
			Fields:  body.Errors,
			Status:  status,
		}
	case http.StatusInternalServerError:
		return &Error{
			Kind:    KindServerError,
			Message: "An internal server error occurred. Please try again later.",
			Status:  status,
		}
	default:
		message := body.Message
		if message == "" {
			message = "An unexpected error occurred."
		}
		return &Error{
			Kind:    KindUnknownHTTP,
			Message: message,
			Status:  status,
		}
	}
}

// connectionError classifies "no response at all": refused, DNS, timeout
func connectionError(err error) *Error {
	return &Error{
		Kind:    KindConnection,
		Message: "Unable to connect to the server. Please check your connection and try again.",
		Err:     err,
	}
}
