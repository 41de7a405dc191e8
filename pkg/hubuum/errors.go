package hubuum

import (
	"errors"
	"fmt"
)

// Static errors that can be wrapped with context.
var (
	// ErrInvalidToken is returned when the validation endpoint rejects a
	// pre-issued token. The request itself succeeded; the token did not.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingIdentifier is returned when a PATCH or DELETE is attempted
	// without a target id. No request is sent.
	ErrMissingIdentifier = errors.New("missing required identifier")

	// ErrURLNotBase is returned when the configured URL cannot serve as a
	// base for endpoint paths.
	ErrURLNotBase = errors.New("URL cannot be a base")

	// ErrUnknownResource is returned when a resource name does not resolve
	// to an endpoint.
	ErrUnknownResource = errors.New("unknown resource")
)

// InvalidSchemeError is returned when a base URL uses a scheme other than
// http or https.
type InvalidSchemeError struct {
	Scheme string
}

func (e *InvalidSchemeError) Error() string {
	return fmt.Sprintf("invalid URL scheme: %s", e.Scheme)
}

// HTTPError represents a non-2xx response from the API. Message holds the
// "message" field of a structured error body when present, or the raw body
// text otherwise.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.Status, e.Message)
}

// DeserializationError is returned when a success response body does not
// match the expected shape, or when a DELETE returns a non-empty body. The
// raw body is retained for diagnostics.
type DeserializationError struct {
	Raw string
	Err error
}

func (e *DeserializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to deserialize response: %v (body: %s)", e.Err, e.Raw)
	}

	return fmt.Sprintf("failed to deserialize response: %s", e.Raw)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a single result was expected but the query
// matched nothing.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// TooManyResultsError is returned when a single result was expected but the
// query matched more than one record.
type TooManyResultsError struct {
	Resource string
	Count    int
}

func (e *TooManyResultsError) Error() string {
	return fmt.Sprintf("too many results for %s: got %d, expected 1", e.Resource, e.Count)
}

// UnsupportedMethodError is returned by the generic dispatcher for HTTP
// verbs it does not implement.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported HTTP operation: %s", e.Method)
}

// SchemaError reports an invalid resource description at generation time.
type SchemaError struct {
	Resource string
	Field    string
	Reason   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid schema for %s: field %q %s", e.Resource, e.Field, e.Reason)
}

// IsNotFound checks if the error is a cardinality not-found error.
func IsNotFound(err error) bool {
	nf := &NotFoundError{}

	return errors.As(err, &nf)
}

// IsTooManyResults checks if the error is a cardinality too-many error.
func IsTooManyResults(err error) bool {
	tm := &TooManyResultsError{}

	return errors.As(err, &tm)
}

// IsHTTPStatus checks if the error is an HTTP error with the given status.
func IsHTTPStatus(err error, status int) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.Status == status
	}

	return false
}
