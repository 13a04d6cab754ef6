// Package errs provides the error types handlers use to report failures
// to the client with a specific status code.
package errs

import (
	"errors"
	"net/http"
)

// Response is the body sent to the client for a failed request. The trace id
// ties the response to the line the service logged for it.
type Response struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// Trusted is an error whose message is safe to show the client, along with
// the status code to respond with.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted wraps the error with the status code to respond with.
func NewTrusted(err error, status int) error {
	return &Trusted{Err: err, Status: status}
}

// BadRequest reports a request the client can fix.
func BadRequest(err error) error {
	return NewTrusted(err, http.StatusBadRequest)
}

// NotFound reports a block or resource the chain does not hold.
func NotFound(err error) error {
	return NewTrusted(err, http.StatusNotFound)
}

// Error implements the error interface.
func (te *Trusted) Error() string {
	return te.Err.Error()
}

// Unwrap provides access to the wrapped error.
func (te *Trusted) Unwrap() error {
	return te.Err
}

// IsTrusted reports if a Trusted error exists in the chain.
func IsTrusted(err error) bool {
	var te *Trusted
	return errors.As(err, &te)
}

// GetTrusted returns the Trusted error from the chain or nil.
func GetTrusted(err error) *Trusted {
	var te *Trusted
	if !errors.As(err, &te) {
		return nil
	}
	return te
}

// ToResponse builds the client response and status code for any error.
// Errors that are not trusted are reported as a 500 without their message.
func ToResponse(err error, traceID string) (Response, int) {
	if te := GetTrusted(err); te != nil {
		return Response{Error: te.Error(), TraceID: traceID}, te.Status
	}

	return Response{Error: http.StatusText(http.StatusInternalServerError), TraceID: traceID}, http.StatusInternalServerError
}
