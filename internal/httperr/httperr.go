// Package httperr carries an HTTP status alongside an error so handlers
// can classify failures without writing responses themselves. Message is
// what a client may see; the wrapped error stays in the logs.
package httperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// BadRequest marks a protocol violation by the client, such as a CSRF
// state mismatch. Never retried.
func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Forbidden marks a well-formed request the server refuses, such as a
// profile outside the required organization.
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Upstream marks a failure of an external collaborator (provider
// timeout, non-2xx token endpoint).
func Upstream(msg string, err error) *Error {
	return &Error{Status: http.StatusBadGateway, Message: msg, Err: err}
}

func Internal(msg string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// StatusOf extracts the status carried by err, defaulting to 500.
func StatusOf(err error) int {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Status
	}
	return http.StatusInternalServerError
}
