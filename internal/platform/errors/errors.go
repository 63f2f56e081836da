// Package errors carries coded errors from the domain to the HTTP envelope.
// Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine-facing class of a failure; values appear on the wire
type ErrorCode uint16

// Codes
const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable     // transient, a retry may succeed
	ErrorCodeInvalidArgument // well-formed but unusable value
	ErrorCodeValidation      // input failed validation
	ErrorCodeJSON            // body is not the expected JSON
	ErrorCodeDB
	ErrorCodeConfig   // operator-caused: missing credentials, unknown model, rejected upstream request
	ErrorCodeUpstream // an external dependency failed and no fallback absorbed it
)

type codeInfo struct {
	name   string
	status int
}

var codes = [...]codeInfo{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeDB:              {"db", http.StatusInternalServerError},
	ErrorCodeConfig:          {"config", http.StatusInternalServerError},
	ErrorCodeUpstream:        {"upstream", http.StatusBadGateway},
}

func (c ErrorCode) info() (codeInfo, bool) {
	if int(c) < len(codes) {
		return codes[c], true
	}
	return codeInfo{}, false
}

// String returns the stable lowercase name of the code
func (c ErrorCode) String() string {
	if ci, ok := c.info(); ok {
		return ci.name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatusCode maps a code to its response status; unknown codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if ci, ok := c.info(); ok {
		return ci.status
	}
	return http.StatusInternalServerError
}

// Error is a coded error. msg is safe to show callers, orig is kept for logs only.
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the JSON form of an error inside the response envelope
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return e.msg + ": " + e.orig.Error()
	default:
		return e.msg
	}
}

// Unwrap returns the cause
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input field, if any
func (e *Error) Field() string { return e.field }

// Op names the operation that failed, if set
func (e *Error) Op() string { return e.op }

// ToWire drops the cause and keeps the caller-facing parts
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom converts any error; foreign errors become ErrorCodeUnknown with their text
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root returns the innermost cause of err
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns err's code, ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a response status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// HTTP returns the status and wire payload for err in one call
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}

func with(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	set(&c)
	return &c
}

// WithField returns a copy of err naming field; foreign errors pass through
func WithField(err error, field string) error {
	return with(err, func(e *Error) { e.field = field })
}

// WithOp returns a copy of err labelled with op; foreign errors pass through
func WithOp(err error, op string) error {
	return with(err, func(e *Error) { e.op = op })
}

// New returns an *Error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns an *Error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error { return New(code, fmt.Sprintf(format, a...)) }

// Wrap returns an *Error around orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns an *Error around orig with a formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

// Validationf returns a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Configf returns a configuration error
func Configf(format string, a ...any) error { return Newf(ErrorCodeConfig, format, a...) }

// Unavailablef returns an unavailable error
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }
