package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// CallError is a failed model call that carries an HTTP style status
type CallError struct {
	Status  int
	Message string

	// Hint is the server suggested retry delay, valid when HasHint
	Hint    time.Duration
	HasHint bool

	err error
}

// Error implements error
func (e *CallError) Error() string {
	if e.Status == 0 {
		return "gemini: " + e.Message
	}
	return fmt.Sprintf("gemini: status %d: %s", e.Status, e.Message)
}

// Unwrap returns the SDK error, if any
func (e *CallError) Unwrap() error { return e.err }

// timeoutError is the error of an attempt that outlived its per-call timer
func timeoutError(after time.Duration, cause error) *CallError {
	return &CallError{
		Status:  http.StatusGatewayTimeout,
		Message: fmt.Sprintf("model call timed out after %s", after),
		err:     cause,
	}
}

// rateLimitedError is returned instead of sleeping through an unaffordable retry hint
func rateLimitedError(status int, hint time.Duration) *CallError {
	if status == 0 {
		status = http.StatusTooManyRequests
	}
	secs := int((hint + time.Second - 1) / time.Second)
	return &CallError{
		Status:  status,
		Message: fmt.Sprintf("rate-limited. Retry after ~%ds", secs),
		Hint:    hint,
		HasHint: true,
	}
}

// fromSDK converts a genai.APIError into a *CallError; other errors pass through
func fromSDK(err error) error {
	api, ok := asAPIError(err)
	if !ok {
		return err
	}
	ce := &CallError{Status: api.Code, Message: api.Message, err: err}
	if ce.Message == "" {
		ce.Message = api.Status
	}
	if d, ok := retryInfoDelay(api.Details); ok {
		ce.Hint, ce.HasHint = d, true
	}
	return ce
}

func asAPIError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}
	return genai.APIError{}, false
}

// retryInfoDelay reads google.rpc.RetryInfo.retryDelay (e.g. "50s") from error details
func retryInfoDelay(details []map[string]any) (time.Duration, bool) {
	for _, d := range details {
		typ, _ := d["@type"].(string)
		if !strings.Contains(typ, "RetryInfo") {
			continue
		}
		raw, _ := d["retryDelay"].(string)
		if raw == "" {
			continue
		}
		if dur, err := time.ParseDuration(raw); err == nil && dur >= 0 {
			return ceilMillis(dur), true
		}
	}
	return 0, false
}

func ceilMillis(d time.Duration) time.Duration {
	if r := d % time.Millisecond; r != 0 {
		d += time.Millisecond - r
	}
	return d
}
