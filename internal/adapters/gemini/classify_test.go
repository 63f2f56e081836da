package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	perr "creditrisk/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		err       error
		retryable bool
		delay     time.Duration
		hasDelay  bool
	}{
		{name: "nil", err: nil},
		{name: "429", err: &CallError{Status: 429, Message: "quota"}, retryable: true},
		{name: "503", err: &CallError{Status: 503, Message: "overloaded"}, retryable: true},
		{name: "504", err: &CallError{Status: 504}, retryable: true},
		{name: "400 fatal", err: &CallError{Status: 400, Message: "bad request"}},
		{name: "401 fatal", err: &CallError{Status: 401}},
		{name: "config fatal", err: perr.Configf("missing key")},
		{name: "structured hint", err: &CallError{Status: 429, Hint: 50 * time.Second, HasHint: true}, retryable: true, delay: 50 * time.Second, hasDelay: true},
		{name: "message hint", err: &CallError{Status: 429, Message: "Please retry in 1.2345s."}, retryable: true, delay: 1235 * time.Millisecond, hasDelay: true},
		{name: "message hint ignored when fatal", err: &CallError{Status: 400, Message: "retry in 2s"}},
		{name: "deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), retryable: true},
		{name: "conn reset", err: &net.OpError{Op: "read", Err: syscall.ECONNRESET}, retryable: true},
		{name: "dns not found", err: &net.DNSError{Name: "x", IsNotFound: true}, retryable: true},
		{name: "dns temporary", err: &net.DNSError{Name: "x", IsTemporary: true}, retryable: true},
		{name: "canceled", err: context.Canceled},
		{name: "plain", err: errors.New("boom")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Classify(tc.err)
			assert.Equal(t, tc.retryable, v.Retryable)
			assert.Equal(t, tc.hasDelay, v.HasDelay)
			assert.Equal(t, tc.delay, v.Delay)
		})
	}
}

func TestClassify_SDKError(t *testing.T) {
	t.Parallel()

	api := genai.APIError{
		Code:    429,
		Message: "Resource has been exhausted",
		Details: []map[string]any{
			{"@type": "type.googleapis.com/google.rpc.QuotaFailure"},
			{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "50s"},
		},
	}
	v := Classify(fmt.Errorf("generate: %w", api))
	assert.True(t, v.Retryable)
	assert.True(t, v.HasDelay)
	assert.Equal(t, 50*time.Second, v.Delay)

	ce, ok := fromSDK(api).(*CallError)
	if assert.True(t, ok) {
		assert.Equal(t, 429, ce.Status)
		var inner genai.APIError
		assert.True(t, errors.As(ce, &inner))
	}

	fatal := Classify(genai.APIError{Code: 403, Message: "PERMISSION_DENIED"})
	assert.False(t, fatal.Retryable)
}

func TestRateLimitedError(t *testing.T) {
	t.Parallel()

	e := rateLimitedError(0, 49500*time.Millisecond)
	assert.Equal(t, 429, e.Status)
	assert.Equal(t, "gemini: status 429: rate-limited. Retry after ~50s", e.Error())
	assert.True(t, IsTransient(e))
}

func TestCeilMillis(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2*time.Millisecond, ceilMillis(1500*time.Microsecond))
	assert.Equal(t, time.Second, ceilMillis(time.Second))
}
