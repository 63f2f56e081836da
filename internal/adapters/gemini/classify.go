package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"syscall"
	"time"
)

// Verdict is the classifier's decision about one failed attempt
type Verdict struct {
	Retryable bool
	Delay     time.Duration
	HasDelay  bool
}

var retryInRe = regexp.MustCompile(`(?i)retry in\s+([\d.]+)s`)

// Classify decides whether an attempt error is worth retrying and how long the server asked us to wait
func Classify(err error) Verdict {
	if err == nil {
		return Verdict{}
	}
	err = fromSDK(err)

	var v Verdict
	var ce *CallError
	switch {
	case errors.As(err, &ce):
		v.Retryable = retryableStatus(ce.Status)
		if ce.HasHint {
			v.Delay, v.HasDelay = ce.Hint, true
		}
	case transportTransient(err):
		v.Retryable = true
	}

	if v.Retryable && !v.HasDelay {
		v.Delay, v.HasDelay = messageHint(err.Error())
	}
	return v
}

// IsTransient reports whether err is an upstream failure that a fallback may absorb
func IsTransient(err error) bool { return Classify(err).Retryable }

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func transportTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var dns *net.DNSError
	if errors.As(err, &dns) && (dns.IsNotFound || dns.IsTemporary || dns.IsTimeout) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func messageHint(msg string) (time.Duration, bool) {
	m := retryInRe.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	secs, err := strconv.ParseFloat(m[1], 64)
	if err != nil || secs < 0 {
		return 0, false
	}
	return ceilMillis(time.Duration(secs * float64(time.Second))), true
}
