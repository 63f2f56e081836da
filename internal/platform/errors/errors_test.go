package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeUpstream, http.StatusBadGateway},
		{ErrorCodeConfig, http.StatusInternalServerError},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	for c := ErrorCodeUnknown; c <= ErrorCodeUpstream; c++ {
		if c.String() == "" || c.String() == fmt.Sprintf("code(%d)", uint16(c)) {
			t.Fatalf("code %d has no name", uint16(c))
		}
	}
	if got := ErrorCodeConfig.String(); got != "config" {
		t.Fatalf("String() = %q, want config", got)
	}
	if got := ErrorCode(4242).String(); got != "code(4242)" {
		t.Fatalf("String() unknown = %q", got)
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	src := stderrs.New("root")
	wrapped := Wrapf(src, ErrorCodeConfig, "gemini model %q", "nope")
	if want := `gemini model "nope": root`; wrapped.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", wrapped.Error(), want)
	}
	if stderrs.Unwrap(wrapped) != src {
		t.Fatalf("Wrapf did not keep orig")
	}
	if got, ok := As(wrapped); !ok || got.Code() != ErrorCodeConfig {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	withField := WithField(Validationf("bad input"), "monthlyIncome")
	withOp := WithOp(withField, "assess")
	if fe, _ := As(withField); fe.Field() != "monthlyIncome" || fe.Op() != "" {
		t.Fatalf("WithField mismatch or copy-on-write broken: %+v", fe)
	}
	if oe, _ := As(withOp); oe.Op() != "assess" || oe.Field() != "monthlyIncome" {
		t.Fatalf("WithOp mismatch: %+v", oe)
	}
	if WithField(src, "x") != src || WithOp(src, "x") != src {
		t.Fatalf("foreign errors must pass through unchanged")
	}

	if wf := WireFrom(withField); wf.Code != ErrorCodeValidation || wf.Message != "bad input" || wf.Field != "monthlyIncome" {
		t.Fatalf("WireFrom(ours) mismatch: %+v", wf)
	}
	if wf := WireFrom(wrapped); wf.Message != `gemini model "nope"` {
		t.Fatalf("WireFrom must not leak the cause: %+v", wf)
	}
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != "root" {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", wf)
	}
	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", wf)
	}

	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", st)
	}
	if st, w := HTTP(Configf("missing GEMINI_API_KEY")); st != http.StatusInternalServerError || w.Code != ErrorCodeConfig {
		t.Fatalf("HTTP(config) = %d %+v", st, w)
	}

	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if got := Root(deep); got != src {
		t.Fatalf("Root() failed, got %v", got)
	}
	if Root(nil) != nil {
		t.Fatalf("Root(nil) should be nil")
	}
}

func TestSugarCodes(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{Validationf("x"), ErrorCodeValidation},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
		{Configf("x"), ErrorCodeConfig},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{New(ErrorCodeUpstream, "x"), ErrorCodeUpstream},
	}
	for _, c := range cases {
		if !IsCode(c.err, c.want) {
			t.Fatalf("%v: code = %v, want %v", c.err, CodeOf(c.err), c.want)
		}
	}
}
