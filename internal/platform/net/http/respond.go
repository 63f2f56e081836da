// Package http provides the router facade, server, and JSON envelope helpers
package http

import (
	"encoding/json"
	"io"
	stdhttp "net/http"

	perr "creditrisk/internal/platform/errors"
	"creditrisk/internal/platform/logger"
	pnet "creditrisk/internal/platform/net"
)

// Envelope wraps every enveloped JSON response
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return-style handlers produce
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header

	// Raw writes Body as-is: JSON without the envelope, or text when Body is a string
	Raw bool
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// Error returns a response whose status comes from the error code
func Error(err error) Response { return Response{Body: err} }

// RawJSON returns a 200 response encoded without the envelope
func RawJSON(v any) Response { return Response{Status: stdhttp.StatusOK, Body: v, Raw: true} }

// Text returns a 200 plain text response
func Text(s string) Response { return Response{Status: stdhttp.StatusOK, Body: s, Raw: true} }

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).write(w, r) }
}

// RespondError writes err as an enveloped error response
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) { Error(err).write(w, r) }

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		writeError(w, r, err)
		return
	}
	if resp.Raw {
		if s, ok := resp.Body.(string); ok {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(status)
			_, _ = io.WriteString(w, s)
			return
		}
		JSON(w, status, resp.Body)
		return
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       resp.Body,
	})
}

// writeError logs 5xx at error and everything else at warn, then writes the envelope
func writeError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, wire := perr.HTTP(err)
	log := logger.C(r.Context())
	ev := log.Warn()
	if status >= stdhttp.StatusInternalServerError {
		ev = log.Error()
	}
	if e, ok := perr.As(err); ok && e.Op() != "" {
		ev = ev.Str("op", e.Op())
	}
	ev.Err(err).Int("status", status).Str("code", wire.Code.String()).Msg("request failed")

	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		RequestID:  pnet.RequestID(r.Context()),
	})
}
