package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "creditrisk/internal/platform/net/http"
	svc "creditrisk/internal/services/api/ai/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type echo struct{ got string }

func (e *echo) Ping(_ context.Context, text string) (svc.PingResult, error) {
	e.got = text
	return svc.PingResult{OK: true, Model: "m", Input: text, Output: "OK"}, nil
}

func TestPingHandler(t *testing.T) {
	cases := []struct {
		name, body string
		status     int
		want       string
	}{
		{"empty body", "", http.StatusOK, ""},
		{"with text", `{"text":"hello"}`, http.StatusOK, "hello"},
		{"unknown field", `{"prompt":"x"}`, http.StatusBadRequest, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := &echo{}
			mux := chi.NewRouter()
			Register(phttp.AdaptChi(mux), e)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", strings.NewReader(tc.body)))
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			assert.Equal(t, tc.want, e.got)
			if tc.status == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"ok":true`)
			}
		})
	}
}
