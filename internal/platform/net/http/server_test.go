package http

import (
	"context"
	"net"
	stdhttp "net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"creditrisk/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestNewServerReadsConfig(t *testing.T) {
	t.Setenv("TEST_API_PORT", "4111")
	t.Setenv("TEST_API_WRITE_TIMEOUT", "45s")

	var mounted bool
	s := NewServer(config.New().Prefix("TEST_API_"), func(m *chi.Mux) { mounted = true })
	if s.Addr() != ":4111" || !mounted {
		t.Fatalf("addr=%s mounted=%v", s.Addr(), mounted)
	}
	if s.srv.WriteTimeout != 45*time.Second {
		t.Fatalf("write timeout = %v", s.srv.WriteTimeout)
	}

	GetJSON(s.Router(), "/ping", func(*stdhttp.Request) (any, error) { return "pong", nil })
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/ping", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv("TEST_RUN_PORT", strconv.Itoa(freePort(t)))
	t.Setenv("TEST_RUN_SHUTDOWN_TIMEOUT", "1s")
	s := NewServer(config.New().Prefix("TEST_RUN_"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not stop")
	}
}
