package httpkit

import (
	"net/http"
	"time"

	"creditrisk/internal/platform/net/middleware"
)

// StackOptions tunes the per-scope middleware returned by CommonStack
type StackOptions struct {
	// Timeout bounds the whole request, zero disables it
	Timeout time.Duration
	CORS    middleware.CORSOptions
}

// CommonStack returns the baseline middleware for an API scope
// the root stack (request id, recovery) is installed by the server
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	mw := []func(http.Handler) http.Handler{
		middleware.AccessLogZerolog(middleware.AccessLogOptions{}),
		middleware.CORS(o.CORS),
	}
	if o.Timeout > 0 {
		mw = append(mw, middleware.Timeout(o.Timeout))
	}
	return mw
}
