package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins []string
	MaxAge         int
}

// CORS wraps go-chi/cors; the API only accepts JSON GET and POST
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	origins := o.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}

// Defaults is the root stack: real ip, request id, logger bridge, panic to JSON, compression
func Defaults() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		chimw.RealIP,
		chimw.RequestID,
		RequestLogger,
		RecoverJSON,
		chimw.NewCompressor(flate.DefaultCompression).Handler,
	}
}
