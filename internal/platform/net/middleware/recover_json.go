package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "creditrisk/internal/platform/errors"
	"creditrisk/internal/platform/logger"
	phttp "creditrisk/internal/platform/net/http"
)

// RecoverJSON converts panics into the standard JSON 500 envelope and logs the stack
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			phttp.RespondError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
