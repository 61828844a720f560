// internal/adapters/in/http/middleware/recover.go
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"narratives-solana/internal/adapters/in/http/handlers/common"
	"narratives-solana/internal/platform/logger"
)

// Recover turns a handler panic into a 500 JSON envelope. The panic value
// is logged with the stack but never written to the client.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Error("[recover] PANIC", fmt.Errorf("%v", rec),
				"path", r.URL.Path,
				"method", r.Method,
				"stack", string(debug.Stack()),
			)
			common.WriteError(w, http.StatusInternalServerError, common.MsgInternalError)
		}()

		next.ServeHTTP(w, r)
	})
}
