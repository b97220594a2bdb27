package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dtroode/ride2gather-server/internal/logger"
)

// Recovery turns a handler panic into a 500 JSON response.
type Recovery struct {
	logger *logger.Logger
}

func NewRecovery(logger *logger.Logger) *Recovery {
	return &Recovery{logger: logger}
}

func (m *Recovery) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}
			logger.FromContext(r.Context(), m.logger).Error("HTTP handler panicked",
				"panic", fmt.Sprint(p),
				"stack", string(debug.Stack()))

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"server error"}` + "\n"))
		}()

		next.ServeHTTP(w, r)
	})
}
