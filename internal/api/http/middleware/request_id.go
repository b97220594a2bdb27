package middleware

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/dtroode/ride2gather-server/internal/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestID assigns every request an id and a logger tagged with it.
type RequestID struct {
	logger *logger.Logger
}

func NewRequestID(logger *logger.Logger) *RequestID {
	return &RequestID{logger: logger}
}

// Handle reuses a well-formed incoming X-Request-ID, otherwise generates a UUIDv7.
func (m *RequestID) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !requestIDPattern.MatchString(id) {
			id = newRequestID()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := logger.WithContext(r.Context(), m.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
