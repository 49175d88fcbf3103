package httphandler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey int

const sessionKey ctxKey = iota

const SessionHeader = "X-Session-ID"

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// WithSession reads the caller's session ID header, issuing a fresh
// one when absent, and echoes it back on the response.
func WithSession(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		w.Header().Set(SessionHeader, sessionID)

		ctx := context.WithValue(r.Context(), sessionKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hf)
}

func sessionID(r *http.Request) string {
	v, _ := r.Context().Value(sessionKey).(string)
	return v
}
