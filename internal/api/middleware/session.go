package middleware

import (
	"context"
	"net/http"

	"github.com/arya/athlete-insights/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// Attach resolves the request's session, if any, into the context.
// Absence is not an error; public pages just render signed-out.
func Attach(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec, err := sessions.Current(r.Context(), w, r)
			if err == nil {
				ctx := context.WithValue(r.Context(), sessionKey, rec)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Require gates protected routes. A missing session is the expected
// "not authenticated" path and redirects to login, it is never an error.
func Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Redirect(w, r, "/users/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func FromContext(ctx context.Context) (*session.Record, bool) {
	rec, ok := ctx.Value(sessionKey).(*session.Record)
	return rec, ok
}
