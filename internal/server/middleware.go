package server

import (
	"context"
	"net/http"
)

type ctxKey int

const ctxKeyHost ctxKey = iota

// hostAuthMiddleware resolves the host_session cookie and rejects requests
// without a valid session.
func hostAuthMiddleware(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(hostCookieName)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			sess, err := store.HostFromSession(r.Context(), cookie.Value)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyHost, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func hostFrom(r *http.Request) hostSession {
	return r.Context().Value(ctxKeyHost).(hostSession)
}
