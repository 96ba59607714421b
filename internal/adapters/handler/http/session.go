package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionCookieName holds the anonymous session identifier. The session is
// the unit of deduplication and personal analytics; there are no accounts.
const SessionCookieName = "versus_session"

const sessionMaxAge = 365 * 24 * 60 * 60 // 1 year

type contextKey string

const sessionContextKey contextKey = "session_id"

// SessionMiddleware reads the session cookie, minting a fresh identifier
// when absent, and stores it on the request context.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   sessionMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionContextKey).(string)
	return id
}
