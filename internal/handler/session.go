package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
)

const (
	// SessionCookieName holds the anonymous browser identity.
	SessionCookieName = "ml_session_id"
	sessionMaxAge     = 10 * 365 * 24 * 60 * 60
)

// SessionID returns the session id carried by the request cookie, or
// domain.ErrNoSession. It never creates a session.
func SessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", domain.ErrNoSession
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return "", domain.ErrNoSession
	}
	return cookie.Value, nil
}

// GetOrCreateSessionID returns the request's session id, minting a new
// random one and setting the cookie when none is present.
func GetOrCreateSessionID(w http.ResponseWriter, r *http.Request, secure bool) string {
	if id, err := SessionID(r); err == nil {
		return id
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
