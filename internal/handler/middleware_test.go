package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/domain"
	"github.com/polarisaistudio/ml-training-site-sub001/internal/handler"
)

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	w := httptest.NewRecorder()
	handler.SecurityHeaders(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestLogRequests_KeepsFlusherAndStatus(t *testing.T) {
	var flushable bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, flushable = w.(http.Flusher)
		w.WriteHeader(http.StatusTeapot)
	})
	w := httptest.NewRecorder()
	handler.LogRequests(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, flushable)
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestGetOrCreateSessionID(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	id := handler.GetOrCreateSessionID(w, r, true)
	require.NotEmpty(t, id)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, handler.SessionCookieName, c.Name)
	assert.Equal(t, id, c.Value)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Greater(t, c.MaxAge, 9*365*24*60*60)

	// An existing cookie is reused and not reset.
	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(c)
	assert.Equal(t, id, handler.GetOrCreateSessionID(w2, r2, true))
	assert.Empty(t, w2.Result().Cookies())
}

func TestSessionID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := handler.SessionID(r)
	assert.ErrorIs(t, err, domain.ErrNoSession)

	r.AddCookie(&http.Cookie{Name: handler.SessionCookieName, Value: "not-a-uuid"})
	_, err = handler.SessionID(r)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}
