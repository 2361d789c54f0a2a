package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func sessionRequest(t *testing.T, m *SessionManager, mw echo.MiddlewareFunc, mutate func(*http.Request)) (*httptest.ResponseRecorder, error, *SessionClaims) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *SessionClaims
	err := mw(func(c echo.Context) error {
		seen = SessionFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, err, seen
}

func TestSessionMiddleware_Cookie(t *testing.T) {
	m := NewSessionManager("test-secret")
	token, _ := m.Issue(&Identity{ID: "acct-1", Name: "A"}, "healthid")

	_, err, claims := sessionRequest(t, m, SessionMiddleware(m, nil), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims == nil || claims.Subject != "acct-1" {
		t.Errorf("expected session claims on context, got %+v", claims)
	}
}

func TestSessionMiddleware_BearerHeader(t *testing.T) {
	m := NewSessionManager("test-secret")
	token, _ := m.Issue(&Identity{ID: "acct-2"}, "credentials")

	_, err, claims := sessionRequest(t, m, SessionMiddleware(m, nil), func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims == nil || claims.Subject != "acct-2" {
		t.Errorf("expected session claims, got %+v", claims)
	}
}

func TestSessionMiddleware_Missing(t *testing.T) {
	m := NewSessionManager("test-secret")

	_, err, _ := sessionRequest(t, m, SessionMiddleware(m, nil), nil)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestSessionMiddleware_InvalidToken(t *testing.T) {
	m := NewSessionManager("test-secret")

	_, err, _ := sessionRequest(t, m, SessionMiddleware(m, nil), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	})
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestSessionMiddleware_Skipper(t *testing.T) {
	m := NewSessionManager("test-secret")
	mw := SessionMiddleware(m, func(c echo.Context) bool { return true })

	_, err, claims := sessionRequest(t, m, mw, nil)
	if err != nil {
		t.Fatalf("skipped request should pass through, got %v", err)
	}
	if claims != nil {
		t.Error("skipped request should not carry session claims")
	}
}
