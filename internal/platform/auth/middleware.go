package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

// SessionKey is the request-context key holding the parsed session claims.
const SessionKey contextKey = "session"

// SessionFromContext returns the session claims attached by
// SessionMiddleware, or nil when the request is unauthenticated.
func SessionFromContext(ctx context.Context) *SessionClaims {
	claims, _ := ctx.Value(SessionKey).(*SessionClaims)
	return claims
}

// SessionMiddleware authenticates requests from the session cookie or an
// Authorization bearer header and stashes the claims on the request context.
// Requests the skipper accepts pass through unauthenticated.
func SessionMiddleware(sessions *SessionManager, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			tokenStr := sessionToken(c)
			if tokenStr == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			claims, err := sessions.Parse(tokenStr)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			ctx := context.WithValue(c.Request().Context(), SessionKey, claims)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// sessionToken extracts the raw session token from the cookie or, failing
// that, a bearer Authorization header.
func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
