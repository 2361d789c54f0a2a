package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// LoginStateTTL bounds how long an authorization redirect may remain pending
// before the callback is rejected.
const LoginStateTTL = 10 * time.Minute

// Handler drives the three sign-in paths (two OAuth2 code flows and the
// static credential check) and the session endpoints.
type Handler struct {
	baseURL   string
	secure    bool
	sessions  *SessionManager
	logins    *LoginStateStore
	creds     *StaticCredentials
	providers map[string]Provider
	logger    zerolog.Logger
}

func NewHandler(baseURL string, secure bool, sessions *SessionManager, logins *LoginStateStore, creds *StaticCredentials, logger zerolog.Logger, providers ...Provider) *Handler {
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &Handler{
		baseURL:   baseURL,
		secure:    secure,
		sessions:  sessions,
		logins:    logins,
		creds:     creds,
		providers: byName,
		logger:    logger,
	}
}

// RegisterRoutes registers the authentication routes. These sit outside the
// session middleware: signing in is how a session is obtained.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")
	g.GET("/signin/:provider", h.SignIn)
	g.GET("/callback/:provider", h.Callback)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/session", h.Session)
}

func (h *Handler) callbackURL(provider string) string {
	return h.baseURL + "/auth/callback/" + provider
}

// SignIn starts an authorization-code flow: it generates the PKCE verifier
// and state, records the pending login, and redirects to the provider.
func (h *Handler) SignIn(c echo.Context) error {
	name := c.Param("provider")
	provider, ok := h.providers[name]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown provider")
	}

	verifier, err := NewCodeVerifier()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not start sign-in")
	}

	redirectTo := c.QueryParam("redirect_to")
	ls, err := h.logins.Create(name, verifier, redirectTo)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not start sign-in")
	}

	authURL := provider.AuthCodeURL(h.callbackURL(name), ls.State, CodeChallenge(verifier))
	return c.Redirect(http.StatusFound, authURL)
}

// Callback completes an authorization-code flow: it validates state,
// exchanges the code with the PKCE verifier, fetches the profile, and issues
// the session cookie. Any provider failure aborts the sign-in; no session is
// created and the user lands on the error page.
func (h *Handler) Callback(c echo.Context) error {
	name := c.Param("provider")
	provider, ok := h.providers[name]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown provider")
	}

	if errCode := c.QueryParam("error"); errCode != "" {
		h.logger.Warn().Str("provider", name).Str("error", errCode).Msg("provider returned authorization error")
		return c.Redirect(http.StatusFound, h.baseURL+"/auth/error")
	}

	ls := h.logins.Consume(c.QueryParam("state"))
	if ls == nil || ls.Provider != name {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired state")
	}

	ctx := c.Request().Context()
	token, err := provider.Exchange(ctx, c.QueryParam("code"), ls.Verifier, h.callbackURL(name))
	if err != nil {
		h.logger.Error().Err(err).Str("provider", name).Msg("token exchange failed")
		return c.Redirect(http.StatusFound, h.baseURL+"/auth/error")
	}

	identity, err := provider.Profile(ctx, token.AccessToken)
	if err != nil {
		h.logger.Error().Err(err).Str("provider", name).Msg("profile fetch failed")
		return c.Redirect(http.StatusFound, h.baseURL+"/auth/error")
	}

	sessionToken, err := h.sessions.Issue(identity, name)
	if err != nil {
		h.logger.Error().Err(err).Str("provider", name).Msg("session issue failed")
		return c.Redirect(http.StatusFound, h.baseURL+"/auth/error")
	}

	c.SetCookie(h.sessions.Cookie(sessionToken, h.secure))
	return c.Redirect(http.StatusFound, ResolveRedirect(ls.RedirectTo, h.baseURL))
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login handles the static credential path.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	identity := h.creds.Authenticate(req.Username, req.Password)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.sessions.Issue(identity, "credentials")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create session")
	}

	c.SetCookie(h.sessions.Cookie(token, h.secure))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":     identity,
		"provider": "credentials",
	})
}

// Logout clears the session cookie.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.ClearCookie())
	return c.NoContent(http.StatusNoContent)
}

// Session returns the current session snapshot: the normalized user plus the
// provider fields attached at sign-in. It reads the token directly so it can
// be mounted outside the session middleware.
func (h *Handler) Session(c echo.Context) error {
	tokenStr := sessionToken(c)
	if tokenStr == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	claims, err := h.sessions.Parse(tokenStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
	}

	resp := map[string]interface{}{
		"user": map[string]interface{}{
			"id":       claims.Subject,
			"name":     claims.Name,
			"email":    claims.Email,
			"provider": claims.Provider,
		},
		"expires": claims.ExpiresAt.Time,
	}
	if claims.AccountID != "" {
		resp[claims.Provider] = map[string]string{
			"account_id": claims.AccountID,
			"name_th":    claims.NameTH,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
