package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/studentms/portal-gateway/internal/api/metrics"
	"github.com/studentms/portal-gateway/internal/core/domain"
	"github.com/studentms/portal-gateway/internal/core/ports"
	"github.com/studentms/portal-gateway/internal/core/service"
)

// AuthHandler exposes sign-in, sign-out and session introspection.
type AuthHandler struct {
	sessions   *service.SessionService
	stores     ports.SessionStores
	cookieName string
	cookieTTL  time.Duration
}

func NewAuthHandler(sessions *service.SessionService, stores ports.SessionStores, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{sessions: sessions, stores: stores, cookieName: cookieName, cookieTTL: cookieTTL}
}

type signInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Force    bool   `json:"force"`
}

type mfaResponse struct {
	MFARequired    bool   `json:"mfaRequired"`
	Username       string `json:"username"`
	TemporaryToken string `json:"temporaryToken"`
}

type conflictResponse struct {
	AlreadyLoggedIn bool `json:"alreadyLoggedIn"`
}

type sessionResponse struct {
	User *domain.Session `json:"user"`
}

// SignIn authenticates against the student-management backend and
// establishes a local session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  conflictResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	started := time.Now()
	sid := h.sessionID(c)
	store := h.stores.ForID(sid)

	res, err := h.sessions.SignIn(c.Request().Context(), store, domain.SignInInput{
		Username: req.Username,
		Password: req.Password,
		Force:    req.Force,
	})
	metrics.SignInDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(signInResult(err)).Inc()
		return err
	}

	switch {
	case res.MFARequired:
		metrics.SignInsTotal.WithLabelValues("mfa").Inc()
		return c.JSON(http.StatusOK, mfaResponse{
			MFARequired:    true,
			Username:       res.Username,
			TemporaryToken: res.TemporaryToken,
		})
	case res.AlreadyLoggedIn:
		metrics.SignInsTotal.WithLabelValues("conflict").Inc()
		return c.JSON(http.StatusConflict, conflictResponse{AlreadyLoggedIn: true})
	}

	metrics.SignInsTotal.WithLabelValues("success").Inc()
	h.setCookie(c, sid, h.cookieTTL)
	return c.JSON(http.StatusOK, sessionResponse{User: res.Session})
}

// SignOut clears the session. The backend notification is fire-and-forget;
// this endpoint always succeeds.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		h.sessions.SignOut(c.Request().Context(), h.stores.ForID(cookie.Value))
	}
	h.setCookie(c, "", -time.Hour)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the current session, or 401 when none is live.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	cookie, err := c.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		return domain.ErrNoSession
	}

	sess := h.sessions.Current(c.Request().Context(), h.stores.ForID(cookie.Value))
	if sess == nil {
		return domain.ErrNoSession
	}
	return c.JSON(http.StatusOK, sessionResponse{User: sess})
}

// sessionID reuses an existing cookie so a re-login lands on the same
// storage key, or mints a fresh ID.
func (h *AuthHandler) sessionID(c echo.Context) string {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return uuid.NewString()
}

func (h *AuthHandler) setCookie(c echo.Context, value string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func signInResult(err error) string {
	switch err {
	case domain.ErrInvalidCredentials:
		return "invalid"
	default:
		return "error"
	}
}
