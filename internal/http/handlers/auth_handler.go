package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"maktaba/internal/auth"
	applog "maktaba/internal/log"
	"maktaba/internal/session"
)

type AuthHandler struct {
	Auth     *auth.Service
	Sessions *session.Store
}

const tokenCookie = "access_token"

// POST /auth/login — begin-session. With a provider configured this
// redirects out to the account picker; otherwise the mock identity settles
// the session synchronously.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	redirectTo := c.BaseURL() + "/auth/callback"
	if url, ok := h.Auth.BeginURL(redirectTo); ok {
		return c.Redirect(url)
	}
	applog.Info(c, "auth.login.mock", nil)
	h.Auth.MockLogin(c.Context(), sess)
	back := c.Get("Referer")
	if back == "" {
		back = "/"
	}
	return c.Redirect(back)
}

// GET /auth/callback — the provider returns the access token in the URL
// fragment; a tiny bounce page moves it into the query so the server can
// see it, then this handler settles the session.
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	token := c.Query("access_token")
	if token == "" {
		return c.Render("auth_callback", fiber.Map{})
	}
	sess := currentSession(c, h.Sessions)
	if err := h.Auth.CompleteSignIn(c.Context(), sess, token); err != nil {
		applog.Error(c, "auth.callback.fail", err, nil)
		return c.Redirect("/")
	}
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	applog.Audit(c, "auth.login.success", map[string]any{"user_id": sess.User().ID})
	return c.Redirect("/")
}

// POST /auth/logout — end-session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := currentSession(c, h.Sessions)
	h.Auth.EndSession(c.Context(), sess, c.Cookies(tokenCookie))
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}
