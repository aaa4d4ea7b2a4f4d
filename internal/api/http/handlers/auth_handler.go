package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-helpdesk/internal/config"
	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/service"
	apperrors "github.com/spec-kit/tutor-helpdesk/pkg/util/errorutil"
)

// AuthHandler handles local login and logout.
type AuthHandler struct {
	auth    *service.AuthService
	flashes *FlashResponder
	cfg     config.AuthConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, flashes *FlashResponder, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{auth: authService, flashes: flashes, cfg: cfg}
}

// Login POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	values := formValues(c)
	_, token, expires, err := h.auth.Login(c.UserContext(), values["email"], values["password"])
	if err != nil {
		de := apperrors.ToDomainError(err)
		if de.Code != apperrors.CodeUnauthorized {
			return err
		}
		return h.flashes.Redirect(c, pathIndex, domain.Flash{Category: domain.FlashError, Message: de.Message})
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(pathIndex, fiber.StatusFound)
}

// Logout GET /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(h.cfg.CookieName)
	return c.Redirect(pathIndex, fiber.StatusFound)
}
