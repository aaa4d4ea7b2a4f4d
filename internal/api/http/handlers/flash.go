package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/flash"
)

// FlashResponder attaches one pending flash to a redirect and hands it out
// on the next page load.
type FlashResponder struct {
	store      flash.Store
	cookieName string
	ttl        time.Duration
	secure     bool
	logger     *zap.Logger
}

// NewFlashResponder builds the responder.
func NewFlashResponder(store flash.Store, cookieName string, ttl time.Duration, secure bool, logger *zap.Logger) *FlashResponder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlashResponder{store: store, cookieName: cookieName, ttl: ttl, secure: secure, logger: logger}
}

// Redirect stores msg and sends a 302 to location. A store failure drops the
// flash but still redirects.
func (f *FlashResponder) Redirect(c *fiber.Ctx, location string, msg domain.Flash) error {
	id, err := f.store.Put(c.UserContext(), msg)
	if err != nil {
		f.logger.Warn("store flash", zap.String("category", string(msg.Category)), zap.Error(err))
		return c.Redirect(location, fiber.StatusFound)
	}
	c.Cookie(&fiber.Cookie{
		Name:     f.cookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(f.ttl),
		HTTPOnly: true,
		Secure:   f.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(location, fiber.StatusFound)
}

// Pop returns the pending flash, if any, and forgets it.
func (f *FlashResponder) Pop(c *fiber.Ctx) *domain.Flash {
	id := c.Cookies(f.cookieName)
	if id == "" {
		return nil
	}
	c.ClearCookie(f.cookieName)
	msg, err := f.store.Take(c.UserContext(), id)
	if err != nil {
		f.logger.Warn("read flash", zap.Error(err))
		return nil
	}
	return msg
}
