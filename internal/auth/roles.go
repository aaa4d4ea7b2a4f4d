package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	apperrors "github.com/spec-kit/tutor-helpdesk/pkg/util/errorutil"
)

// RequirePermission ensures the caller is authenticated with at least the
// given permission level.
func RequirePermission(min domain.PermissionLevel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := UserFromContext(c)
		if user == nil {
			return apperrors.NewUnauthorized("login required")
		}
		if user.Permission < min {
			return apperrors.NewForbidden("tutor permission required")
		}
		return c.Next()
	}
}
