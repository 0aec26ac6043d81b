package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/failtrack/internal/domain"
	apperrors "github.com/spec-kit/failtrack/pkg/util"
)

// RequireRole ensures the operator has one of the allowed roles.
func RequireRole(allowed ...domain.OperatorRole) fiber.Handler {
	allowedSet := make(map[domain.OperatorRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		operator, ok := OperatorFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("operator required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[operator.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
