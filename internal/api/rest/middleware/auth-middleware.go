package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/qualiflow/document_service/internal/dto"
	"github.com/qualiflow/document_service/internal/helper"
)

const principalKey = "principal"

// AuthMiddleware resolves the request principal from the access token and
// rejects requests without one before any handler can append anything.
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		principal, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals(principalKey, principal)
		return ctx.Next()
	}
}

// PrincipalFrom returns the resolved principal, or a zero principal when the
// route is outside the auth middleware.
func PrincipalFrom(ctx *fiber.Ctx) dto.Principal {
	if p, ok := ctx.Locals(principalKey).(dto.Principal); ok {
		return p
	}
	return dto.Principal{}
}
