package middleware

import (
	common_models "go-events/internal/common/models"
	"go-events/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates JWT tokens and injects user claims into context
func AuthMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			// Inject dummy context for dev
			dummyClaims := &utils.UserClaims{
				UserID:      "dev-admin-id",
				DisplayName: "Dev Admin",
				TenantID:    "dev-tenant",
				EventID:     "dev-event",
				Roles:       []string{"admin"},
			}
			c.Locals(utils.UserClaimsKey, dummyClaims)
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		// Extract token from "Bearer <token>"
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		token := authHeader[7:]
		claims, err := utils.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(utils.UserClaimsKey, claims)
		return c.Next()
	}
}

// ScopeFrom extracts the tenant/event scope from the validated claims.
func ScopeFrom(c *fiber.Ctx) (common_models.Scope, bool) {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return common_models.Scope{}, false
	}
	scope := common_models.Scope{
		TenantID: claims.TenantID,
		EventID:  claims.EventID,
		UserID:   claims.UserID,
	}
	return scope, scope.Valid()
}

// DisplayNameFrom returns the caller's display identity for created_by fields.
func DisplayNameFrom(c *fiber.Ctx) string {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if !ok {
		return ""
	}
	if claims.DisplayName != "" {
		return claims.DisplayName
	}
	return claims.UserID
}
