package middleware

import (
	"errors"
	"strings"

	"stampcard/internal/core/domain"
	"stampcard/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the staff session token
const SessionCookie = "staff_session"

// SessionValidator resolves a staff session token to a role
type SessionValidator interface {
	Validate(token string) (domain.Role, error)
}

// StaffAuth requires a valid staff session from the cookie or a Bearer header
func StaffAuth(sessions SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Try to get token from cookie first
		token := c.Cookies(SessionCookie)

		// 2. If not in cookie, try Authorization header
		if token == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if token == "" {
			return response.Unauthorized(c, "Staff session required")
		}

		// 4. Validate token
		role, err := sessions.Validate(token)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return response.Unauthorized(c, "Staff session expired")
			}
			return response.Unauthorized(c, "Invalid staff session")
		}

		// 5. Set role in context
		c.Locals("role", role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// StaffOrAdmin middleware allows staff or admin roles
func StaffOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleStaff, domain.RoleAdmin)
}
