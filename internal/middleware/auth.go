// Package middleware contains HTTP middleware for the scoreboard API:
// session-token authentication and the admin gate for mutating routes.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/rowdycup/scoreboard/internal/config"
	"github.com/rowdycup/scoreboard/internal/models"
)

// SessionClaims is the payload of a session token issued by the login
// handler. Subject carries the user's UUID.
type SessionClaims struct {
	jwt.RegisteredClaims
	IsAdmin bool `json:"is_admin"`
}

// Auth returns middleware that validates the "Authorization: Bearer <token>"
// session token, loads the user, and stores userID/isAdmin in the request
// context for downstream handlers. The admin flag is re-read from the
// database so a revoked admin loses access immediately, not at token expiry.
func Auth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SessionSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session token",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.Subject).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unknown user",
			})
		}

		c.Locals("userID", user.ID.String())
		c.Locals("isAdmin", user.IsAdmin)
		c.Locals("needsPasswordChange", user.NeedsPasswordChange)
		return c.Next()
	}
}
