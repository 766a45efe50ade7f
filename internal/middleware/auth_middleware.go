package middleware

import (
	"encoding/json"
	"log"
	"strings"

	"portfolio/internal/models"
	"portfolio/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Cookie names shared with browser clients. The token cookie is a
// fallback transport for the session token; the user cookie carries the
// serialized identity for downstream handlers.
const (
	TokenCookie = "portfolio_auth_token"
	UserCookie  = "portfolio_user"
)

// AuthRequired is a Fiber middleware that gates routes behind a valid
// session token. The Authorization header is checked first, then the
// token cookie. On success the token claims, and the identity cookie if
// present, are attached to the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if !(len(parts) == 2 && parts[0] == "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Authorization header format must be 'Bearer <token>'",
				})
			}
			tokenString = parts[1]
		} else if cookie := c.Cookies(TokenCookie); cookie != "" {
			tokenString = cookie
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication token is missing",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals("user_id", claims["user_id"])
		c.Locals("email", claims["email"])

		// Attach the identity cookie, when one accompanies the request.
		if userCookie := c.Cookies(UserCookie); userCookie != "" {
			var user models.PublicUser
			if err := json.Unmarshal([]byte(userCookie), &user); err == nil {
				c.Locals("user", user)
			}
		}

		// Continue to the next handler
		return c.Next()
	}
}
