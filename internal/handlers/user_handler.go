package handlers

import (
	"log"

	"portfolio/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the current-user endpoint.
type UserHandler struct {
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/user", h.HandleGetCurrentUser)
}

// HandleGetCurrentUser returns the user behind the validated session.
func (h *UserHandler) HandleGetCurrentUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User not authenticated",
		})
	}

	user, err := h.authService.CurrentUser(userID)
	if err != nil {
		log.Printf("Error resolving current user %s: %v", userID, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "User not authenticated",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user.Public(),
		"message": "User information retrieved successfully",
	})
}
