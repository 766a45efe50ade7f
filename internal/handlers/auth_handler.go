package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Nome  string `json:"nome" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=6"`
}

// HandleRegister handles new user registration. A session token is
// issued right away so the client starts authenticated.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Nome, email and senha are required",
			"errors":  validationMessages(err),
		})
	}

	user := models.User{Nome: req.Nome, Email: req.Email, Senha: req.Senha}
	if err := h.authService.RegisterUser(&user); err != nil {
		log.Printf("Error registering user: %v", err)
		if strings.Contains(err.Error(), "already registered") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "Email already registered",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not register user",
			"error":   err.Error(),
		})
	}

	token, err := h.authService.IssueToken(&user)
	if err != nil {
		log.Printf("Error issuing token after registration: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Could not issue session token",
			"error":   err.Error(),
		})
	}
	h.setSessionCookies(c, &user, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    user.Public(),
		"message": "User registered successfully",
		"token":   token,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// HandleLogin handles user login and issues a session token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Email and senha are required",
			"errors":  validationMessages(err),
		})
	}

	user, token, err := h.authService.LoginUser(req.Email, req.Senha)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}
	h.setSessionCookies(c, user, token)

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user.Public(),
		"message": "Login successful",
		"token":   token,
	})
}

// setSessionCookies mirrors the session into the token and identity
// cookies so browser clients can reach protected routes without
// resending the Authorization header.
func (h *AuthHandler) setSessionCookies(c *fiber.Ctx, user *models.User, token string) {
	expires := time.Now().Add(24 * time.Hour)
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	public := user.Public()
	serialized := fmt.Sprintf(`{"id":%q,"nome":%q,"email":%q}`, public.ID, public.Nome, public.Email)
	c.Cookie(&fiber.Cookie{
		Name:     middleware.UserCookie,
		Value:    serialized,
		Expires:  expires,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// validationMessages flattens validator errors into a field → message map.
func validationMessages(err error) map[string]string {
	errorMessages := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return errorMessages
}
