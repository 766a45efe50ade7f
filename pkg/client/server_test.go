package client_test

import (
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"portfolio/internal/handlers"
	"portfolio/internal/middleware"
	"portfolio/internal/repositories"
	"portfolio/internal/services"
	"portfolio/pkg/client"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// startServer boots the real API over a JSON file store on a loopback
// listener and returns a transport pointed at it. The SDK is exercised
// end to end, not against stubs.
func startServer(t *testing.T) *client.Client {
	t.Helper()

	store, err := repositories.NewJSONStore(filepath.Join(t.TempDir(), "db.json"))
	assert.NoError(t, err)

	authService := services.NewAuthService(store.Users(), "client_test_secret")
	projectService := services.NewProjectService(store.Projects(), nil)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api)
	protected := api.Group("", middleware.AuthRequired(authService))
	handlers.NewUserHandler(authService).RegisterRoutes(protected)
	handlers.NewProjectHandler(projectService).RegisterRoutes(protected)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	go func() {
		if listenErr := app.Listener(ln); listenErr != nil {
			t.Logf("test server stopped: %v", listenErr)
		}
	}()
	t.Cleanup(func() {
		if shutdownErr := app.Shutdown(); shutdownErr != nil {
			t.Logf("test server shutdown: %v", shutdownErr)
		}
	})

	baseURL := fmt.Sprintf("http://%s", ln.Addr().String())
	waitForServer(t, baseURL)
	return client.New(baseURL)
}

func waitForServer(t *testing.T, baseURL string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("test server did not become ready")
}

// newCredentialStore returns a file-backed store in a test-owned dir.
func newCredentialStore(t *testing.T) *client.FileCredentialStore {
	t.Helper()
	return client.NewFileCredentialStore(filepath.Join(t.TempDir(), "credentials.json"))
}
