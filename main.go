package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio/internal/handlers"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/repositories"
	"portfolio/internal/services"
	"portfolio/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	// Viper reads from environment variables with these defaults.
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("STORAGE_DRIVER", "json") // json | sqlite | postgres
	viper.SetDefault("DB_PATH", "db.json")
	viper.SetDefault("DATABASE_DSN", "portfolio.db")
	viper.SetDefault("JWT_SECRET", "dev_secret_change_me")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables the broker
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize RabbitMQ Client (optional) ---
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set; project events will not be published")
	}

	app, err := newApp(mqClient)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Listens for project mutation events. Currently an audit log; a
	// consumer doing real work (cache invalidation, notifications)
	// would replace the handler.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for project events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received project event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeProjectEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// newApp wires repositories, services, and handlers into a Fiber app
// according to the viper configuration. The broker client may be nil.
func newApp(mqClient *rabbitmq.Client) (*fiber.App, error) {
	userRepo, projectRepo, err := openRepositories()
	if err != nil {
		return nil, err
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	projectService := services.NewProjectService(projectRepo, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	api := app.Group("/api")

	// Authentication routes (public)
	authHandler.RegisterRoutes(api)

	// Protected routes. Every project route requires a session,
	// including the GETs.
	protected := api.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterRoutes(protected)
	projectHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, nil
}

// openRepositories selects the storage backend from STORAGE_DRIVER.
func openRepositories() (repositories.UserRepository, repositories.ProjectRepository, error) {
	driver := viper.GetString("STORAGE_DRIVER")
	switch driver {
	case "json":
		store, err := repositories.NewJSONStore(viper.GetString("DB_PATH"))
		if err != nil {
			return nil, nil, err
		}
		return store.Users(), store.Projects(), nil

	case "sqlite":
		db, err := gorm.Open(sqlite.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return gormRepositories(db)

	case "postgres":
		db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return gormRepositories(db)

	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q (expected json, sqlite or postgres)", driver)
	}
}

func gormRepositories(db *gorm.DB) (repositories.UserRepository, repositories.ProjectRepository, error) {
	if err := db.AutoMigrate(&models.User{}, &models.Project{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repositories.NewGORMUserRepository(db), repositories.NewGORMProjectRepository(db), nil
}
