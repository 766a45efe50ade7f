package handlers

import (
	"fmt"
	"log"
	"strings"

	"portfolio/internal/models"
	"portfolio/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles HTTP requests for projects. Every route,
// including the GETs, is mounted behind the auth middleware.
type ProjectHandler struct {
	service  *services.ProjectService
	validate *validator.Validate
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the project routes with the Fiber app.
func (h *ProjectHandler) RegisterRoutes(router fiber.Router) {
	projectRoutes := router.Group("/projects")
	projectRoutes.Get("/", h.HandleGetProjects)
	projectRoutes.Get("/:id", h.HandleGetProjectByID)
	projectRoutes.Post("/", h.HandleCreateProject)
	projectRoutes.Put("/:id", h.HandleUpdateProject)
	projectRoutes.Delete("/:id", h.HandleDeleteProject)
}

// HandleGetProjects retrieves all projects.
func (h *ProjectHandler) HandleGetProjects(c *fiber.Ctx) error {
	projects, err := h.service.GetAllProjects()
	if err != nil {
		log.Printf("Error getting all projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve projects",
			"error":   err.Error(),
		})
	}
	return c.JSON(projects)
}

// HandleGetProjectByID retrieves a single project by its ID.
func (h *ProjectHandler) HandleGetProjectByID(c *fiber.Ctx) error {
	projectID := c.Params("id")
	if projectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Project ID is required",
		})
	}

	project, err := h.service.GetProjectByID(projectID)
	if err != nil {
		log.Printf("Error getting project by ID %s: %v", projectID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Project with ID %s not found", projectID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve project",
			"error":   err.Error(),
		})
	}
	return c.JSON(project)
}

// HandleCreateProject creates a new project with a server-assigned ID.
func (h *ProjectHandler) HandleCreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		log.Printf("Error parsing create project request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	project.ID = "" // The ID is assigned server-side, never taken from the body.

	if err := h.validate.Struct(project); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.service.CreateProject(&project); err != nil {
		log.Printf("Error creating project: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create project",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleUpdateProject shallow-merges the request body onto the stored
// project: fields present in the body overwrite, the rest are retained.
func (h *ProjectHandler) HandleUpdateProject(c *fiber.Ctx) error {
	projectID := c.Params("id")
	if projectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Project ID is required",
		})
	}

	var update models.ProjectUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing update project request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	project, err := h.service.UpdateProject(projectID, &update)
	if err != nil {
		log.Printf("Error updating project %s: %v", projectID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Project with ID %s not found", projectID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update project",
			"error":   err.Error(),
		})
	}

	return c.JSON(project)
}

// HandleDeleteProject deletes a project by its ID.
func (h *ProjectHandler) HandleDeleteProject(c *fiber.Ctx) error {
	projectID := c.Params("id")
	if projectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Project ID is required",
		})
	}

	if err := h.service.DeleteProject(projectID); err != nil {
		log.Printf("Error deleting project %s: %v", projectID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Project with ID %s not found", projectID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete project",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Project deleted successfully",
	})
}
