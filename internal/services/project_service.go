package services

import (
	"encoding/json"
	"log"

	"portfolio/internal/models"
	"portfolio/internal/repositories"
	"portfolio/pkg/rabbitmq"
)

// ProjectService handles business logic related to projects.
type ProjectService struct {
	repo     repositories.ProjectRepository
	mqClient *rabbitmq.Client
}

// NewProjectService creates a new ProjectService. The broker client is
// optional; with a nil client mutation events are simply not published.
func NewProjectService(repo repositories.ProjectRepository, mqClient *rabbitmq.Client) *ProjectService {
	return &ProjectService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// GetAllProjects retrieves all projects.
func (s *ProjectService) GetAllProjects() ([]models.Project, error) {
	return s.repo.GetAll()
}

// GetProjectByID retrieves a single project by its ID.
func (s *ProjectService) GetProjectByID(id string) (*models.Project, error) {
	return s.repo.GetByID(id)
}

// CreateProject creates a new project. The ID is always assigned by the
// repository; anything the caller set is discarded.
func (s *ProjectService) CreateProject(project *models.Project) error {
	project.ID = ""
	if err := s.repo.Create(project); err != nil {
		return err
	}
	s.publishEvent("project.created", project)
	return nil
}

// UpdateProject shallow-merges the set fields of the update onto the
// stored project. Unset fields are retained and the ID cannot change.
func (s *ProjectService) UpdateProject(id string, update *models.ProjectUpdate) (*models.Project, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	update.Apply(project)
	if err := s.repo.Update(project); err != nil {
		return nil, err
	}
	s.publishEvent("project.updated", project)
	return project, nil
}

// DeleteProject deletes a project by its ID.
func (s *ProjectService) DeleteProject(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publishEvent("project.deleted", &models.Project{ID: id})
	return nil
}

// publishEvent emits a project mutation event to the broker. Publish
// failures are logged, never surfaced to the API caller.
func (s *ProjectService) publishEvent(routingKey string, project *models.Project) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event":     routingKey,
		"projectID": project.ID,
		"nome":      project.Nome,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish("", rabbitmq.ProjectQueue, body); err != nil {
		log.Printf("Warning: failed to publish %s event for project %s: %v", routingKey, project.ID, err)
		return
	}
	log.Printf("Published %s event for project %s", routingKey, project.ID)
}
