package client

import (
	"fmt"
	"net/http"
	"sync"

	"portfolio/internal/models"
)

// ProjectStore is an in-memory mirror of the server's project
// collection. The mirror matches the server after each completed
// mutation, best effort: concurrent clients can still observe stale
// data until the next Fetch.
type ProjectStore struct {
	client  *Client
	session *Session

	mu       sync.RWMutex
	projects []models.Project
}

// NewProjectStore creates a ProjectStore bound to an authenticated
// session.
func NewProjectStore(client *Client, session *Session) *ProjectStore {
	return &ProjectStore{
		client:  client,
		session: session,
	}
}

// Projects returns a copy of the mirrored collection.
func (p *ProjectStore) Projects() []models.Project {
	p.mu.RLock()
	defer p.mu.RUnlock()
	projects := make([]models.Project, len(p.projects))
	copy(projects, p.projects)
	return projects
}

// Fetch refreshes the mirror from the server.
func (p *ProjectStore) Fetch() error {
	var projects []models.Project
	status, err := p.client.doJSON(http.MethodGet, "/api/projects", p.session.CurrentToken(), nil, &projects)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("failed to fetch projects: status %d", status)
	}

	p.mu.Lock()
	p.projects = projects
	p.mu.Unlock()
	return nil
}

// GetByID fetches a single project from the server.
func (p *ProjectStore) GetByID(id string) (*models.Project, error) {
	var project models.Project
	status, err := p.client.doJSON(http.MethodGet, "/api/projects/"+id, p.session.CurrentToken(), nil, &project)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("project with ID %s not found", id)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch project %s: status %d", id, status)
	}
	return &project, nil
}

// Create sends a new project to the server and appends the created
// record (with its server-assigned ID) to the mirror.
func (p *ProjectStore) Create(project models.Project) (*models.Project, error) {
	var created models.Project
	status, err := p.client.doJSON(http.MethodPost, "/api/projects", p.session.CurrentToken(), project, &created)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("failed to create project: status %d", status)
	}

	p.mu.Lock()
	p.projects = append(p.projects, created)
	p.mu.Unlock()
	return &created, nil
}

// Update sends a partial update and replaces the mirrored record with
// the server's merged result.
func (p *ProjectStore) Update(id string, update models.ProjectUpdate) (*models.Project, error) {
	var updated models.Project
	status, err := p.client.doJSON(http.MethodPut, "/api/projects/"+id, p.session.CurrentToken(), update, &updated)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("project with ID %s not found", id)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("failed to update project %s: status %d", id, status)
	}

	p.mu.Lock()
	for i := range p.projects {
		if p.projects[i].ID == id {
			p.projects[i] = updated
			break
		}
	}
	p.mu.Unlock()
	return &updated, nil
}

// Delete removes the project on the server and filters it out of the
// mirror.
func (p *ProjectStore) Delete(id string) error {
	status, err := p.client.doJSON(http.MethodDelete, "/api/projects/"+id, p.session.CurrentToken(), nil, nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("project with ID %s not found", id)
	}
	if status != http.StatusOK {
		return fmt.Errorf("failed to delete project %s: status %d", id, status)
	}

	p.mu.Lock()
	remaining := p.projects[:0]
	for _, project := range p.projects {
		if project.ID != id {
			remaining = append(remaining, project)
		}
	}
	p.projects = remaining
	p.mu.Unlock()
	return nil
}
