package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"portfolio/internal/models"

	"github.com/google/uuid"
)

// JSONStore persists the whole application state as a single JSON
// document on disk. Every operation loads the document, mutates an
// in-memory copy, and writes the whole document back. A single mutex
// serializes the read-modify-write cycles so two concurrent mutations
// cannot silently discard each other's write.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore opens (or creates) the document at path.
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.save(&models.Document{Users: []models.User{}, Projects: []models.Project{}}); err != nil {
			return nil, fmt.Errorf("failed to initialize store at %s: %w", path, err)
		}
	}
	// Verify the existing file parses before handing the store out.
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) load() (*models.Document, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store file %s: %w", s.path, err)
	}
	var doc models.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", s.path, err)
	}
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	return &doc, nil
}

func (s *JSONStore) save(doc *models.Document) error {
	// Pretty printed, matching the hand-editable format the file
	// started out with.
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store document: %w", err)
	}
	if err := os.WriteFile(s.path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write store file %s: %w", s.path, err)
	}
	return nil
}

// Users returns a UserRepository view over the store.
func (s *JSONStore) Users() UserRepository {
	return &jsonUserRepository{store: s}
}

// Projects returns a ProjectRepository view over the store.
func (s *JSONStore) Projects() ProjectRepository {
	return &jsonProjectRepository{store: s}
}

type jsonUserRepository struct {
	store *JSONStore
}

func (r *jsonUserRepository) Create(user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	doc.Users = append(doc.Users, *user)
	return r.store.save(doc)
}

func (r *jsonUserRepository) GetByEmail(email string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Users {
		if doc.Users[i].Email == email {
			user := doc.Users[i]
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found", email)
}

func (r *jsonUserRepository) GetByID(id string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			user := doc.Users[i]
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with ID %s not found", id)
}

type jsonProjectRepository struct {
	store *JSONStore
}

func (r *jsonProjectRepository) GetAll() ([]models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

func (r *jsonProjectRepository) GetByID(id string) (*models.Project, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Projects {
		if doc.Projects[i].ID == id {
			project := doc.Projects[i]
			return &project, nil
		}
	}
	return nil, fmt.Errorf("project with ID %s not found", id)
}

func (r *jsonProjectRepository) Create(project *models.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return err
	}
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	doc.Projects = append(doc.Projects, *project)
	return r.store.save(doc)
}

func (r *jsonProjectRepository) Update(project *models.Project) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return err
	}
	for i := range doc.Projects {
		if doc.Projects[i].ID == project.ID {
			doc.Projects[i] = *project
			return r.store.save(doc)
		}
	}
	return fmt.Errorf("project with ID %s not found for update", project.ID)
}

func (r *jsonProjectRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, err := r.store.load()
	if err != nil {
		return err
	}
	for i := range doc.Projects {
		if doc.Projects[i].ID == id {
			doc.Projects = append(doc.Projects[:i], doc.Projects[i+1:]...)
			return r.store.save(doc)
		}
	}
	return fmt.Errorf("project with ID %s not found for deletion", id)
}
