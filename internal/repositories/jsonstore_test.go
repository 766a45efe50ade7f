package repositories_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"portfolio/internal/models"
	"portfolio/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) (*repositories.JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := repositories.NewJSONStore(path)
	assert.NoError(t, err)
	return store, path
}

func TestJSONStore_InitializesEmptyDocument(t *testing.T) {
	store, path := newTestStore(t)

	projects, err := store.Projects().GetAll()
	assert.NoError(t, err)
	assert.Empty(t, projects)

	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(content), `"users"`)
	assert.Contains(t, string(content), `"projects"`)
}

func TestJSONStore_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := repositories.NewJSONStore(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestJSONStore_ProjectCRUD(t *testing.T) {
	store, _ := newTestStore(t)
	repo := store.Projects()

	project := &models.Project{
		Nome:      "Site institucional",
		Descricao: "Site de cinco páginas",
		Preco:     1500.0,
		Tipo:      "Web",
		Categoria: "Institucional",
	}

	// Create assigns an id and persists.
	assert.NoError(t, repo.Create(project))
	assert.NotEmpty(t, project.ID)

	// Fetching by the returned id yields an equal record.
	fetched, err := repo.GetByID(project.ID)
	assert.NoError(t, err)
	assert.Equal(t, *project, *fetched)

	// Update replaces the stored record.
	fetched.Preco = 2000.0
	assert.NoError(t, repo.Update(fetched))
	refetched, err := repo.GetByID(project.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2000.0, refetched.Preco)
	assert.Equal(t, project.Nome, refetched.Nome)

	// Delete removes it.
	assert.NoError(t, repo.Delete(project.ID))
	_, err = repo.GetByID(project.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestJSONStore_NotFoundLeavesCollectionUnchanged(t *testing.T) {
	store, _ := newTestStore(t)
	repo := store.Projects()

	assert.NoError(t, repo.Create(&models.Project{Nome: "Landing page", Preco: 800.0, Tipo: "Web", Categoria: "Marketing"}))

	err := repo.Delete("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for deletion")

	err = repo.Update(&models.Project{ID: "nonexistent", Nome: "Ghost", Preco: 1.0, Tipo: "Web", Categoria: "None"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for update")

	projects, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestJSONStore_PersistsAcrossReopen(t *testing.T) {
	store, path := newTestStore(t)

	user := &models.User{Nome: "Test User", Email: "test@example.com", Senha: "hashed"}
	assert.NoError(t, store.Users().Create(user))
	project := &models.Project{Nome: "App de delivery", Preco: 5000.0, Tipo: "Mobile", Categoria: "E-commerce"}
	assert.NoError(t, store.Projects().Create(project))

	reopened, err := repositories.NewJSONStore(path)
	assert.NoError(t, err)

	fetchedUser, err := reopened.Users().GetByEmail("test@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, fetchedUser.ID)
	assert.Equal(t, "hashed", fetchedUser.Senha)

	fetchedProject, err := reopened.Projects().GetByID(project.ID)
	assert.NoError(t, err)
	assert.Equal(t, *project, *fetchedProject)
}

func TestJSONStore_ConcurrentCreatesDoNotLoseUpdates(t *testing.T) {
	store, _ := newTestStore(t)
	repo := store.Projects()

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			project := &models.Project{
				Nome:      fmt.Sprintf("Projeto %d", i),
				Preco:     float64(i + 1),
				Tipo:      "Web",
				Categoria: "Teste",
			}
			assert.NoError(t, repo.Create(project))
		}(i)
	}
	wg.Wait()

	// Every read-modify-write cycle is serialized, so no create may be
	// silently discarded by a concurrent one.
	projects, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, projects, writers)
}

func TestJSONStore_UserEmailLookup(t *testing.T) {
	store, _ := newTestStore(t)
	repo := store.Users()

	assert.NoError(t, repo.Create(&models.User{Nome: "A", Email: "a@example.com", Senha: "x"}))
	assert.NoError(t, repo.Create(&models.User{Nome: "B", Email: "b@example.com", Senha: "y"}))

	user, err := repo.GetByEmail("b@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "B", user.Nome)

	_, err = repo.GetByEmail("c@example.com")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
