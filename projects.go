package sdk

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/openspeleo/speleodb-go/routes"
)

// Project describes one cave-survey project.
type Project struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Country      string    `json:"country"`
	Permission   string    `json:"permission"`
	CreationDate time.Time `json:"creation_date"`
	ModifiedDate time.Time `json:"modified_date"`
	// ActiveMutex is non-nil while someone holds the project's edit lock.
	ActiveMutex *ProjectMutex `json:"active_mutex"`
}

// ProjectMutex identifies the current holder of a project's edit lock.
type ProjectMutex struct {
	User         string    `json:"user"`
	CreationDate time.Time `json:"creation_date"`
	ModifiedDate time.Time `json:"modified_date"`
}

// ProjectCreateRequest carries the fields for a new project.
type ProjectCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Country     string `json:"country"`
}

// ProjectsClient manages projects and their edit locks.
type ProjectsClient struct {
	client *Client
}

func (c *ProjectsClient) ensureInitialized() error {
	if c == nil || c.client == nil {
		return fmt.Errorf("sdk: projects client not initialized")
	}
	return nil
}

// List returns every project visible to the authenticated user.
func (c *ProjectsClient) List(ctx context.Context) ([]Project, error) {
	if err := c.ensureInitialized(); err != nil {
		return nil, err
	}
	var payload struct {
		Data []Project `json:"data"`
	}
	if err := c.client.sendAndDecode(ctx, http.MethodGet, routes.Projects, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// Get retrieves a single project.
func (c *ProjectsClient) Get(ctx context.Context, projectID uuid.UUID) (Project, error) {
	if err := c.ensureInitialized(); err != nil {
		return Project{}, err
	}
	var payload struct {
		Data Project `json:"data"`
	}
	path := fmt.Sprintf(routes.Project, projectID)
	if err := c.client.sendAndDecode(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return Project{}, err
	}
	return payload.Data, nil
}

// Create registers a new project.
func (c *ProjectsClient) Create(ctx context.Context, req ProjectCreateRequest) (Project, error) {
	if err := c.ensureInitialized(); err != nil {
		return Project{}, err
	}
	if req.Name == "" {
		return Project{}, fmt.Errorf("sdk: project name is required")
	}
	var payload struct {
		Data Project `json:"data"`
	}
	if err := c.client.sendAndDecode(ctx, http.MethodPost, routes.Projects, req, &payload); err != nil {
		return Project{}, err
	}
	return payload.Data, nil
}

// AcquireLock takes the project's edit mutex so uploads are exclusive.
//
// Fails with HTTP 409 (see IsLocked) when another user holds the mutex.
func (c *ProjectsClient) AcquireLock(ctx context.Context, projectID uuid.UUID) (Project, error) {
	return c.postLock(ctx, projectID, routes.ProjectAcquire)
}

// ReleaseLock releases the project's edit mutex.
func (c *ProjectsClient) ReleaseLock(ctx context.Context, projectID uuid.UUID) (Project, error) {
	return c.postLock(ctx, projectID, routes.ProjectRelease)
}

func (c *ProjectsClient) postLock(ctx context.Context, projectID uuid.UUID, route string) (Project, error) {
	if err := c.ensureInitialized(); err != nil {
		return Project{}, err
	}
	var payload struct {
		Data Project `json:"data"`
	}
	path := fmt.Sprintf(route, projectID)
	if err := c.client.sendAndDecode(ctx, http.MethodPost, path, nil, &payload); err != nil {
		return Project{}, err
	}
	return payload.Data, nil
}
