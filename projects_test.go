package sdk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestProjectsList(t *testing.T) {
	projectID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/" || r.Method != http.MethodGet {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
		  "data": [{
		    "id": "` + projectID.String() + `",
		    "name": "Grotte de la Malatiere",
		    "description": "Survey 2025",
		    "country": "FR",
		    "permission": "ADMIN",
		    "creation_date": "2025-01-15T10:30:00Z",
		    "modified_date": "2025-06-01T08:00:00Z",
		    "active_mutex": null
		  }]
		}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, AuthToken: "tok"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	projects, err := client.Projects.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}
	p := projects[0]
	if p.ID != projectID {
		t.Errorf("id = %s, want %s", p.ID, projectID)
	}
	if p.Name != "Grotte de la Malatiere" {
		t.Errorf("unexpected name %q", p.Name)
	}
	if p.ActiveMutex != nil {
		t.Errorf("expected nil mutex, got %+v", p.ActiveMutex)
	}
}

func TestProjectsAcquireLock(t *testing.T) {
	projectID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := "/projects/" + projectID.String() + "/acquire/"
		if r.URL.Path != want || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
		  "data": {
		    "id": "` + projectID.String() + `",
		    "name": "Grotte de la Malatiere",
		    "active_mutex": {
		      "user": "surveyor@example.org",
		      "creation_date": "2025-06-01T08:00:00Z",
		      "modified_date": "2025-06-01T08:00:00Z"
		    }
		  }
		}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, AuthToken: "tok"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	p, err := client.Projects.AcquireLock(context.Background(), projectID)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	if p.ActiveMutex == nil {
		t.Fatal("expected mutex on acquired project")
	}
	if p.ActiveMutex.User != "surveyor@example.org" {
		t.Errorf("unexpected mutex holder %q", p.ActiveMutex.User)
	}
}

func TestProjectsAcquireLockConflict(t *testing.T) {
	projectID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail": "project is locked by another user"}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, AuthToken: "tok"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	_, err = client.Projects.AcquireLock(context.Background(), projectID)
	if !IsLocked(err) {
		t.Fatalf("expected lock conflict, got %v", err)
	}
}

func TestProjectsReleaseLock(t *testing.T) {
	projectID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := "/projects/" + projectID.String() + "/release/"
		if r.URL.Path != want || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"id": "` + projectID.String() + `", "active_mutex": null}}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, AuthToken: "tok"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	p, err := client.Projects.ReleaseLock(context.Background(), projectID)
	if err != nil {
		t.Fatalf("ReleaseLock failed: %v", err)
	}
	if p.ActiveMutex != nil {
		t.Errorf("expected nil mutex after release, got %+v", p.ActiveMutex)
	}
}

func TestProjectsCreateRequiresName(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "https://example.com", AuthToken: "tok"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if _, err := client.Projects.Create(context.Background(), ProjectCreateRequest{}); err == nil {
		t.Fatal("expected error for missing name")
	}
}
