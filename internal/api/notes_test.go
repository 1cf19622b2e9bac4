package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stackpad/backend/internal/cache"
	"stackpad/backend/internal/notes"
)

func setupNotesRouter(t *testing.T) http.Handler {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&notes.Note{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	svc := notes.NewService(notes.NewRepository(db), cache.NewMemoryStore(time.Minute, time.Minute))
	h := NewNotesHandlers(svc)

	r := chi.NewRouter()
	r.Get("/api/notes", h.List())
	r.Get("/api/notes/{id}", h.Get())
	r.Post("/api/notes", h.Create())
	r.Delete("/api/notes/{id}", h.Delete())
	return r
}

func TestNotesHandlers_CreateAndList(t *testing.T) {
	router := setupNotesRouter(t)

	body, _ := json.Marshal(map[string]string{"title": "hello", "body": "world"})
	req := httptest.NewRequest("POST", "/api/notes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "/api/notes", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var listed []notes.Note
	if err := json.NewDecoder(rr.Body).Decode(&listed); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "hello" {
		t.Errorf("Unexpected list result: %+v", listed)
	}
}

func TestNotesHandlers_CreateValidation(t *testing.T) {
	router := setupNotesRouter(t)

	body, _ := json.Marshal(map[string]string{"body": "no title"})
	req := httptest.NewRequest("POST", "/api/notes", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestNotesHandlers_GetMissing(t *testing.T) {
	router := setupNotesRouter(t)

	req := httptest.NewRequest("GET", "/api/notes/42", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestNotesHandlers_Delete(t *testing.T) {
	router := setupNotesRouter(t)

	body, _ := json.Marshal(map[string]string{"title": "doomed"})
	req := httptest.NewRequest("POST", "/api/notes", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}
	var created notes.Note
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	path := fmt.Sprintf("/api/notes/%d", created.ID)

	req = httptest.NewRequest("DELETE", path, nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rr.Code)
	}

	req = httptest.NewRequest("DELETE", path, nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 on second delete, got %d", rr.Code)
	}
}
