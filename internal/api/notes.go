package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"stackpad/backend/internal/auth"
	"stackpad/backend/internal/notes"
)

// NotesHandlers bundles the sample resource endpoints.
type NotesHandlers struct {
	svc *notes.Service
}

// NewNotesHandlers creates the handlers over the injected service.
func NewNotesHandlers(svc *notes.Service) *NotesHandlers {
	return &NotesHandlers{svc: svc}
}

func (h *NotesHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list notes")
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h *NotesHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid note id")
			return
		}

		note, err := h.svc.Get(r.Context(), uint(id))
		if errors.Is(err, notes.ErrNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load note")
			return
		}
		writeJSON(w, http.StatusOK, note)
	}
}

type createNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *NotesHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}

		note := &notes.Note{Title: req.Title, Body: req.Body}
		if err := h.svc.Create(r.Context(), note); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create note")
			return
		}
		writeJSON(w, http.StatusCreated, note)
	}
}

func (h *NotesHandlers) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid note id")
			return
		}

		err = h.svc.Delete(r.Context(), uint(id))
		if errors.Is(err, notes.ErrNotFound) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to delete note")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type tokenRequest struct {
	Subject string `json:"subject"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// TokenHandler mints a dev token for the sample API's write endpoints.
func TokenHandler(secret string, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Subject == "" {
			writeError(w, http.StatusBadRequest, "subject is required")
			return
		}

		token, err := auth.Mint(secret, req.Subject, ttl)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to mint token")
			return
		}
		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}
