package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/reclaimit/reclaimit/internal/imaging"
	"github.com/reclaimit/reclaimit/internal/store"
)

// List handles GET /api/items.
func (s *Server) List(w http.ResponseWriter, r *http.Request) {
	res := s.client(r).GetAllLostItems(r.Context())
	if !res.Success {
		slog.Error("failed to list items", "error", res.Error)
		jsonResponse(w, http.StatusInternalServerError, res)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// Create handles POST /api/items. The body is the report document: any
// fields the reporter wants to record.
func (s *Server) Create(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decodeJSON(r, &fields); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if fields["title"] == "" || fields["title"] == nil {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}

	client := s.client(r)
	res := client.AddLostItem(r.Context(), fields)
	if !res.Success {
		status := http.StatusInternalServerError
		if res.Error == "User not authenticated" {
			status = http.StatusUnauthorized
		}
		jsonResponse(w, status, res)
		return
	}

	slog.Info("lost item reported", "id", res.ID, "owner", client.Session.Current().Email)
	jsonResponse(w, http.StatusCreated, res)
}

// Get handles GET /api/items/{id}.
func (s *Server) Get(w http.ResponseWriter, r *http.Request) {
	res := s.client(r).GetLostItemByID(r.Context(), r.PathValue("id"))
	if !res.Success {
		jsonResponse(w, http.StatusNotFound, res)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// Update handles PUT /api/items/{id}. The named fields are merged into the
// report; unnamed fields are left alone.
func (s *Server) Update(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decodeJSON(r, &fields); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client := s.client(r)
	id := r.PathValue("id")
	res := client.UpdateLostItem(r.Context(), id, fields)
	if !res.Success {
		status := http.StatusInternalServerError
		if res.Error == store.ErrNoDocument.Error() {
			status = http.StatusNotFound
		}
		jsonResponse(w, status, res)
		return
	}

	jsonResponse(w, http.StatusOK, client.GetLostItemByID(r.Context(), id))
}

// Delete handles DELETE /api/items/{id}.
func (s *Server) Delete(w http.ResponseWriter, r *http.Request) {
	res := s.client(r).DeleteLostItem(r.Context(), r.PathValue("id"))
	if !res.Success {
		jsonResponse(w, http.StatusInternalServerError, res)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// UserItems handles GET /api/users/{uid}/items.
func (s *Server) UserItems(w http.ResponseWriter, r *http.Request) {
	res := s.client(r).GetUserLostItems(r.Context(), r.PathValue("uid"))
	if !res.Success {
		jsonResponse(w, http.StatusInternalServerError, res)
		return
	}
	jsonResponse(w, http.StatusOK, res)
}

// UploadPhoto handles PUT /api/items/{id}/photo.
func (s *Server) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("photo")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "photo file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read photo")
		return
	}

	processed, mime, err := imaging.Process(data)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	if err := store.SetLostItemPhoto(r.Context(), s.DB, id, processed, mime, stamp); err != nil {
		if err == store.ErrNoDocument {
			jsonError(w, http.StatusNotFound, "Lost item not found")
			return
		}
		slog.Error("failed to save photo", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save photo")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

// GetPhoto handles GET /api/items/{id}/photo.
func (s *Server) GetPhoto(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetLostItemPhoto(r.Context(), s.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get photo", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get photo")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
