package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openshelf/locallibrary/models"
	"github.com/openshelf/locallibrary/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GenresHandler struct {
	Store store.Catalog
}

type GenreRequest struct {
	Name string `json:"name"`
}

var genreFieldRules = []FieldRule{
	{Field: "name", Valid: NotEmpty, Message: "Genre name required"},
}

// Create inserts a new genre. POST /catalog/genres
func (h *GenresHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if errs := ValidateFields(map[string]string{"name": req.Name}, genreFieldRules); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	genre := &models.Genre{Name: req.Name}
	id, err := h.Store.InsertGenre(r.Context(), genre)
	if err != nil {
		http.Error(w, `{"error":"failed to create genre"}`, http.StatusInternalServerError)
		return
	}
	genre.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", genre.URL())
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(genre)
}

// Update replaces the genre's fields while keeping its id. PUT /catalog/genre/{id}
func (h *GenresHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid genre id"}`, http.StatusBadRequest)
		return
	}
	var req GenreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if errs := ValidateFields(map[string]string{"name": req.Name}, genreFieldRules); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	genre := &models.Genre{Name: req.Name}
	if err := h.Store.ReplaceGenre(r.Context(), id, genre); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"genre not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"failed to update genre"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(genre)
}
