package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openshelf/locallibrary/models"
	"github.com/openshelf/locallibrary/service"
	"github.com/openshelf/locallibrary/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogHandler serves the read-only catalog pages: the summary dashboard
// and the entity lists and details.
type CatalogHandler struct {
	Store store.Catalog
	Agg   *service.AggregationService
}

// Summary serves the dashboard counts. GET /catalog/summary
func (h *CatalogHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Agg.Summarize(r.Context())
	if err != nil {
		http.Error(w, `{"error":"failed to load summary"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sum)
}

func (h *CatalogHandler) BookList(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.AllBooks(r.Context())
	if err != nil {
		http.Error(w, `{"error":"failed to list books"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(books)
}

// BookDetailResponse is a book plus its physical copies.
type BookDetailResponse struct {
	Book      models.Book           `json:"book"`
	Instances []models.BookInstance `json:"instances"`
	URL       string                `json:"url"`
}

// BookDetail serves a book and the instances referencing it. GET /catalog/book/{id}
func (h *CatalogHandler) BookDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	book, err := h.Store.BookByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"book not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"failed to load book"}`, http.StatusInternalServerError)
		return
	}
	instances, err := h.Store.InstancesForBook(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"failed to load book instances"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BookDetailResponse{Book: *book, Instances: instances, URL: book.URL()})
}

func (h *CatalogHandler) AuthorList(w http.ResponseWriter, r *http.Request) {
	authors, err := h.Store.AllAuthors(r.Context())
	if err != nil {
		http.Error(w, `{"error":"failed to list authors"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authors)
}

// AuthorDetailResponse carries the author with the derived display strings.
type AuthorDetailResponse struct {
	models.Author
	Name     string `json:"name"`
	Lifespan string `json:"lifespan"`
	URL      string `json:"url"`
}

func (h *CatalogHandler) AuthorDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid author id"}`, http.StatusBadRequest)
		return
	}
	author, err := h.Store.AuthorByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"author not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"failed to load author"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AuthorDetailResponse{
		Author:   *author,
		Name:     author.Name(),
		Lifespan: author.Lifespan(),
		URL:      author.URL(),
	})
}

func (h *CatalogHandler) GenreList(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Store.AllGenres(r.Context())
	if err != nil {
		http.Error(w, `{"error":"failed to list genres"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(genres)
}

func (h *CatalogHandler) GenreDetail(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid genre id"}`, http.StatusBadRequest)
		return
	}
	genre, err := h.Store.GenreByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"genre not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"failed to load genre"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(genre)
}

// APIBookEntry is the flat projection served on the JSON API list.
type APIBookEntry struct {
	ID       primitive.ObjectID `json:"id"`
	Title    string             `json:"title"`
	AuthorID primitive.ObjectID `json:"authorId"`
	Price    string             `json:"price"`
	URL      string             `json:"url"`
}

// APIBooks serves the flat book list. GET /api/books
func (h *CatalogHandler) APIBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.AllBooks(r.Context())
	if err != nil {
		http.Error(w, `{"error":"failed to list books"}`, http.StatusInternalServerError)
		return
	}
	entries := make([]APIBookEntry, 0, len(books))
	for i := range books {
		b := &books[i]
		entries = append(entries, APIBookEntry{
			ID:       b.ID,
			Title:    b.Title,
			AuthorID: b.AuthorID,
			Price:    b.Price,
			URL:      b.URL(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
