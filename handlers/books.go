package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openshelf/locallibrary/models"
	"github.com/openshelf/locallibrary/service"
	"github.com/openshelf/locallibrary/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BooksHandler owns book mutations: create, full-replace update, guarded
// delete, and the optional cover image.
type BooksHandler struct {
	Store  store.Catalog
	Guard  *service.DeletionGuard
	Covers *service.CoverService // nil when no bucket is configured
}

// BookRequest is the create/update payload. Genre holds hex genre ids.
type BookRequest struct {
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Summary string   `json:"summary"`
	ISBN    string   `json:"isbn"`
	Price   string   `json:"price"`
	Genre   []string `json:"genre"`
}

// bookFieldRules is evaluated up front on create and update.
var bookFieldRules = []FieldRule{
	{Field: "title", Valid: NotEmpty, Message: "Title must not be empty."},
	{Field: "author", Valid: NotEmpty, Message: "Author must not be empty."},
	{Field: "summary", Valid: NotEmpty, Message: "Summary must not be empty."},
	{Field: "isbn", Valid: NotEmpty, Message: "ISBN must not be empty"},
	{Field: "price", Valid: NotEmpty, Message: "Price must not be empty."},
}

func (req *BookRequest) fieldValues() map[string]string {
	return map[string]string{
		"title":   req.Title,
		"author":  req.Author,
		"summary": req.Summary,
		"isbn":    req.ISBN,
		"price":   req.Price,
	}
}

// toModel builds the Book from validated request fields.
func (req *BookRequest) toModel() (*models.Book, error) {
	authorID, err := primitive.ObjectIDFromHex(req.Author)
	if err != nil {
		return nil, errors.New("invalid author id")
	}
	book := &models.Book{
		Title:    req.Title,
		AuthorID: authorID,
		Summary:  req.Summary,
		ISBN:     req.ISBN,
		Price:    req.Price,
	}
	for _, g := range req.Genre {
		gid, err := primitive.ObjectIDFromHex(g)
		if err != nil {
			return nil, errors.New("invalid genre id")
		}
		book.GenreIDs = append(book.GenreIDs, gid)
	}
	return book, nil
}

// Create inserts a new book. POST /catalog/books
func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if errs := ValidateFields(req.fieldValues(), bookFieldRules); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	book, err := req.toModel()
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	id, err := h.Store.InsertBook(r.Context(), book)
	if err != nil {
		http.Error(w, `{"error":"failed to create book"}`, http.StatusInternalServerError)
		return
	}
	book.ID = id
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", book.URL())
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(book)
}

// Update replaces the full book document, preserving its id. PUT /catalog/book/{id}
func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if errs := ValidateFields(req.fieldValues(), bookFieldRules); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	book, err := req.toModel()
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	existing, err := h.Store.BookByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"book not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"failed to load book"}`, http.StatusInternalServerError)
		return
	}
	// The cover key is server-managed and hidden from clients; carry it
	// through the full-document replace so an update can't orphan the
	// stored cover.
	book.CoverS3Key = existing.CoverS3Key
	if err := h.Store.ReplaceBook(r.Context(), id, book); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"book not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"failed to update book"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(book)
}

// BlockedDeleteResponse is returned with 409 when instances still reference
// the book; the caller surfaces the dependents for resolution.
type BlockedDeleteResponse struct {
	Error         string                `json:"error"`
	Book          *models.Book          `json:"book"`
	BookInstances []models.BookInstance `json:"bookInstances"`
}

// Delete runs the guarded delete. POST /catalog/book/{id}/delete
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	result, err := h.Guard.DeleteBook(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"book not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"failed to delete book"}`, http.StatusInternalServerError)
		return
	}
	if !result.Deleted {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(BlockedDeleteResponse{
			Error:         "book has copies; resolve them first",
			Book:          result.Book,
			BookInstances: result.Dependents,
		})
		return
	}
	if h.Covers != nil && result.Book != nil && result.Book.CoverS3Key != "" {
		if err := h.Covers.Delete(r.Context(), result.Book.CoverS3Key); err != nil {
			log.Printf("delete book cover: %v", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"redirect": "/catalog/books"})
}

// Cover streams the book's stored cover image. GET /catalog/book/{id}/cover
func (h *BooksHandler) Cover(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	book, err := h.Store.BookByID(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"book not found"}`, http.StatusNotFound)
		return
	}
	if book.CoverS3Key == "" || h.Covers == nil {
		http.Error(w, `{"error":"no cover"}`, http.StatusNotFound)
		return
	}
	body, contentType, err := h.Covers.Get(r.Context(), book.CoverS3Key)
	if err != nil {
		http.Error(w, `{"error":"failed to load cover"}`, http.StatusInternalServerError)
		return
	}
	defer body.Close()
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	io.Copy(w, body)
}

// UploadCover stores a cover image for the book. PUT /catalog/book/{id}/cover
func (h *BooksHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	if h.Covers == nil {
		http.Error(w, `{"error":"cover storage not configured"}`, http.StatusServiceUnavailable)
		return
	}
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
	key, err := h.Covers.Upload(r.Context(), "cover.jpg", r.Body, r.Header.Get("Content-Type"))
	if err != nil {
		http.Error(w, `{"error":"failed to store cover"}`, http.StatusInternalServerError)
		return
	}
	old := book.CoverS3Key
	book.CoverS3Key = key
	if err := h.Store.ReplaceBook(r.Context(), id, book); err != nil {
		http.Error(w, `{"error":"failed to update book"}`, http.StatusInternalServerError)
		return
	}
	if old != "" {
		if err := h.Covers.Delete(r.Context(), old); err != nil {
			log.Printf("delete replaced cover: %v", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
