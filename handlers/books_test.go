package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/openshelf/locallibrary/models"
	"github.com/openshelf/locallibrary/service"
	"github.com/openshelf/locallibrary/store"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newBooksRouter(st store.Catalog) http.Handler {
	books := &BooksHandler{Store: st, Guard: service.NewDeletionGuard(st)}
	catalog := &CatalogHandler{Store: st, Agg: service.NewAggregationService(st)}
	r := chi.NewRouter()
	r.Get("/catalog/summary", catalog.Summary)
	r.Post("/catalog/books", books.Create)
	r.Get("/catalog/book/{id}", catalog.BookDetail)
	r.Put("/catalog/book/{id}", books.Update)
	r.Post("/catalog/book/{id}/delete", books.Delete)
	return r
}

func TestCreateBookValidation(t *testing.T) {
	router := newBooksRouter(store.NewInMemory())

	req := httptest.NewRequest(http.MethodPost, "/catalog/books", strings.NewReader(`{"title":"","author":"","summary":"","isbn":"","price":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	for _, msg := range []string{
		"Title must not be empty.",
		"Author must not be empty.",
		"Summary must not be empty.",
		"ISBN must not be empty",
		"Price must not be empty.",
	} {
		require.Contains(t, body, msg)
	}
}

func TestCreateAndFetchBook(t *testing.T) {
	st := store.NewInMemory()
	router := newBooksRouter(st)
	authorID := primitive.NewObjectID()

	payload := `{"title":"Dune","author":"` + authorID.Hex() + `","summary":"Desert planet","isbn":"9780441013593","price":"10.00"}`
	req := httptest.NewRequest(http.MethodPost, "/catalog/books", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/catalog/book/"), "Location %q", location)

	get := httptest.NewRequest(http.MethodGet, location, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, get)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Dune"`)
}

func TestUpdateBookKeepsStoredCover(t *testing.T) {
	st := store.NewInMemory()
	ctx := context.Background()
	bookID, err := st.InsertBook(ctx, &models.Book{
		Title:      "Dune",
		AuthorID:   primitive.NewObjectID(),
		Summary:    "Desert planet",
		ISBN:       "9780441013593",
		Price:      "10.00",
		CoverS3Key: "covers/abc.jpg",
	})
	require.NoError(t, err)
	router := newBooksRouter(st)

	payload := `{"title":"Dune Messiah","author":"` + primitive.NewObjectID().Hex() + `","summary":"The sequel","isbn":"9780441172696","price":"11.00"}`
	req := httptest.NewRequest(http.MethodPut, "/catalog/book/"+bookID.Hex(), strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	book, err := st.BookByID(ctx, bookID)
	require.NoError(t, err)
	require.Equal(t, "Dune Messiah", book.Title)
	require.Equal(t, "covers/abc.jpg", book.CoverS3Key, "full-document replace must not drop the cover")
}

func TestDeleteBookBlockedEndpoint(t *testing.T) {
	st := store.NewInMemory()
	ctx := context.Background()
	bookID, err := st.InsertBook(ctx, &models.Book{Title: "Referenced", Price: "5.00"})
	require.NoError(t, err)
	_, err = st.InsertInstance(ctx, &models.BookInstance{BookID: bookID, Imprint: "First Edition"})
	require.NoError(t, err)
	router := newBooksRouter(st)

	req := httptest.NewRequest(http.MethodPost, "/catalog/book/"+bookID.Hex()+"/delete", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), `"bookInstances"`)
	require.Contains(t, rec.Body.String(), "First Edition")

	// Book survived the blocked delete.
	book, err := st.BookByID(ctx, bookID)
	require.NoError(t, err)
	require.Equal(t, "Referenced", book.Title)
}

func TestDeleteBookEndpoint(t *testing.T) {
	st := store.NewInMemory()
	bookID, err := st.InsertBook(context.Background(), &models.Book{Title: "Unreferenced", Price: "5.00"})
	require.NoError(t, err)
	router := newBooksRouter(st)

	req := httptest.NewRequest(http.MethodPost, "/catalog/book/"+bookID.Hex()+"/delete", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"redirect":"/catalog/books"}`, rec.Body.String())

	_, err = st.BookByID(context.Background(), bookID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSummaryEndpoint(t *testing.T) {
	st := store.NewInMemory()
	ctx := context.Background()
	bookID, err := st.InsertBook(ctx, &models.Book{Title: "Dune", Price: "10.00"})
	require.NoError(t, err)
	_, err = st.InsertInstance(ctx, &models.BookInstance{BookID: bookID, Imprint: "Ace", Status: models.StatusAvailable})
	require.NoError(t, err)
	router := newBooksRouter(st)

	req := httptest.NewRequest(http.MethodGet, "/catalog/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"bookCount":1,"bookInstanceCount":1,"availableInstanceCount":1,"authorCount":0,"genreCount":0}`, rec.Body.String())
}
