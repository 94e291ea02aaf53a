package store

import (
	"context"
	"errors"

	"github.com/openshelf/locallibrary/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when an id does not resolve to a stored entity.
var ErrNotFound = errors.New("not found")

// Catalog is the typed store contract consumed by the services. Each method
// touches a single entity kind; cross-kind joins (book + its instances,
// author resolution) are composed by the caller with multiple calls.
type Catalog interface {
	InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error)
	AllBooks(ctx context.Context) ([]models.Book, error)
	BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	ReplaceBook(ctx context.Context, id primitive.ObjectID, book *models.Book) error
	RemoveBook(ctx context.Context, id primitive.ObjectID) error
	CountBooks(ctx context.Context) (int64, error)

	InsertAuthor(ctx context.Context, author *models.Author) (primitive.ObjectID, error)
	AllAuthors(ctx context.Context) ([]models.Author, error)
	AuthorByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error)
	CountAuthors(ctx context.Context) (int64, error)

	InsertGenre(ctx context.Context, genre *models.Genre) (primitive.ObjectID, error)
	AllGenres(ctx context.Context) ([]models.Genre, error)
	GenreByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error)
	ReplaceGenre(ctx context.Context, id primitive.ObjectID, genre *models.Genre) error
	CountGenres(ctx context.Context) (int64, error)

	InsertInstance(ctx context.Context, inst *models.BookInstance) (primitive.ObjectID, error)
	AllInstances(ctx context.Context) ([]models.BookInstance, error)
	InstancesForBook(ctx context.Context, bookID primitive.ObjectID) ([]models.BookInstance, error)
	CountInstances(ctx context.Context) (int64, error)
	CountInstancesByStatus(ctx context.Context, status string) (int64, error)
}
