package store

import (
	"context"
	"sort"
	"sync"

	"github.com/openshelf/locallibrary/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemory is a map-backed Catalog used in tests and local development.
// All methods are safe for concurrent use.
type InMemory struct {
	mu        sync.RWMutex
	books     map[primitive.ObjectID]models.Book
	authors   map[primitive.ObjectID]models.Author
	genres    map[primitive.ObjectID]models.Genre
	instances map[primitive.ObjectID]models.BookInstance
}

var _ Catalog = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{
		books:     make(map[primitive.ObjectID]models.Book),
		authors:   make(map[primitive.ObjectID]models.Author),
		genres:    make(map[primitive.ObjectID]models.Genre),
		instances: make(map[primitive.ObjectID]models.BookInstance),
	}
}

func (m *InMemory) InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if book.ID.IsZero() {
		book.ID = primitive.NewObjectID()
	}
	m.books[book.ID] = *book
	return book.ID, nil
}

func (m *InMemory) AllBooks(ctx context.Context) ([]models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	books := make([]models.Book, 0, len(m.books))
	for _, b := range m.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

func (m *InMemory) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *InMemory) ReplaceBook(ctx context.Context, id primitive.ObjectID, book *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return ErrNotFound
	}
	book.ID = id
	m.books[id] = *book
	return nil
}

func (m *InMemory) RemoveBook(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return ErrNotFound
	}
	delete(m.books, id)
	return nil
}

func (m *InMemory) CountBooks(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.books)), nil
}

func (m *InMemory) InsertAuthor(ctx context.Context, author *models.Author) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if author.ID.IsZero() {
		author.ID = primitive.NewObjectID()
	}
	m.authors[author.ID] = *author
	return author.ID, nil
}

func (m *InMemory) AllAuthors(ctx context.Context) ([]models.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	authors := make([]models.Author, 0, len(m.authors))
	for _, a := range m.authors {
		authors = append(authors, a)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].FamilyName < authors[j].FamilyName })
	return authors, nil
}

func (m *InMemory) AuthorByID(ctx context.Context, id primitive.ObjectID) (*models.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.authors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *InMemory) CountAuthors(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.authors)), nil
}

func (m *InMemory) InsertGenre(ctx context.Context, genre *models.Genre) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if genre.ID.IsZero() {
		genre.ID = primitive.NewObjectID()
	}
	m.genres[genre.ID] = *genre
	return genre.ID, nil
}

func (m *InMemory) AllGenres(ctx context.Context) ([]models.Genre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	genres := make([]models.Genre, 0, len(m.genres))
	for _, g := range m.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

func (m *InMemory) GenreByID(ctx context.Context, id primitive.ObjectID) (*models.Genre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.genres[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (m *InMemory) ReplaceGenre(ctx context.Context, id primitive.ObjectID, genre *models.Genre) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.genres[id]; !ok {
		return ErrNotFound
	}
	genre.ID = id
	m.genres[id] = *genre
	return nil
}

func (m *InMemory) CountGenres(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.genres)), nil
}

func (m *InMemory) InsertInstance(ctx context.Context, inst *models.BookInstance) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inst.ID.IsZero() {
		inst.ID = primitive.NewObjectID()
	}
	if inst.Status == "" {
		inst.Status = models.StatusMaintenance
	}
	m.instances[inst.ID] = *inst
	return inst.ID, nil
}

func (m *InMemory) AllInstances(ctx context.Context) ([]models.BookInstance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	insts := make([]models.BookInstance, 0, len(m.instances))
	for _, bi := range m.instances {
		insts = append(insts, bi)
	}
	sort.Slice(insts, func(i, j int) bool { return insts[i].Imprint < insts[j].Imprint })
	return insts, nil
}

func (m *InMemory) InstancesForBook(ctx context.Context, bookID primitive.ObjectID) ([]models.BookInstance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var insts []models.BookInstance
	for _, bi := range m.instances {
		if bi.BookID == bookID {
			insts = append(insts, bi)
		}
	}
	return insts, nil
}

func (m *InMemory) CountInstances(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.instances)), nil
}

func (m *InMemory) CountInstancesByStatus(ctx context.Context, status string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, bi := range m.instances {
		if bi.Status == status {
			n++
		}
	}
	return n, nil
}
