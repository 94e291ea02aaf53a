package service

import (
	"context"
	"testing"

	"github.com/openshelf/locallibrary/models"
	"github.com/openshelf/locallibrary/store"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDeleteBookWithoutDependents(t *testing.T) {
	ctx := context.Background()
	st := store.NewInMemory()
	id, err := st.InsertBook(ctx, &models.Book{Title: "Unreferenced", Price: "5.00"})
	require.NoError(t, err)

	guard := NewDeletionGuard(st)
	result, err := guard.DeleteBook(ctx, id)
	require.NoError(t, err)
	require.True(t, result.Deleted)
	require.Empty(t, result.Dependents)

	_, err = st.BookByID(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteBookBlockedByDependents(t *testing.T) {
	ctx := context.Background()
	st := store.NewInMemory()
	id, err := st.InsertBook(ctx, &models.Book{Title: "Referenced", Price: "5.00"})
	require.NoError(t, err)
	for _, imprint := range []string{"First Edition", "Reprint", "Paperback"} {
		_, err := st.InsertInstance(ctx, &models.BookInstance{BookID: id, Imprint: imprint})
		require.NoError(t, err)
	}
	// A copy of another book must not block this delete.
	_, err = st.InsertInstance(ctx, &models.BookInstance{BookID: primitive.NewObjectID(), Imprint: "Other"})
	require.NoError(t, err)

	guard := NewDeletionGuard(st)
	result, err := guard.DeleteBook(ctx, id)
	require.NoError(t, err)
	require.False(t, result.Deleted)
	require.Len(t, result.Dependents, 3)
	require.Equal(t, "Referenced", result.Book.Title)

	// No mutation happened: the book is still retrievable.
	book, err := st.BookByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Referenced", book.Title)
}

func TestDeleteBookNotFound(t *testing.T) {
	guard := NewDeletionGuard(store.NewInMemory())

	_, err := guard.DeleteBook(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, store.ErrNotFound)
}
