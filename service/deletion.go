package service

import (
	"context"

	"github.com/openshelf/locallibrary/models"
	"github.com/openshelf/locallibrary/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// DeletionGuard mediates Book removal: a book may only be deleted while no
// BookInstance references it.
type DeletionGuard struct {
	store store.Catalog
}

func NewDeletionGuard(st store.Catalog) *DeletionGuard {
	return &DeletionGuard{store: st}
}

// DeleteBookResult is the outcome of a guarded delete. Blocked deletion is a
// normal, reportable outcome, not an error: Dependents carries the full list
// of referencing instances for the caller to surface. Book is the fetched
// record, present in both outcomes.
type DeleteBookResult struct {
	Deleted    bool
	Book       *models.Book
	Dependents []models.BookInstance
}

// DeleteBook fetches the book and its referencing instances concurrently,
// then deletes only when no dependents exist. Returns store.ErrNotFound when
// the book id does not resolve.
//
// The check and the delete are two separate store calls: an instance created
// in between can leave a dangling reference. That race is inherited from the
// original behavior and intentionally not papered over with a lock.
func (g *DeletionGuard) DeleteBook(ctx context.Context, id primitive.ObjectID) (*DeleteBookResult, error) {
	eg, gctx := errgroup.WithContext(ctx)
	var book *models.Book
	var dependents []models.BookInstance

	eg.Go(func() error {
		b, err := g.store.BookByID(gctx, id)
		book = b
		return err
	})
	eg.Go(func() error {
		insts, err := g.store.InstancesForBook(gctx, id)
		dependents = insts
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if len(dependents) > 0 {
		return &DeleteBookResult{Deleted: false, Book: book, Dependents: dependents}, nil
	}
	if err := g.store.RemoveBook(ctx, id); err != nil {
		return nil, err
	}
	return &DeleteBookResult{Deleted: true, Book: book}, nil
}
