package service

import (
	"context"

	"github.com/openshelf/locallibrary/models"
	"github.com/openshelf/locallibrary/store"
	"golang.org/x/sync/errgroup"
)

// Summary is the dashboard record of catalog counts. Each count is an
// independent snapshot of its own query; nothing ties them together.
type Summary struct {
	BookCount              int64 `json:"bookCount"`
	BookInstanceCount      int64 `json:"bookInstanceCount"`
	AvailableInstanceCount int64 `json:"availableInstanceCount"`
	AuthorCount            int64 `json:"authorCount"`
	GenreCount             int64 `json:"genreCount"`
}

// AggregationService computes catalog summary counts.
type AggregationService struct {
	store store.Catalog
}

func NewAggregationService(st store.Catalog) *AggregationService {
	return &AggregationService{store: st}
}

// Summarize runs the five count queries concurrently and joins them.
// Fail-fast: the first error cancels the remaining queries and is returned;
// which error wins under simultaneous failure is unspecified. No partial
// result is ever returned.
func (s *AggregationService) Summarize(ctx context.Context) (*Summary, error) {
	g, ctx := errgroup.WithContext(ctx)
	var sum Summary

	g.Go(func() error {
		n, err := s.store.CountBooks(ctx)
		sum.BookCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountInstances(ctx)
		sum.BookInstanceCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountInstancesByStatus(ctx, models.StatusAvailable)
		sum.AvailableInstanceCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountAuthors(ctx)
		sum.AuthorCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.store.CountGenres(ctx)
		sum.GenreCount = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &sum, nil
}
