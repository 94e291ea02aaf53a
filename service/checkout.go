package service

import (
	"context"
	"errors"

	"github.com/openshelf/locallibrary/models"
	"github.com/openshelf/locallibrary/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// CheckoutService prepares the checkout page for a book and submits sale
// transactions to the payment gateway.
type CheckoutService struct {
	store   store.Catalog
	gateway PaymentGateway
}

func NewCheckoutService(st store.Catalog, gw PaymentGateway) *CheckoutService {
	return &CheckoutService{store: st, gateway: gw}
}

// CheckoutPage is everything the checkout form needs: the book with author
// and genres resolved, its physical copies, and a client token authorizing
// the browser-side payment form.
type CheckoutPage struct {
	Book        models.BookDetail     `json:"book"`
	Instances   []models.BookInstance `json:"instances"`
	ClientToken string                `json:"clientToken"`
}

// BeginCheckout fetches the book and its instances concurrently, then asks
// the gateway for a client token. Returns store.ErrNotFound without touching
// the gateway when the book is absent; a token failure is a *GatewayError,
// since the page must never render without a valid token.
func (s *CheckoutService) BeginCheckout(ctx context.Context, bookID primitive.ObjectID) (*CheckoutPage, error) {
	eg, gctx := errgroup.WithContext(ctx)
	var detail *models.BookDetail
	var instances []models.BookInstance

	eg.Go(func() error {
		d, err := s.bookDetail(gctx, bookID)
		detail = d
		return err
	})
	eg.Go(func() error {
		insts, err := s.store.InstancesForBook(gctx, bookID)
		instances = insts
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	token, err := s.gateway.GenerateClientToken(ctx)
	if err != nil {
		return nil, &GatewayError{Op: "generate client token", Err: err}
	}
	return &CheckoutPage{Book: *detail, Instances: instances, ClientToken: token}, nil
}

// bookDetail loads a book and resolves its author and genre references with
// follow-up lookups. A dangling author or genre reference is skipped rather
// than failing the whole read.
func (s *CheckoutService) bookDetail(ctx context.Context, id primitive.ObjectID) (*models.BookDetail, error) {
	book, err := s.store.BookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &models.BookDetail{Book: *book}
	if !book.AuthorID.IsZero() {
		author, err := s.store.AuthorByID(ctx, book.AuthorID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		detail.Author = author
	}
	for _, gid := range book.GenreIDs {
		genre, err := s.store.GenreByID(ctx, gid)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		detail.Genres = append(detail.Genres, *genre)
	}
	return detail, nil
}

// PaymentRequest carries the caller-supplied sale fields. Amount is taken as
// given and not cross-checked against the book's recorded price; see the
// design notes.
type PaymentRequest struct {
	Amount    string
	Nonce     string
	FirstName string
	LastName  string
	Email     string
}

// SubmitPayment submits a sale (with settlement requested in the same call)
// and classifies the gateway's response into exactly one Outcome.
//
// A transport-level gateway fault is returned as a *GatewayError, never
// converted into a Failure outcome: masking an unreachable gateway as a
// declined payment would mislead the buyer. An unsuccessful result without a
// transaction record degrades to a generic Failure outcome built from the
// gateway's structured errors.
func (s *CheckoutService) SubmitPayment(ctx context.Context, req PaymentRequest) (Outcome, error) {
	result, err := s.gateway.Sale(ctx, SaleRequest{
		Amount:              req.Amount,
		PaymentMethodNonce:  req.Nonce,
		SubmitForSettlement: true,
		Customer: Customer{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
		},
	})
	if err != nil {
		return Outcome{}, &GatewayError{Op: "sale", Err: err}
	}
	if result.Transaction == nil {
		msg := FormatGatewayErrors(result.Errors)
		if msg == "" {
			msg = "The sale was not processed."
		}
		return failureOutcome(msg), nil
	}
	return ClassifyTransaction(result.Transaction.Status, result.Errors), nil
}
