package service

import (
	"context"
	"errors"
	"testing"

	"github.com/openshelf/locallibrary/models"
	"github.com/openshelf/locallibrary/store"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubGateway counts calls and returns canned results.
type stubGateway struct {
	token    string
	tokenErr error

	saleResult *SaleResult
	saleErr    error
	lastSale   SaleRequest

	tokenCalls int
	saleCalls  int
}

func (g *stubGateway) GenerateClientToken(ctx context.Context) (string, error) {
	g.tokenCalls++
	return g.token, g.tokenErr
}

func (g *stubGateway) Sale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	g.saleCalls++
	g.lastSale = req
	return g.saleResult, g.saleErr
}

func seedCheckoutBook(t *testing.T, st *store.InMemory) primitive.ObjectID {
	t.Helper()
	ctx := context.Background()
	authorID, err := st.InsertAuthor(ctx, &models.Author{FirstName: "Frank", FamilyName: "Herbert"})
	require.NoError(t, err)
	genreID, err := st.InsertGenre(ctx, &models.Genre{Name: "Science Fiction"})
	require.NoError(t, err)
	bookID, err := st.InsertBook(ctx, &models.Book{
		Title:    "Dune",
		AuthorID: authorID,
		Summary:  "Desert planet",
		ISBN:     "9780441013593",
		Price:    "10.00",
		GenreIDs: []primitive.ObjectID{genreID},
	})
	require.NoError(t, err)
	_, err = st.InsertInstance(ctx, &models.BookInstance{BookID: bookID, Imprint: "Ace", Status: models.StatusAvailable})
	require.NoError(t, err)
	_, err = st.InsertInstance(ctx, &models.BookInstance{BookID: bookID, Imprint: "Gollancz"})
	require.NoError(t, err)
	return bookID
}

func TestBeginCheckout(t *testing.T) {
	st := store.NewInMemory()
	bookID := seedCheckoutBook(t, st)
	gw := &stubGateway{token: "client-token-abc"}
	svc := NewCheckoutService(st, gw)

	page, err := svc.BeginCheckout(context.Background(), bookID)
	require.NoError(t, err)
	require.Equal(t, "client-token-abc", page.ClientToken)
	require.Equal(t, "Dune", page.Book.Title)
	require.NotNil(t, page.Book.Author)
	require.Equal(t, "Herbert, Frank", page.Book.Author.Name())
	require.Len(t, page.Book.Genres, 1)
	require.Len(t, page.Instances, 2)
	require.Equal(t, 1, gw.tokenCalls)
}

func TestBeginCheckoutBookNotFound(t *testing.T) {
	gw := &stubGateway{token: "client-token-abc"}
	svc := NewCheckoutService(store.NewInMemory(), gw)

	_, err := svc.BeginCheckout(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, store.ErrNotFound)
	require.Zero(t, gw.tokenCalls, "gateway must not be called for a missing book")
}

func TestBeginCheckoutTokenFailure(t *testing.T) {
	st := store.NewInMemory()
	bookID := seedCheckoutBook(t, st)
	gw := &stubGateway{tokenErr: errors.New("connection refused")}
	svc := NewCheckoutService(st, gw)

	_, err := svc.BeginCheckout(context.Background(), bookID)
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	require.Equal(t, "generate client token", gwErr.Op)
}

func TestSubmitPaymentSettled(t *testing.T) {
	gw := &stubGateway{saleResult: &SaleResult{
		Success:     true,
		Transaction: &Transaction{ID: "txn1", Status: "Settled", Amount: "10.00"},
	}}
	svc := NewCheckoutService(store.NewInMemory(), gw)

	outcome, err := svc.SubmitPayment(context.Background(), PaymentRequest{
		Amount:    "10.00",
		Nonce:     "fake-valid-nonce",
		FirstName: "Paul",
		LastName:  "Atreides",
		Email:     "paul@arrakis.example",
	})
	require.NoError(t, err)
	require.True(t, outcome.Succeeded())

	require.Equal(t, 1, gw.saleCalls)
	require.Equal(t, "10.00", gw.lastSale.Amount)
	require.Equal(t, "fake-valid-nonce", gw.lastSale.PaymentMethodNonce)
	require.True(t, gw.lastSale.SubmitForSettlement, "settlement is requested in the same call")
	require.Equal(t, "Paul", gw.lastSale.Customer.FirstName)
}

func TestSubmitPaymentDeclinedStatus(t *testing.T) {
	gw := &stubGateway{saleResult: &SaleResult{
		Success:     false,
		Transaction: &Transaction{ID: "txn2", Status: "ProcessorDeclined"},
	}}
	svc := NewCheckoutService(store.NewInMemory(), gw)

	outcome, err := svc.SubmitPayment(context.Background(), PaymentRequest{Amount: "10.00", Nonce: "fake-valid-nonce"})
	require.NoError(t, err)
	require.False(t, outcome.Succeeded())
	require.Contains(t, outcome.Message, "ProcessorDeclined")
}

func TestSubmitPaymentValidationErrors(t *testing.T) {
	gw := &stubGateway{saleResult: &SaleResult{
		Success: false,
		Errors:  []GatewayValidationError{{Code: "81501", Message: "Amount is required."}},
	}}
	svc := NewCheckoutService(store.NewInMemory(), gw)

	outcome, err := svc.SubmitPayment(context.Background(), PaymentRequest{Nonce: "fake-valid-nonce"})
	require.NoError(t, err)
	require.False(t, outcome.Succeeded())
	require.Contains(t, outcome.Message, "Error: 81501: Amount is required.")
}

func TestSubmitPaymentSuccessFlagWithoutTransaction(t *testing.T) {
	// A success flag with no transaction record is malformed gateway data;
	// it degrades to a Failure outcome rather than being interpreted.
	gw := &stubGateway{saleResult: &SaleResult{Success: true}}
	svc := NewCheckoutService(store.NewInMemory(), gw)

	outcome, err := svc.SubmitPayment(context.Background(), PaymentRequest{Amount: "10.00", Nonce: "fake-valid-nonce"})
	require.NoError(t, err)
	require.False(t, outcome.Succeeded())
}

func TestSubmitPaymentTransportFailure(t *testing.T) {
	gw := &stubGateway{saleErr: errors.New("dial tcp: connection refused")}
	svc := NewCheckoutService(store.NewInMemory(), gw)

	_, err := svc.SubmitPayment(context.Background(), PaymentRequest{Amount: "10.00", Nonce: "fake-valid-nonce"})
	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	require.Equal(t, "sale", gwErr.Op)
}
