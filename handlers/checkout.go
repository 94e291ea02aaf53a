package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openshelf/locallibrary/service"
	"github.com/openshelf/locallibrary/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckoutHandler serves the checkout page bundle and the payment
// submission endpoint.
type CheckoutHandler struct {
	Checkout *service.CheckoutService
}

// Begin serves the checkout bundle. GET /catalog/book/{id}/checkout
// The page is never served without a valid client token: a gateway fault is
// a 502, not a degraded page.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid book id"}`, http.StatusBadRequest)
		return
	}
	page, err := h.Checkout.BeginCheckout(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"book not found"}`, http.StatusNotFound)
		return
	}
	var gwErr *service.GatewayError
	if errors.As(err, &gwErr) {
		log.Printf("begin checkout: %v", gwErr)
		http.Error(w, `{"error":"payment gateway unavailable"}`, http.StatusBadGateway)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"failed to begin checkout"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

// PaymentRequestBody mirrors the payment form fields.
type PaymentRequestBody struct {
	Amount             string `json:"amount"`
	PaymentMethodNonce string `json:"payment_method_nonce"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Email              string `json:"email"`
}

var paymentFieldRules = []FieldRule{
	{Field: "amount", Valid: NotEmpty, Message: "Amount must not be empty."},
	{Field: "payment_method_nonce", Valid: NotEmpty, Message: "Payment method nonce must not be empty."},
}

// Payment submits a sale. POST /payment
// The response body is intentionally minimal: a success boolean. The full
// outcome is logged server-side.
func (h *CheckoutHandler) Payment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	values := map[string]string{
		"amount":               req.Amount,
		"payment_method_nonce": req.PaymentMethodNonce,
	}
	if errs := ValidateFields(values, paymentFieldRules); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}
	outcome, err := h.Checkout.SubmitPayment(r.Context(), service.PaymentRequest{
		Amount:    req.Amount,
		Nonce:     req.PaymentMethodNonce,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	var gwErr *service.GatewayError
	if errors.As(err, &gwErr) {
		log.Printf("payment: %v", gwErr)
		http.Error(w, `{"error":"payment gateway unavailable"}`, http.StatusBadGateway)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"payment failed"}`, http.StatusInternalServerError)
		return
	}
	log.Printf("payment outcome: %s: %s", outcome.Header, outcome.Message)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": outcome.Succeeded()})
}
