package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Customer identifies the buyer on a sale submission.
type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// SaleRequest is a single sale submission against the gateway.
type SaleRequest struct {
	OrderID             string   `json:"orderId,omitempty"`
	Amount              string   `json:"amount"`
	PaymentMethodNonce  string   `json:"paymentMethodNonce"`
	SubmitForSettlement bool     `json:"submitForSettlement"`
	Customer            Customer `json:"customer"`
}

// Transaction is the gateway's record of a processed sale.
type Transaction struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount string `json:"amount"`
}

// GatewayValidationError is one structured error attached to a gateway result.
type GatewayValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SaleResult is the gateway's decoded response to a sale submission.
type SaleResult struct {
	Success     bool                     `json:"success"`
	Transaction *Transaction             `json:"transaction,omitempty"`
	Errors      []GatewayValidationError `json:"errors,omitempty"`
}

// PaymentGateway is the external payment collaborator consumed by the
// checkout service.
type PaymentGateway interface {
	GenerateClientToken(ctx context.Context) (string, error)
	Sale(ctx context.Context, req SaleRequest) (*SaleResult, error)
}

// GatewayError marks a transport- or protocol-level gateway fault. It is
// deliberately distinct from a declined sale: a declined sale still yields an
// Outcome, a GatewayError aborts the operation.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return "payment gateway: " + e.Op + ": " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error { return e.Err }

// GatewayClient talks to the payment gateway's merchant API over HTTPS.
// Construct one at startup and inject it; it holds no global state.
type GatewayClient struct {
	baseURL    string
	merchantID string
	publicKey  string
	privateKey string
	httpClient *http.Client
}

var _ PaymentGateway = (*GatewayClient)(nil)

func NewGatewayClient(baseURL, merchantID, publicKey, privateKey string) *GatewayClient {
	return &GatewayClient{
		baseURL:    baseURL,
		merchantID: merchantID,
		publicKey:  publicKey,
		privateKey: privateKey,
		// Short timeout so a hung gateway doesn't block checkout page loads.
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type clientTokenResp struct {
	ClientToken string `json:"clientToken"`
}

// GenerateClientToken requests a short-lived token authorizing the browser's
// payment form.
func (c *GatewayClient) GenerateClientToken(ctx context.Context) (string, error) {
	var out clientTokenResp
	if err := c.post(ctx, "/client_token", struct{}{}, &out); err != nil {
		return "", err
	}
	if out.ClientToken == "" {
		return "", fmt.Errorf("gateway returned an empty client token")
	}
	return out.ClientToken, nil
}

// Sale submits a sale transaction. Each submission is stamped with a fresh
// order id for gateway-side correlation.
func (c *GatewayClient) Sale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	if req.OrderID == "" {
		req.OrderID = uuid.NewString()
	}
	var out SaleResult
	if err := c.post(ctx, "/transactions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GatewayClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	u := c.baseURL + "/merchants/" + c.merchantID + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.publicKey, c.privateKey)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// 422 carries a decoded result with validation errors; anything else
	// outside 2xx is a protocol fault.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusUnprocessableEntity {
		return fmt.Errorf("gateway returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
