package service

import "strings"

// Outcome is the user-facing classification of a sale attempt.
type Outcome struct {
	Header  string `json:"header"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

const (
	iconSuccess = "success"
	iconFail    = "fail"
)

// Succeeded reports whether the outcome classifies the sale as successful.
func (o Outcome) Succeeded() bool { return o.Icon == iconSuccess }

// transactionSuccessStatuses is the fixed allow-list of gateway transaction
// statuses treated as a successful sale.
var transactionSuccessStatuses = map[string]bool{
	"Authorizing":            true,
	"Authorized":             true,
	"Settled":                true,
	"Settling":               true,
	"SettlementConfirmed":    true,
	"SettlementPending":      true,
	"SubmittedForSettlement": true,
}

// ClassifyTransaction maps a gateway transaction status (plus any structured
// validation errors) to an Outcome. It is total and deterministic: every
// status value yields exactly one Outcome and the inputs are never mutated.
func ClassifyTransaction(status string, errs []GatewayValidationError) Outcome {
	if transactionSuccessStatuses[status] {
		return Outcome{
			Header:  "Sweet Success!",
			Icon:    iconSuccess,
			Message: "Your test transaction has been successfully processed.",
		}
	}
	msg := "Your test transaction has a status of " + status + ". See the gateway response and try again."
	if formatted := FormatGatewayErrors(errs); formatted != "" {
		msg += "\n" + formatted
	}
	return Outcome{
		Header:  "Transaction Failed",
		Icon:    iconFail,
		Message: msg,
	}
}

// failureOutcome builds a Failure outcome carrying the given diagnostic.
func failureOutcome(message string) Outcome {
	return Outcome{
		Header:  "Transaction Failed",
		Icon:    iconFail,
		Message: message,
	}
}

// FormatGatewayErrors renders the gateway's structured errors as one
// "Error: <code>: <message>" line per entry, in collection order.
func FormatGatewayErrors(errs []GatewayValidationError) string {
	var b strings.Builder
	for _, e := range errs {
		b.WriteString("Error: " + e.Code + ": " + e.Message + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
