package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySuccessStatuses(t *testing.T) {
	statuses := []string{
		"Authorizing",
		"Authorized",
		"Settled",
		"Settling",
		"SettlementConfirmed",
		"SettlementPending",
		"SubmittedForSettlement",
	}
	for _, status := range statuses {
		outcome := ClassifyTransaction(status, nil)
		assert.True(t, outcome.Succeeded(), "status %q must classify as success", status)
		assert.Equal(t, "Sweet Success!", outcome.Header)
	}
}

func TestClassifyFailureEmbedsStatus(t *testing.T) {
	for _, status := range []string{"ProcessorDeclined", "GatewayRejected", "Voided", "settled", ""} {
		outcome := ClassifyTransaction(status, nil)
		assert.False(t, outcome.Succeeded(), "status %q must classify as failure", status)
		assert.Equal(t, "Transaction Failed", outcome.Header)
		assert.Contains(t, outcome.Message, "a status of "+status+".")
	}
}

func TestClassifyFailureAppendsErrors(t *testing.T) {
	errs := []GatewayValidationError{
		{Code: "81501", Message: "Amount is required."},
		{Code: "81503", Message: "Amount is an invalid format."},
	}
	outcome := ClassifyTransaction("ProcessorDeclined", errs)
	require.False(t, outcome.Succeeded())
	assert.Contains(t, outcome.Message, "Error: 81501: Amount is required.")
	assert.Contains(t, outcome.Message, "Error: 81503: Amount is an invalid format.")
}

func TestClassifyIsDeterministic(t *testing.T) {
	first := ClassifyTransaction("Settled", nil)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ClassifyTransaction("Settled", nil))
	}
}

func TestFormatGatewayErrors(t *testing.T) {
	assert.Empty(t, FormatGatewayErrors(nil))

	got := FormatGatewayErrors([]GatewayValidationError{
		{Code: "81501", Message: "Amount is required."},
		{Code: "91564", Message: "Cannot use a payment_method_nonce more than once."},
	})
	want := "Error: 81501: Amount is required.\nError: 91564: Cannot use a payment_method_nonce more than once."
	assert.Equal(t, want, got)
}
