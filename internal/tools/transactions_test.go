package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransactionDetailsRejectsBadID(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(gw)

	for _, id := range []string{"", "abc def", "id;drop", "../etc"} {
		require.Equal(t, "Invalid PayU ID format.", svc.TransactionDetails(context.Background(), id))
	}
	require.Empty(t, gw.sessionCalls)
}

func TestTransactionDetailsFailure(t *testing.T) {
	gw := &fakeGateway{}
	got := newTestService(gw).TransactionDetails(context.Background(), "PAYU123")
	require.Equal(t, "Failed to retrieve transaction details. Please check the PayU ID and try again.", got)
}

func TestTransactionDetailsWithoutResultBlock(t *testing.T) {
	gw := &fakeGateway{responses: map[string]map[string]any{
		"/transactions/PAYU123": {"status": float64(1), "message": "Not found", "code": "E404"},
	}}

	got := newTestService(gw).TransactionDetails(context.Background(), "PAYU123")
	require.Equal(t, "API Status: 1\nMessage: Not found\nCode: E404\n\nNo transaction details available.", got)
}

func TestTransactionDetailsFullReport(t *testing.T) {
	gw := &fakeGateway{responses: map[string]map[string]any{
		"/transactions/PAYU123": {
			"status":  float64(0),
			"message": "success",
			"code":    float64(200),
			"result": map[string]any{
				"paymentId":             "PAYU123",
				"merchantTransactionId": "MTX-9",
				"status":                "captured",
				"transactionDateTime":   "2025-01-10 11:22:33",
				"transactionSource":     "paymentLink",
				"amount":                float64(500.25),
				"amountLeftForRefund":   nil,
				"productInfo":           "Subscription",
				"paymentDetails": map[string]any{
					"mode":      "UPI",
					"bankRefNo": "BR-77",
				},
				"customer": map[string]any{"name": "Alice"},
				"customerAdditionalFields": map[string]any{
					"zzz_last": "v2",
					"aaa_first": "v1",
				},
				"isPosTransaction": false,
				"actionsTakenDetail": map[string]any{
					"txnUpdateDataList": []any{},
					"count":             float64(0),
				},
				"discount":       float64(0),
				"posTransaction": false,
			},
		},
	}}

	got := newTestService(gw).TransactionDetails(context.Background(), "PAYU123")

	require.True(t, strings.HasPrefix(got, "API Status: 0\nMessage: success\nCode: 200"))
	require.Contains(t, got, "TRANSACTION DETAILS:\nPayment ID: PAYU123")
	require.Contains(t, got, "Merchant Transaction ID: MTX-9")
	require.Contains(t, got, "Amount: 500.25")
	require.Contains(t, got, "Amount Left For Refund: None")
	require.Contains(t, got, "PAYMENT DETAILS:\nMode: UPI\nBank Reference Number: BR-77")
	require.Contains(t, got, "CUSTOMER INFORMATION:\nName: Alice")
	// additional fields come out sorted by key
	require.Contains(t, got, "ADDITIONAL CUSTOMER FIELDS:\naaa_first: v1\nzzz_last: v2")
	require.Contains(t, got, "Is POS Transaction: false")
	require.Contains(t, got, "ACTIONS TAKEN:\nTransaction Update Data List: []\nCount: 0")
	require.Contains(t, got, "PA Name: None")
}
