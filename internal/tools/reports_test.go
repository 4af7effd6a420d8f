package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestTransactionsQueryCheck(t *testing.T) {
	base := TransactionsQuery{DateFrom: "2025-01-01 00:00:00", DateTo: "2025-01-31 23:59:59"}

	t.Run("valid filters pass", func(t *testing.T) {
		q := base
		q.Status = []string{"captured", "refundPending"}
		q.Mode = []string{"UPI", "CC"}
		q.PaymentSource = []string{"paymentLink"}
		q.Aggregator = []string{"PayU"}
		q.MoreFilters = []string{"tpv"}
		q.Currency = []string{"USD"}
		require.Empty(t, q.check())
	})

	t.Run("unknown status is rejected with the allow-list", func(t *testing.T) {
		q := base
		q.Status = []string{"paid"}
		msg := q.check()
		require.Contains(t, msg, `Invalid status 'paid'`)
		require.Contains(t, msg, "captured")
	})

	t.Run("unknown mode is rejected", func(t *testing.T) {
		q := base
		q.Mode = []string{"BITCOIN"}
		require.Contains(t, q.check(), `Invalid mode 'BITCOIN'`)
	})

	t.Run("amount bounds must come as a pair", func(t *testing.T) {
		q := base
		q.MinAmount = floatPtr(10)
		require.Contains(t, q.check(), "must be provided together")

		q.MinAmount = nil
		q.MaxAmount = floatPtr(10)
		require.Contains(t, q.check(), "must be provided together")
	})

	t.Run("min must be below max", func(t *testing.T) {
		q := base
		q.MinAmount = floatPtr(100)
		q.MaxAmount = floatPtr(100)
		require.Contains(t, q.check(), "must be less than")
	})
}

func TestTransactionsListBuildsBracketedQuery(t *testing.T) {
	gw := &fakeGateway{responses: map[string]map[string]any{
		"/transactions/?": {"rows": float64(2)},
	}}

	q := TransactionsQuery{
		DateFrom:     "2025-01-01 00:00:00",
		DateTo:       "2025-01-31 23:59:59",
		PageOffset:   0,
		PageLimit:    25,
		Status:       []string{"captured"},
		Mode:         []string{"UPI"},
		MinAmount:    floatPtr(10),
		MaxAmount:    floatPtr(500),
		OfferApplied: boolPtr(true),
	}

	out := newTestService(gw).TransactionsList(context.Background(), q)

	require.Len(t, gw.staticCalls, 1, "report goes through the static-token path")
	require.Empty(t, gw.sessionCalls)

	url := gw.staticCalls[0].url
	require.Contains(t, url, "all-flag=1")
	require.Contains(t, url, "pageLimit=25")
	require.Contains(t, url, "minAmount=10")
	require.Contains(t, url, "maxAmount=500")
	require.Contains(t, url, "offerApplied=true")
	require.Contains(t, url, "status[]=captured")
	require.Contains(t, url, "mode[]=UPI")
	for _, af := range additionalFields {
		require.Contains(t, url, "additionalFields[]="+af)
	}

	require.Contains(t, out, `"rows": 2`)
}

func TestTransactionsListInvalidFilterSkipsNetwork(t *testing.T) {
	gw := &fakeGateway{}
	out := newTestService(gw).TransactionsList(context.Background(), TransactionsQuery{
		DateFrom: "2025-01-01 00:00:00",
		DateTo:   "2025-01-31 23:59:59",
		Status:   []string{"nope"},
	})

	require.Empty(t, gw.staticCalls)
	require.Contains(t, out, "Invalid status 'nope'")
}

func TestTransactionsSummaryBuildsBareQuery(t *testing.T) {
	gw := &fakeGateway{responses: map[string]map[string]any{
		"/transactions/summary/": {"total": float64(7)},
	}}

	q := TransactionsQuery{
		DateFrom: "2025-01-01 00:00:00",
		DateTo:   "2025-01-31 23:59:59",
		Status:   []string{"captured", "failed"},
	}

	out := newTestService(gw).TransactionsSummary(context.Background(), q)

	require.Len(t, gw.staticCalls, 1)
	url := gw.staticCalls[0].url
	require.Contains(t, url, "read_refund=false")
	require.Contains(t, url, "status=captured&status=failed")
	require.NotContains(t, url, "status[]=")
	require.NotContains(t, url, "additionalFields")
	require.NotContains(t, url, "pageLimit")

	require.Contains(t, out, `"total": 7`)
}

func TestTransactionsReportsFailureMessage(t *testing.T) {
	gw := &fakeGateway{} // every call fails
	q := TransactionsQuery{DateFrom: "2025-01-01 00:00:00", DateTo: "2025-01-31 23:59:59"}

	require.Equal(t, "Failed to retrieve transactions list.",
		newTestService(gw).TransactionsList(context.Background(), q))
	require.Equal(t, "Failed to retrieve transactions summary.",
		newTestService(gw).TransactionsSummary(context.Background(), q))
}

func TestSearchRefunds(t *testing.T) {
	t.Run("builds query and passes JSON through", func(t *testing.T) {
		gw := &fakeGateway{responses: map[string]map[string]any{
			"/refund/v1/onepayu/search": {"refunds": []any{}},
		}}

		out := newTestService(gw).SearchRefunds(context.Background(), RefundQuery{
			DateFrom:   "2025-01-01",
			DateTo:     "2025-01-31",
			PageOffset: 2,
			PageSize:   50,
			Status:     "queued",
		})

		require.Len(t, gw.staticCalls, 1)
		url := gw.staticCalls[0].url
		require.Contains(t, url, "pageOffset=2")
		require.Contains(t, url, "pageSize=50")
		require.Contains(t, url, "status=queued")
		require.Contains(t, out, `"refunds"`)
	})

	t.Run("invalid status is rejected before the call", func(t *testing.T) {
		gw := &fakeGateway{}
		out := newTestService(gw).SearchRefunds(context.Background(), RefundQuery{
			DateFrom: "2025-01-01", DateTo: "2025-01-31", Status: "done",
		})
		require.Empty(t, gw.staticCalls)
		require.Contains(t, out, "Invalid status 'done'")
		require.Contains(t, out, "user_cancelled")
	})
}

func TestRefundsSummary(t *testing.T) {
	gw := &fakeGateway{responses: map[string]map[string]any{
		"/refunds/summary/": {"count": float64(3)},
	}}

	out := newTestService(gw).RefundsSummary(context.Background(), "2025-01-01", "2025-01-31", "")
	require.Len(t, gw.staticCalls, 1)
	require.NotContains(t, gw.staticCalls[0].url, "status=")
	require.Contains(t, out, `"count": 3`)
}

func TestSettlementDetails(t *testing.T) {
	gw := &fakeGateway{responses: map[string]map[string]any{
		"/settlements/details": {"settlement": map[string]any{"id": "S-1"}},
	}}

	out := newTestService(gw).SettlementDetails(context.Background(), "S-1", "", "", "")
	require.Len(t, gw.staticCalls, 1)

	url := gw.staticCalls[0].url
	require.Contains(t, url, "settlementId=S-1")
	require.Contains(t, url, "status=inprogress", "status defaults when empty")
	require.Contains(t, out, `"S-1"`)

	// explicit status wins over the default
	newTestService(gw).SettlementDetails(context.Background(), "S-1", "", "completed", "")
	require.Contains(t, gw.staticCalls[1].url, "status=completed")
	require.False(t, strings.Contains(gw.staticCalls[1].url, "inprogress"))
}
