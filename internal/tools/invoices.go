package tools

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// invoiceWindowDays is how far back the invoice transaction query looks.
const invoiceWindowDays = 30

// invoicePageSize bounds the query; at most invoiceShowRows rows make it into
// the reply.
const (
	invoicePageSize   = 10
	invoiceShowRows   = 5
	invoiceDateLayout = "2006-01-02"
)

func dateRange(days int, now time.Time) (from, to string) {
	return now.AddDate(0, 0, -days).Format(invoiceDateLayout), now.Format(invoiceDateLayout)
}

// InvoiceDetails fetches the transactions recorded against a payment link
// over the last 30 days and renders a structured JSON reply with at most five
// rows plus a link to the full listing.
func (s *Service) InvoiceDetails(ctx context.Context, invoiceID string) string {
	if !validID(invoiceID) {
		return "Invalid invoice ID format."
	}

	from, to := dateRange(invoiceWindowDays, time.Now())
	endpoint := fmt.Sprintf("%s/payment-links/%s/txns?dateFrom=%s&dateTo=%s&pageOffset=0&pageSize=%d&order=asc",
		s.gateway.BaseURL(), invoiceID, from, to, invoicePageSize)

	data, err := s.gateway.Do(ctx, endpoint, nil, nil)
	if err != nil {
		return jsonReply(map[string]string{
			"status":  "error",
			"message": "Unable to retrieve invoice details. Please check the invoice ID and try again.",
		})
	}

	parsed, errMsg := parseInvoice(data, invoiceID)
	if errMsg != "" {
		return jsonReply(map[string]string{"status": "error", "message": errMsg})
	}
	return jsonReply(map[string]any{
		"status":  "success",
		"message": "Invoice details retrieved successfully",
		"data":    parsed,
	})
}

// parseInvoice extracts the transaction rows from the gateway response shape
// {result: {data: [...], rows: n}}. The second return is a user-facing error
// message when the response is unusable.
func parseInvoice(data map[string]any, invoiceID string) (map[string]any, string) {
	status, hasStatus := data["status"].(float64)
	result, ok := data["result"].(map[string]any)
	if !hasStatus || status != 0 || !ok {
		return nil, "Invalid response or error in API call"
	}

	rows, _ := result["data"].([]any)
	if len(rows) == 0 {
		return nil, "No transaction data found"
	}

	transactions := make([]map[string]any, 0, invoiceShowRows)
	for _, row := range rows {
		if len(transactions) == invoiceShowRows {
			break
		}
		txn, ok := row.(map[string]any)
		if !ok {
			continue
		}
		settled, _ := txn["settledAmount"].(float64)
		transactions = append(transactions, map[string]any{
			"transaction_id": display(txn["transactionId"], "N/A"),
			"date":           display(txn["createdOn"], "N/A"),
			"amount":         fmt.Sprintf("₹%.2f", settled),
			"status":         display(txn["status"], "N/A"),
			"reference_id":   display(txn["merchantReferenceId"], "N/A"),
			"mode":           display(txn["mode"], "N/A"),
		})
	}

	return map[string]any{
		"transactions":   transactions,
		"instruction":    "Always show the data in a tabular format with columns - Transaction Id, Date, Amount, Status, Reference Id and Mode",
		"view_more_link": "For more details, you can view at https://payu.in/business/payment-links/" + url.PathEscape(invoiceID),
	}, ""
}
