package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TransactionDetails fetches one transaction by its gateway id and renders the
// full multi-section report. When the response carries no result block only
// the top-level status fields are shown.
func (s *Service) TransactionDetails(ctx context.Context, payuID string) string {
	if !validID(payuID) {
		return "Invalid PayU ID format."
	}

	data, err := s.gateway.Do(ctx, s.gateway.BaseURL()+"/transactions/"+payuID, nil, nil)
	if err != nil {
		return "Failed to retrieve transaction details. Please check the PayU ID and try again."
	}

	result, ok := data["result"].(map[string]any)
	if !ok {
		return fmt.Sprintf("API Status: %s\nMessage: %s\nCode: %s\n\nNo transaction details available.",
			display(data["status"], "N/A"), display(data["message"], "N/A"), display(data["code"], "N/A"))
	}
	return formatTransaction(data, result)
}

func formatTransaction(data, result map[string]any) string {
	var out []string
	add := func(lines ...string) { out = append(out, lines...) }

	add(
		"API Status: "+display(data["status"], "None"),
		"Message: "+display(data["message"], "None"),
		"Code: "+display(data["code"], "None"),
		"",
		"TRANSACTION DETAILS:",
		"Payment ID: "+display(result["paymentId"], "None"),
		"Merchant Transaction ID: "+display(result["merchantTransactionId"], "None"),
		"Status: "+display(result["status"], "None"),
		"Transaction Date/Time: "+display(result["transactionDateTime"], "None"),
		"Transaction Source: "+display(result["transactionSource"], "None"),
		"Amount: "+display(result["amount"], "None"),
		"Amount Left For Refund: "+display(result["amountLeftForRefund"], "None"),
		"Product Info: "+display(result["productInfo"], "None"),
	)

	add("", "PAYMENT DETAILS:")
	if pd, ok := result["paymentDetails"].(map[string]any); ok {
		add(
			"Mode: "+display(pd["mode"], "None"),
			"Bank Reference Number: "+display(pd["bankRefNo"], "None"),
		)
	}

	add(
		"",
		"Amount Breakup: "+display(result["amountBreakup"], "None"),
		"Settlement Details: "+display(result["settlementDetails"], "None"),
	)

	add("", "CUSTOMER INFORMATION:")
	if cust, ok := result["customer"].(map[string]any); ok {
		add("Name: " + display(cust["name"], "None"))
	}

	add("", "Timeline: "+display(result["timeLine"], "None"))

	if extra, ok := result["customerAdditionalFields"].(map[string]any); ok && len(extra) > 0 {
		add("", "ADDITIONAL CUSTOMER FIELDS:")
		keys := make([]string, 0, len(extra))
		for k := range extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			add(k + ": " + display(extra[k], "None"))
		}
	}

	add(
		"",
		"Is POS Transaction: "+display(result["isPosTransaction"], "None"),
		"Splits: "+display(result["splits"], "None"),
		"Split Payments: "+display(result["splitPayments"], "None"),
		"Offer Details: "+display(result["offerDetails"], "None"),
		"Device Info: "+display(result["deviceInfo"], "None"),
		"Rule Description: "+display(result["ruleDescription"], "None"),
		"Additional Charges: "+display(result["additionalCharges"], "None"),
	)

	add("", "ACTIONS TAKEN:")
	if actions, ok := result["actionsTakenDetail"].(map[string]any); ok {
		add(
			"Transaction Update Data List: "+display(actions["txnUpdateDataList"], "None"),
			"Count: "+display(actions["count"], "None"),
		)
	}

	add(
		"",
		"Amount in INR: "+display(result["amountInInr"], "None"),
		"MCP Info: "+display(result["mcpInfo"], "None"),
		"Offer Activity Details: "+display(result["offerActivityDetails"], "None"),
		"Discount: "+display(result["discount"], "None"),
		"EMI Conversion: "+display(result["emiConversion"], "None"),
		"POS Transaction: "+display(result["posTransaction"], "None"),
		"PA Name: "+display(result["pa_name"], "None"),
	)

	return strings.Join(out, "\n")
}
