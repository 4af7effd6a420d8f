package mcp

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"payumcp/internal/tools"
)

// dispatch routes a tool call to the matching service operation.
func (s *Server) dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	switch name {
	case "payment_link":
		amount, ok := args["amount"].(float64)
		if !ok {
			return "", fmt.Errorf("amount is required")
		}
		description := strArg(args, "description")
		if description == "" {
			return "", fmt.Errorf("description is required")
		}
		return s.service.CreatePaymentLink(ctx, tools.LinkRequest{
			Amount:      decimal.NewFromFloat(amount),
			Description: description,
			Name:        strArg(args, "name"),
			Phone:       strArg(args, "phone"),
			Email:       strArg(args, "email"),
		}), nil

	case "transaction_details":
		id := strArg(args, "payu_id")
		if id == "" {
			return "", fmt.Errorf("payu_id is required")
		}
		return s.service.TransactionDetails(ctx, id), nil

	case "invoice_details":
		id := strArg(args, "invoice_id")
		if id == "" {
			return "", fmt.Errorf("invoice_id is required")
		}
		return s.service.InvoiceDetails(ctx, id), nil

	case "transactions_list":
		q, err := transactionsQuery(args)
		if err != nil {
			return "", err
		}
		q.PageOffset = intArg(args, "page_offset", 0)
		q.PageLimit = intArg(args, "page_limit", 10)
		return s.service.TransactionsList(ctx, q), nil

	case "transactions_summary":
		q, err := transactionsQuery(args)
		if err != nil {
			return "", err
		}
		return s.service.TransactionsSummary(ctx, q), nil

	case "search_refunds":
		dateFrom, dateTo := strArg(args, "date_from"), strArg(args, "date_to")
		if dateFrom == "" || dateTo == "" {
			return "", fmt.Errorf("date_from and date_to are required")
		}
		return s.service.SearchRefunds(ctx, tools.RefundQuery{
			DateFrom:   dateFrom,
			DateTo:     dateTo,
			PageOffset: intArg(args, "page_offset", 0),
			PageSize:   intArg(args, "page_size", 10),
			Status:     strArg(args, "status"),
		}), nil

	case "refunds_summary":
		dateFrom, dateTo := strArg(args, "date_from"), strArg(args, "date_to")
		if dateFrom == "" || dateTo == "" {
			return "", fmt.Errorf("date_from and date_to are required")
		}
		return s.service.RefundsSummary(ctx, dateFrom, dateTo, strArg(args, "status")), nil

	case "settlement_details":
		id := strArg(args, "settlement_id")
		if id == "" {
			return "", fmt.Errorf("settlement_id is required")
		}
		return s.service.SettlementDetails(ctx, id,
			strArg(args, "utr"), strArg(args, "status"), strArg(args, "tid")), nil

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

func transactionsQuery(args map[string]any) (tools.TransactionsQuery, error) {
	dateFrom, dateTo := strArg(args, "date_from"), strArg(args, "date_to")
	if dateFrom == "" || dateTo == "" {
		return tools.TransactionsQuery{}, fmt.Errorf("date_from and date_to are required")
	}
	return tools.TransactionsQuery{
		DateFrom:      dateFrom,
		DateTo:        dateTo,
		Status:        strSliceArg(args, "status"),
		Mode:          strSliceArg(args, "mode"),
		PaymentSource: strSliceArg(args, "payment_source"),
		Aggregator:    strSliceArg(args, "pa"),
		MoreFilters:   strSliceArg(args, "more_filters"),
		Currency:      strSliceArg(args, "transaction_currency"),
		MinAmount:     floatArg(args, "min_amount"),
		MaxAmount:     floatArg(args, "max_amount"),
		OfferApplied:  boolArg(args, "offer_applied"),
	}, nil
}

func strArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]any, key string, fallback int) int {
	if f, ok := args[key].(float64); ok {
		return int(f)
	}
	return fallback
}

func floatArg(args map[string]any, key string) *float64 {
	if f, ok := args[key].(float64); ok {
		return &f
	}
	return nil
}

func boolArg(args map[string]any, key string) *bool {
	if b, ok := args[key].(bool); ok {
		return &b
	}
	return nil
}

func strSliceArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
