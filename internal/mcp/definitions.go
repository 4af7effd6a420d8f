package mcp

// schema helpers keep the tool definitions readable.
type schema = map[string]any

func obj(required []string, props schema) schema {
	s := schema{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func str(desc string) schema {
	return schema{"type": "string", "description": desc}
}

func num(desc string) schema {
	return schema{"type": "number", "description": desc}
}

func boolean(desc string) schema {
	return schema{"type": "boolean", "description": desc}
}

func strArray(desc string) schema {
	return schema{"type": "array", "items": schema{"type": "string"}, "description": desc}
}

func toolDefinitions() []toolDefinition {
	reportProps := func(extra schema) schema {
		props := schema{
			"date_from":            str("Start date, YYYY-MM-DD HH:MM:SS"),
			"date_to":              str("End date, YYYY-MM-DD HH:MM:SS"),
			"status":               strArray("Transaction status filter"),
			"mode":                 strArray("Payment mode filter"),
			"payment_source":       strArray("Payment source filter"),
			"pa":                   strArray("Payment aggregator filter"),
			"more_filters":         strArray("Additional filters"),
			"transaction_currency": strArray("Currency filter"),
			"min_amount":           num("Minimum amount, requires max_amount"),
			"max_amount":           num("Maximum amount, requires min_amount"),
			"offer_applied":        boolean("Filter by offer applied"),
		}
		for k, v := range extra {
			props[k] = v
		}
		return props
	}

	return []toolDefinition{
		{
			Name:        "payment_link",
			Description: "Send a payment link to a customer. With only a name supplied the customer directory is searched; ambiguous matches are listed instead of creating a link.",
			InputSchema: obj([]string{"amount", "description"}, schema{
				"amount":      num("Payment amount, must be positive"),
				"description": str("Payment description"),
				"name":        str("Customer name"),
				"phone":       str("Customer phone number"),
				"email":       str("Customer email address"),
			}),
		},
		{
			Name:        "transaction_details",
			Description: "Get the full detail report for one transaction by its PayU id.",
			InputSchema: obj([]string{"payu_id"}, schema{
				"payu_id": str("PayU transaction id"),
			}),
		},
		{
			Name:        "invoice_details",
			Description: "Get the transactions recorded against a payment link over the last 30 days.",
			InputSchema: obj([]string{"invoice_id"}, schema{
				"invoice_id": str("Invoice id to query"),
			}),
		},
		{
			Name:        "transactions_list",
			Description: "Get the detailed transactions list for a date range with optional filters.",
			InputSchema: obj([]string{"date_from", "date_to"}, reportProps(schema{
				"page_offset": num("Page offset, default 0"),
				"page_limit":  num("Records per page, default 10"),
			})),
		},
		{
			Name:        "transactions_summary",
			Description: "Get the aggregate transactions summary for a date range with optional filters.",
			InputSchema: obj([]string{"date_from", "date_to"}, reportProps(nil)),
		},
		{
			Name:        "search_refunds",
			Description: "Search refunds over a date range, optionally filtered by status.",
			InputSchema: obj([]string{"date_from", "date_to"}, schema{
				"date_from":   str("Start date, YYYY-MM-DD"),
				"date_to":     str("End date, YYYY-MM-DD"),
				"page_offset": num("Page offset, default 0"),
				"page_size":   num("Records per page, default 10"),
				"status":      str("Refund status filter"),
			}),
		},
		{
			Name:        "refunds_summary",
			Description: "Get the aggregate refunds summary for a date range.",
			InputSchema: obj([]string{"date_from", "date_to"}, schema{
				"date_from": str("Start date, YYYY-MM-DD"),
				"date_to":   str("End date, YYYY-MM-DD"),
				"status":    str("Refund status filter"),
			}),
		},
		{
			Name:        "settlement_details",
			Description: "Get settlement details by settlement id.",
			InputSchema: obj([]string{"settlement_id"}, schema{
				"settlement_id": str("Settlement id"),
				"utr":           str("UTR reference"),
				"status":        str("Settlement status, default inprogress"),
				"tid":           str("Transaction id"),
			}),
		},
	}
}
