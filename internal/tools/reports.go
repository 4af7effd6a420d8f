package tools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// TransactionsQuery carries the shared filter surface of the transactions
// list and summary reports. DateFrom/DateTo are mandatory; MinAmount and
// MaxAmount must be supplied together with min below max.
type TransactionsQuery struct {
	DateFrom      string
	DateTo        string
	PageOffset    int
	PageLimit     int
	Status        []string
	Mode          []string
	PaymentSource []string
	Aggregator    []string
	MoreFilters   []string
	Currency      []string
	MinAmount     *float64
	MaxAmount     *float64
	OfferApplied  *bool
}

// additionalFields is always requested with the transactions list.
var additionalFields = []string{"transactionAmount", "transactionCurrency", "exchangeRate", "exchangeDate"}

// check validates the filter sets and the amount pair. A non-empty return is
// the rejection reply.
func (q TransactionsQuery) check() string {
	checks := []struct {
		kind    string
		values  []string
		allowed []string
	}{
		{"status", q.Status, txnStatuses},
		{"mode", q.Mode, txnModes},
		{"payment_source", q.PaymentSource, paymentSources},
		{"pa", q.Aggregator, aggregators},
		{"more_filter", q.MoreFilters, moreFilters},
		{"currency", q.Currency, txnCurrencies},
	}
	for _, c := range checks {
		if msg := checkFilter(c.kind, c.values, c.allowed); msg != "" {
			return msg
		}
	}

	if (q.MinAmount == nil) != (q.MaxAmount == nil) {
		return jsonError("Both minAmount and maxAmount must be provided together")
	}
	if q.MinAmount != nil && *q.MinAmount >= *q.MaxAmount {
		return jsonError(fmt.Sprintf("minAmount (%v) must be less than maxAmount (%v)", *q.MinAmount, *q.MaxAmount))
	}
	return ""
}

func (q TransactionsQuery) baseParams() url.Values {
	params := url.Values{}
	params.Set("dateFrom", q.DateFrom)
	params.Set("dateTo", q.DateTo)
	params.Set("all-flag", "1")
	if q.MinAmount != nil {
		params.Set("minAmount", strconv.FormatFloat(*q.MinAmount, 'f', -1, 64))
	}
	if q.MaxAmount != nil {
		params.Set("maxAmount", strconv.FormatFloat(*q.MaxAmount, 'f', -1, 64))
	}
	if q.OfferApplied != nil {
		params.Set("offerApplied", strconv.FormatBool(*q.OfferApplied))
	}
	return params
}

// arrayParams encodes the repeated filter keys. The list endpoint wants
// bracketed keys (status[]=...), the summary endpoint bare ones, so the
// suffix is a parameter.
func (q TransactionsQuery) arrayParams(suffix string) []string {
	var parts []string
	appendAll := func(key string, values []string) {
		for _, v := range values {
			parts = append(parts, key+suffix+"="+url.QueryEscape(v))
		}
	}
	appendAll("status", q.Status)
	appendAll("mode", q.Mode)
	appendAll("paymentSource", q.PaymentSource)
	appendAll("pa", q.Aggregator)
	appendAll("moreFilters", q.MoreFilters)
	appendAll("transactionCurrency", q.Currency)
	return parts
}

// TransactionsList fetches the paginated transactions report through the
// static-token path and passes the gateway JSON through.
func (s *Service) TransactionsList(ctx context.Context, q TransactionsQuery) string {
	if msg := q.check(); msg != "" {
		return msg
	}

	params := q.baseParams()
	params.Set("pageOffset", strconv.Itoa(q.PageOffset))
	params.Set("pageLimit", strconv.Itoa(q.PageLimit))

	parts := q.arrayParams("[]")
	for _, af := range additionalFields {
		parts = append(parts, "additionalFields[]="+url.QueryEscape(af))
	}

	endpoint := s.gateway.BaseURL() + "/transactions/?" + params.Encode() + "&" + strings.Join(parts, "&")
	data, err := s.gateway.DoStatic(ctx, endpoint, nil, nil)
	if err != nil {
		return "Failed to retrieve transactions list."
	}
	return jsonReply(data)
}

// TransactionsSummary fetches the aggregate transactions report. Pagination
// does not apply; the gateway additionally wants read_refund pinned to false.
func (s *Service) TransactionsSummary(ctx context.Context, q TransactionsQuery) string {
	if msg := q.check(); msg != "" {
		return msg
	}

	params := q.baseParams()
	params.Set("read_refund", "false")

	endpoint := s.gateway.BaseURL() + "/transactions/summary/?" + params.Encode()
	if parts := q.arrayParams(""); len(parts) > 0 {
		endpoint += "&" + strings.Join(parts, "&")
	}

	data, err := s.gateway.DoStatic(ctx, endpoint, nil, nil)
	if err != nil {
		return "Failed to retrieve transactions summary."
	}
	return jsonReply(data)
}
