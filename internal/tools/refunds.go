package tools

import (
	"context"
	"net/url"
	"strconv"
)

// RefundQuery carries the refund search window and optional status filter.
type RefundQuery struct {
	DateFrom   string
	DateTo     string
	PageOffset int
	PageSize   int
	Status     string
}

// SearchRefunds fetches paginated refunds through the static-token path.
func (s *Service) SearchRefunds(ctx context.Context, q RefundQuery) string {
	if q.Status != "" {
		if msg := checkFilter("status", []string{q.Status}, refundStatuses); msg != "" {
			return msg
		}
	}

	params := url.Values{}
	params.Set("dateFrom", q.DateFrom)
	params.Set("dateTo", q.DateTo)
	params.Set("pageOffset", strconv.Itoa(q.PageOffset))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Status != "" {
		params.Set("status", q.Status)
	}

	data, err := s.gateway.DoStatic(ctx, s.gateway.BaseURL()+"/refund/v1/onepayu/search?"+params.Encode(), nil, nil)
	if err != nil {
		return "Failed to search refunds."
	}
	return jsonReply(data)
}

// RefundsSummary fetches the aggregate refunds report.
func (s *Service) RefundsSummary(ctx context.Context, dateFrom, dateTo, status string) string {
	if status != "" {
		if msg := checkFilter("status", []string{status}, refundStatuses); msg != "" {
			return msg
		}
	}

	params := url.Values{}
	params.Set("dateFrom", dateFrom)
	params.Set("dateTo", dateTo)
	if status != "" {
		params.Set("status", status)
	}

	data, err := s.gateway.DoStatic(ctx, s.gateway.BaseURL()+"/refunds/summary/?"+params.Encode(), nil, nil)
	if err != nil {
		return "Failed to retrieve refunds summary."
	}
	return jsonReply(data)
}
