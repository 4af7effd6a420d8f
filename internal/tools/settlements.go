package tools

import (
	"context"
	"net/url"
)

// SettlementDetails fetches one settlement through the static-token path.
// Status defaults to "inprogress" when the caller leaves it empty.
func (s *Service) SettlementDetails(ctx context.Context, settlementID, utr, status, tid string) string {
	if status == "" {
		status = "inprogress"
	}

	params := url.Values{}
	params.Set("utr", utr)
	params.Set("settlementId", settlementID)
	params.Set("status", status)
	params.Set("tid", tid)

	data, err := s.gateway.DoStatic(ctx, s.gateway.BaseURL()+"/settlements/details?"+params.Encode(), nil, nil)
	if err != nil {
		return "Failed to retrieve settlement details. Please check the settlement ID and try again."
	}
	return jsonReply(data)
}
