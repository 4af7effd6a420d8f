// Package tools implements the callable operations exposed over the MCP
// surface: payment-link creation, transaction and invoice reads, refund and
// settlement reports. Each operation translates its arguments into gateway
// calls and renders the JSON that comes back as bounded text.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"payumcp/internal/customers"
)

// Dispatcher is the authenticated choke point every outbound call goes
// through. Do carries the short-lived session token, DoStatic the pre-issued
// operator token.
type Dispatcher interface {
	Do(ctx context.Context, url string, headers map[string]string, body map[string]any) (map[string]any, error)
	DoStatic(ctx context.Context, url string, headers map[string]string, body map[string]any) (map[string]any, error)
	BaseURL() string
}

type Service struct {
	gateway  Dispatcher
	resolver *customers.Resolver
	logger   *zap.SugaredLogger
}

func NewService(gateway Dispatcher, resolver *customers.Resolver, logger *zap.SugaredLogger) *Service {
	return &Service{gateway: gateway, resolver: resolver, logger: logger}
}

// idRe bounds the identifiers accepted in URL paths.
var idRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func validID(id string) bool {
	return idRe.MatchString(id)
}

// display renders a loosely typed JSON value for the text reports. nil and
// empty strings become the fallback; JSON numbers drop a trailing .0.
func display(v any, fallback string) string {
	switch t := v.(type) {
	case nil:
		return fallback
	case string:
		if t == "" {
			return fallback
		}
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// jsonReply pretty-prints a structured reply for tools that pass gateway JSON
// through instead of formatting a report.
func jsonReply(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "Failed to format response."
	}
	return string(out)
}

func jsonError(msg string) string {
	return jsonReply(map[string]string{"error": msg})
}
