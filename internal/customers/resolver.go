package customers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Directory is the slice of the gateway client the resolver needs for its
// lookup round-trip.
type Directory interface {
	Do(ctx context.Context, url string, headers map[string]string, body map[string]any) (map[string]any, error)
	BaseURL() string
}

// Identity carries the customer fields supplied with a payment-link request.
// Any field may be empty.
type Identity struct {
	Name  string
	Email string
	Phone string
}

// Record is one customer entry returned by the directory search. Produced
// transiently; never persisted.
type Record struct {
	Name  string
	Email string
	Phone string
}

// evidence classifies the supplied identity once at entry, so the branches
// below never re-check field presence.
type evidence int

const (
	evidenceNone evidence = iota
	evidenceNameOnly
	evidenceVerified
)

func classify(id Identity) evidence {
	switch {
	case ValidEmail(id.Email) || ValidPhone(id.Phone):
		return evidenceVerified
	case id.Name != "":
		return evidenceNameOnly
	default:
		return evidenceNone
	}
}

// Resolution is the terminal state of a resolve run. When Ambiguous is set the
// caller must not create a link; Candidates holds the matches to present.
// Otherwise Identity holds the fields link creation should use.
type Resolution struct {
	Identity   Identity
	Ambiguous  bool
	Candidates []Record
}

// Listing renders the numbered disambiguation lines, one per candidate, with
// contact fields masked for display.
func (r Resolution) Listing() string {
	lines := make([]string, len(r.Candidates))
	for i, c := range r.Candidates {
		lines[i] = fmt.Sprintf("%d. Name: %s, Email: %s, Phone: %s",
			i+1, c.Name, MaskEmail(c.Email), MaskPhone(c.Phone))
	}
	return strings.Join(lines, "\n")
}

// Resolver decides whether payment-link creation can proceed directly or
// needs a directory lookup first, and applies the disambiguation policy when
// the lookup returns more than one match.
type Resolver struct {
	dir    Directory
	logger *zap.SugaredLogger
}

func NewResolver(dir Directory, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{dir: dir, logger: logger}
}

// Resolve runs the resolution workflow:
//   - a verified email or phone short-circuits straight to the supplied
//     identity, no lookup;
//   - a bare name triggers one directory search: zero matches (or a failed
//     search) falls back to the name alone, a single match adopts the
//     record's contact fields with per-field fallback to the supplied
//     values, and multiple matches terminate with a candidate listing;
//   - an identity with nothing usable still resolves, with the fields
//     passed through as supplied. Link creation is only ever blocked by
//     ambiguity.
func (r *Resolver) Resolve(ctx context.Context, id Identity) Resolution {
	switch classify(id) {
	case evidenceVerified:
		return Resolution{Identity: id}

	case evidenceNameOnly:
		records := r.search(ctx, id.Name)
		switch len(records) {
		case 0:
			return Resolution{Identity: Identity{Name: id.Name}}
		case 1:
			resolved := Identity{Name: id.Name, Email: records[0].Email, Phone: records[0].Phone}
			if resolved.Email == "" {
				resolved.Email = id.Email
			}
			if resolved.Phone == "" {
				resolved.Phone = id.Phone
			}
			return Resolution{Identity: resolved}
		default:
			r.logger.Infow("ambiguous customer name", "matches", len(records))
			return Resolution{Ambiguous: true, Candidates: records}
		}

	default:
		return Resolution{Identity: id}
	}
}

func (r *Resolver) search(ctx context.Context, name string) []Record {
	endpoint := r.dir.BaseURL() + "/invoice/customer/customers?searchText=" + url.QueryEscape(name)
	data, err := r.dir.Do(ctx, endpoint, nil, nil)
	if err != nil {
		r.logger.Warnw("customer search failed", "error", err)
		return nil
	}
	return parseRecords(data)
}

// parseRecords extracts customer entries from the directory response shape
// {result: {customerDetails: [{name, email, phone}, ...]}}.
func parseRecords(data map[string]any) []Record {
	if _, failed := data["error"]; failed {
		return nil
	}
	result, _ := data["result"].(map[string]any)
	details, _ := result["customerDetails"].([]any)

	var records []Record
	for _, entry := range details {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, Record{
			Name:  stringValue(m["name"]),
			Email: stringValue(m["email"]),
			Phone: stringValue(m["phone"]),
		})
	}
	return records
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
