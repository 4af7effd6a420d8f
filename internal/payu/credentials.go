package payu

// Credentials holds the merchant identity sourced once at process start.
// Every field may be empty: without the ClientID/ClientSecret pair the client
// cannot obtain session tokens, and without AuthToken the static-token entry
// point is unavailable. Both credential kinds may be configured at once;
// callers pick the entry point that matches the API surface they target.
type Credentials struct {
	MerchantID   string
	ClientID     string
	ClientSecret string
	AuthToken    string
}

func (c Credentials) hasOAuthPair() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
