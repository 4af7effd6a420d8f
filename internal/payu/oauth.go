package payu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTokenURL is the production identity-provider token endpoint.
const DefaultTokenURL = "https://accounts.payu.in/oauth/token"

// tokenScope is the fixed scope set requested on every client-credentials
// exchange.
const tokenScope = "create_payment_links read_transactions read_payment_links read_invoices"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// refreshToken performs one client-credentials exchange and installs the
// result in the session. Any failure returns false and leaves the previously
// held token untouched, expired or not.
func (c *Client) refreshToken(ctx context.Context) bool {
	if !c.creds.hasOAuthPair() {
		c.logger.Error("gateway client id/secret not configured")
		return false
	}

	c.logger.Info("refreshing gateway access token")

	form := url.Values{}
	form.Set("client_id", c.creds.ClientID)
	form.Set("client_secret", c.creds.ClientSecret)
	form.Set("grant_type", "client_credentials")
	form.Set("scope", tokenScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.Errorw("token request build failed", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorw("token refresh failed", "cause", classifyTransport(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		c.logger.Errorw("token endpoint returned error", "status", resp.StatusCode)
		return false
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		c.logger.Errorw("token response decode failed", "error", err)
		return false
	}
	if tok.AccessToken == "" {
		c.logger.Error("token endpoint returned empty access token")
		return false
	}
	// the type is installed together with the token; a provider that omits
	// it still gets an Authorization header built
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}

	now := c.now()
	c.session.Replace(tok.AccessToken, tok.TokenType, time.Duration(tok.ExpiresIn)*time.Second, now)
	c.logger.Infow("gateway access token refreshed",
		"expires_at", now.Add(time.Duration(tok.ExpiresIn)*time.Second).Format(time.RFC3339))
	return true
}

// ensureToken guarantees a usable session token, refreshing when the held one
// is absent or inside the refresh margin. Concurrent callers share a single
// in-flight refresh.
func (c *Client) ensureToken(ctx context.Context) bool {
	if c.session.Usable(c.now()) {
		return true
	}
	ok, _, _ := c.refresh.Do("token", func() (any, error) {
		// a caller that waited here may find the token already replaced
		if c.session.Usable(c.now()) {
			return true, nil
		}
		return c.refreshToken(ctx), nil
	})
	return ok.(bool)
}
