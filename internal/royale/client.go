// Package royale provides a minimal client for the Clash Royale public API.
package royale

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pable/go-cr-wrapped/internal/model"
)

// API base URLs. The RoyaleAPI proxy avoids the official API's static-IP
// whitelist; the direct endpoint requires a whitelisted address.
const (
	proxyBaseURL  = "https://proxy.royaleapi.dev/v1"
	directBaseURL = "https://api.clashroyale.com/v1"
)

// ErrorKind classifies upstream failures so callers can map them to
// user-facing responses without string matching.
type ErrorKind int

const (
	KindInvalidTag ErrorKind = iota
	KindNotFound
	KindForbidden
	KindRateLimited
	KindTimeout
	KindNetwork
	KindUpstream
)

// APIError is a classified failure from the Clash Royale API boundary.
type APIError struct {
	Kind ErrorKind
	Msg  string
}

func (e *APIError) Error() string { return e.Msg }

// KindOf extracts the error kind, defaulting to KindUpstream for errors
// that did not originate here.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUpstream
}

// Config holds the recognized client options.
type Config struct {
	UseProxy bool
	APIToken string
	Timeout  time.Duration
}

// Client is a rate-limited Clash Royale API client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient returns a client authenticated with cfg.APIToken. The limiter
// keeps us under the developer-key request budget.
func NewClient(cfg Config) *Client {
	base := directBaseURL
	if cfg.UseProxy {
		base = proxyBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		token:   cfg.APIToken,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

// get performs an authenticated GET against the API and decodes the body
// into out. Status codes map to the error taxonomy; resource describes what
// is being fetched for error messages.
func (c *Client) get(ctx context.Context, path, resource string, out interface{}) error {
	if c.token == "" {
		return &APIError{Kind: KindForbidden, Msg: "Clash Royale API token not configured. Set CLASH_ROYALE_API_TOKEN or api_token in the config file."}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return &APIError{Kind: KindTimeout, Msg: fmt.Sprintf("rate limiter wait: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &APIError{Kind: KindUpstream, Msg: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return &APIError{Kind: KindTimeout, Msg: "request timed out, please try again"}
		}
		return &APIError{Kind: KindNetwork, Msg: fmt.Sprintf("network error: %v", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Msg: resource + " not found, check the tag and try again"}
	case http.StatusForbidden:
		return &APIError{Kind: KindForbidden, Msg: "API access forbidden, check your API token"}
	case http.StatusTooManyRequests:
		return &APIError{Kind: KindRateLimited, Msg: "rate limit exceeded, please try again later"}
	default:
		return &APIError{Kind: KindUpstream, Msg: fmt.Sprintf("API error: HTTP %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindUpstream, Msg: fmt.Sprintf("decode %s response: %v", resource, err)}
	}
	return nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// GetPlayer fetches a player profile by tag (with or without '#').
func (c *Client) GetPlayer(ctx context.Context, tag string) (*model.Profile, error) {
	if !ValidateTag(tag) {
		return nil, &APIError{Kind: KindInvalidTag, Msg: "invalid tag format: tags contain only digits and uppercase letters"}
	}
	var p model.Profile
	if err := c.get(ctx, "/players/"+EncodeTag(tag), "player", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBattleLog fetches a player's recent battles, most recent first.
// Private or unavailable battle logs degrade to an empty list rather than
// an error — an empty log is a fully supported input downstream. Only
// invalid tags and missing tokens are reported.
func (c *Client) GetBattleLog(ctx context.Context, tag string) ([]model.Battle, error) {
	if !ValidateTag(tag) {
		return nil, &APIError{Kind: KindInvalidTag, Msg: "invalid tag format: tags contain only digits and uppercase letters"}
	}
	if c.token == "" {
		return nil, &APIError{Kind: KindForbidden, Msg: "Clash Royale API token not configured. Set CLASH_ROYALE_API_TOKEN or api_token in the config file."}
	}
	var battles []model.Battle
	if err := c.get(ctx, "/players/"+EncodeTag(tag)+"/battlelog", "battle log", &battles); err != nil {
		return []model.Battle{}, nil
	}
	if battles == nil {
		battles = []model.Battle{}
	}
	return battles, nil
}
