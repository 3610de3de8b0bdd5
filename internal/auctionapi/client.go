package auctionapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dario.cat/mergo"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/guttosm/auctionreport/config"
	"github.com/guttosm/auctionreport/internal/middleware"
)

var (
	// ErrFetchFailed means neither the sold nor the unsold request produced a usable list.
	ErrFetchFailed = errors.New("auction api: both lot requests failed")
	// ErrNoLots means the API answered but returned no lots at all.
	ErrNoLots = errors.New("auction api: no lots found")
)

const (
	soldFlag      = "S"
	unsoldFlag    = "N"
	maxRedirects  = 10
	bodySnippetSz = 200
)

// defaultHeaders are sent unless the configuration overrides them.
var defaultHeaders = map[string]string{
	"Accept":       "application/json",
	"Content-Type": "application/x-www-form-urlencoded",
	"User-Agent":   "auctionreport/1.0",
}

// Client fetches lots and auction metadata from the auction house API.
type Client struct {
	http          *resty.Client
	lotsURL       string
	auctionURL    string
	auctioneerURL string
	log           zerolog.Logger
}

// NewClient builds a Client from the API configuration.
//
// Behavior:
//   - Merges cfg.Headers over defaultHeaders, matching names case-insensitively.
//   - Applies the per-request timeout ceiling and follows up to 10 redirects.
//   - Disables TLS verification when cfg.InsecureSkipVerify is set.
//   - Installs request-id and request-log middlewares.
func NewClient(cfg config.APIConfig, log zerolog.Logger) (*Client, error) {
	headers := map[string]string{}
	for k, v := range cfg.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	if err := mergo.Merge(&headers, defaultHeaders); err != nil {
		return nil, fmt.Errorf("merge headers: %w", err)
	}

	hc := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeaders(headers).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	if cfg.InsecureSkipVerify {
		hc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // test environments only
	}
	hc.OnBeforeRequest(middleware.RequestID())
	hc.OnAfterResponse(middleware.RequestLogger(log))
	hc.OnError(middleware.ErrorLogger(log))

	return &Client{
		http:          hc,
		lotsURL:       cfg.URL,
		auctionURL:    cfg.AuctionURL,
		auctioneerURL: cfg.AuctioneerURL,
		log:           log,
	}, nil
}

// FetchLots returns the sold lots followed by the unsold lots of an auction.
//
// Each half is requested once. A half that fails (transport error, timeout,
// non-200 status, body that is not a JSON array) is logged and contributes no
// lots; the other half is still used.
//
// Returns:
//   - the context error (wrapped) when ctx is cancelled or expires.
//   - ErrFetchFailed when both halves fail.
//   - ErrNoLots when the API answered but both lists are empty.
func (c *Client) FetchLots(ctx context.Context, auctionID string) ([]json.RawMessage, error) {
	c.log.Info().Str("auction_id", auctionID).Msg("fetching lots")

	var (
		all      []json.RawMessage
		failures int
	)
	for _, half := range []struct {
		flag  string
		label string
	}{
		{soldFlag, "sold"},
		{unsoldFlag, "unsold"},
	} {
		items, err := c.fetchHalf(ctx, auctionID, half.flag)
		if err != nil {
			failures++
			c.log.Error().Err(err).Str("auction_id", auctionID).Str("half", half.label).Msg("lot request failed")
			continue
		}
		c.log.Info().Str("auction_id", auctionID).Str("half", half.label).Int("lots", len(items)).Msg("lots received")
		all = append(all, items...)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch interrupted: %w", err)
	}
	if failures == 2 {
		return nil, ErrFetchFailed
	}
	if len(all) == 0 {
		return nil, ErrNoLots
	}
	c.log.Info().Str("auction_id", auctionID).Int("lots", len(all)).Msg("lots fetched")
	return all, nil
}

func (c *Client) fetchHalf(ctx context.Context, auctionID, flag string) ([]json.RawMessage, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"url_leiloeiro": c.auctioneerURL,
			"leilao_id":     auctionID,
			"nm_vendidos":   flag,
		}).
		Post(c.lotsURL)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", res.StatusCode(), snippet(res.Body()))
	}
	return decodeArray(res.Body())
}

// FetchAuctionName returns nm_leilao for the auction, or "" with an error when
// the metadata endpoint is unavailable.
func (c *Client) FetchAuctionName(ctx context.Context, auctionID string) (string, error) {
	if c.auctionURL == "" {
		return "", errors.New("auction metadata url not configured")
	}
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"leilao_id": auctionID}).
		Post(c.auctionURL)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", res.StatusCode(), snippet(res.Body()))
	}

	var meta struct {
		Name string `json:"nm_leilao"`
	}
	if err := json.Unmarshal(res.Body(), &meta); err != nil {
		return "", fmt.Errorf("decode auction: %w", err)
	}
	return meta.Name, nil
}

// decodeArray accepts only a top-level JSON array; objects, scalars and null
// are rejected so an API error payload is never mistaken for an empty list.
func decodeArray(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("response is not a JSON array: %s", snippet(body))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode lots: %w", err)
	}
	return items, nil
}

func snippet(body []byte) string {
	if len(body) > bodySnippetSz {
		return string(body[:bodySnippetSz])
	}
	return string(body)
}
