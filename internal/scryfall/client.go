// Package scryfall is the HTTP client for the Scryfall card database,
// the tracker's external source of card identity, rarity and printing
// data.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.scryfall.com"
	rateLimitDelay = 100 * time.Millisecond // Scryfall asks for 50-100ms between requests
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// Client is a rate-limited Scryfall API client.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// NewClient creates a Scryfall client with the public API base URL.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// 1 request per 100ms = 10 req/sec
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "decklist-tracker/1.0",
	}
}

// NewClientWithBaseURL creates a client against a different endpoint,
// used by tests to point at an httptest server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// CardByArenaID retrieves the printing behind an MTGA Arena ID.
func (c *Client) CardByArenaID(ctx context.Context, arenaID int) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/arena/%d", c.baseURL, arenaID)

	var card Card
	if err := c.doRequest(ctx, endpoint, &card); err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get card by arena ID %d: %w", arenaID, err)
	}
	return &card, nil
}

// CardNamed retrieves a single card by exact name, any printing.
func (c *Client) CardNamed(ctx context.Context, name string) (*Card, error) {
	endpoint := fmt.Sprintf("%s/cards/named?exact=%s", c.baseURL, url.QueryEscape(name))

	var card Card
	if err := c.doRequest(ctx, endpoint, &card); err != nil {
		if IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get card named %q: %w", name, err)
	}
	return &card, nil
}

// CardPrintings retrieves every Arena printing of the named card, from
// paginated /cards/search results. A card unknown to Scryfall yields
// an empty slice and no error.
func (c *Client) CardPrintings(ctx context.Context, name string) ([]*Card, error) {
	query := fmt.Sprintf("!%q game:arena", name)
	endpoint := fmt.Sprintf("%s/cards/search?unique=prints&q=%s", c.baseURL, url.QueryEscape(query))

	var printings []*Card
	for endpoint != "" {
		var page SearchResult
		if err := c.doRequest(ctx, endpoint, &page); err != nil {
			if IsNotFound(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("search printings of %q: %w", name, err)
		}
		printings = append(printings, page.Data...)
		if !page.HasMore {
			break
		}
		endpoint = page.NextPage
	}
	return printings, nil
}

// doRequest performs a GET with rate limiting, retries and exponential
// backoff, decoding a successful JSON body into result.
func (c *Client) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("read response body: %w", readErr)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("parse JSON response: %w", err)
			}
			return nil

		case http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		case http.StatusNotFound:
			return &NotFoundError{URL: endpoint}

		default:
			var apiErr APIError
			if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
				return &apiErr
			}
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}
