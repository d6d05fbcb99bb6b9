// Package daemon is the HTTP client for mtga-tracker-daemon, the local
// companion process that reads the running Arena client's collection
// and wildcard inventory.
package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ramonehamilton/decklist-tracker/internal/mtga/wildcards"
)

// ClientConfig holds configuration for the daemon HTTP client.
type ClientConfig struct {
	// BaseURL is the base URL of the daemon API (e.g., "http://localhost:9999")
	BaseURL string

	// Timeout is the timeout for individual requests
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts
	MaxRetries int

	// RetryBaseDelay is the base delay for exponential backoff
	RetryBaseDelay time.Duration
}

// DefaultClientConfig returns a ClientConfig with sensible defaults.
func DefaultClientConfig(port int) *ClientConfig {
	return &ClientConfig{
		BaseURL:        fmt.Sprintf("http://localhost:%d", port),
		Timeout:        10 * time.Second,
		MaxRetries:     3,
		RetryBaseDelay: 500 * time.Millisecond,
	}
}

// Client is an HTTP client for communicating with mtga-tracker-daemon.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new daemon HTTP client.
func NewClient(config *ClientConfig) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Status represents the daemon's status response.
type Status struct {
	Status        string `json:"status"`
	Version       string `json:"daemonVersion"`
	MTGAConnected bool   `json:"isRunning"`
	ProcessID     int    `json:"processId"`
	Updating      bool   `json:"updating"`
}

// CardCounts is the player's full collection as reported by Arena:
// arena card ID to owned count.
type CardCounts struct {
	Cards map[int]int `json:"cards"`
}

// PlayerInventory is the player's currency inventory. Only the
// wildcard pools matter to the tracker; the rest is carried for
// display.
type PlayerInventory struct {
	Gold       int `json:"gold"`
	Gems       int `json:"gems"`
	CommonWC   int `json:"wcCommon"`
	UncommonWC int `json:"wcUncommon"`
	RareWC     int `json:"wcRare"`
	MythicWC   int `json:"wcMythic"`
}

// Wallet converts the daemon inventory into the wildcard wallet used
// by the cost model.
func (inv *PlayerInventory) Wallet() wildcards.Wallet {
	return wildcards.Wallet{
		Common:   inv.CommonWC,
		Uncommon: inv.UncommonWC,
		Rare:     inv.RareWC,
		Mythic:   inv.MythicWC,
	}
}

// GetStatus retrieves the daemon's current status.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.doRequest(ctx, http.MethodGet, "/status", &status); err != nil {
		return nil, fmt.Errorf("get daemon status: %w", err)
	}
	return &status, nil
}

// GetCards retrieves the player's full card collection.
func (c *Client) GetCards(ctx context.Context) (*CardCounts, error) {
	var counts CardCounts
	if err := c.doRequest(ctx, http.MethodGet, "/cards", &counts); err != nil {
		return nil, fmt.Errorf("get card collection: %w", err)
	}
	return &counts, nil
}

// GetInventory retrieves the player's currency and wildcard inventory.
func (c *Client) GetInventory(ctx context.Context) (*PlayerInventory, error) {
	var inventory PlayerInventory
	if err := c.doRequest(ctx, http.MethodGet, "/inventory", &inventory); err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inventory, nil
}

// IsHealthy checks if the daemon is responding.
func (c *Client) IsHealthy(ctx context.Context) bool {
	_, err := c.GetStatus(ctx)
	return err == nil
}

// doRequest performs an HTTP request with retry logic. Server errors
// (5xx) and transport failures are retried with exponential backoff;
// everything else fails immediately.
func (c *Client) doRequest(ctx context.Context, method, path string, result interface{}) error {
	url := c.config.BaseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.config.RetryBaseDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		if resp.StatusCode >= 500 {
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
		}

		err = json.NewDecoder(resp.Body).Decode(result)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return lastErr
}

// SetBaseURL updates the base URL for the client.
func (c *Client) SetBaseURL(url string) {
	c.config.BaseURL = url
}
