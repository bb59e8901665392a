package unitu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"unitu-block/config"
	"unitu-block/httpclient"
	"unitu-block/logger"
)

// PostRecord is one notification item as returned by the Unitu API.
// Field names follow the upstream JSON keys verbatim.
type PostRecord struct {
	Avatar          string   `json:"Avatar"`
	FullName        string   `json:"FullName"`
	UniversityTitle string   `json:"UniversityTitle"`
	DateSince       string   `json:"DateSince"`
	Title           string   `json:"Title"`
	Description     string   `json:"Description"`
	Likes           int      `json:"Likes"`
	URL             string   `json:"Url"`
	Departments     []string `json:"Departments"`
}

// FeedResponse is the notification feed payload. Exactly one of three
// shapes arrives from upstream: an error indicator, an empty body, or
// a university domain plus posts. Missing fields decode to their zero
// values and are treated as empty downstream.
type FeedResponse struct {
	Error            string       `json:"error,omitempty"`
	UniversityDomain string       `json:"UniversityDomain,omitempty"`
	Posts            []PostRecord `json:"Posts,omitempty"`
}

// IsEmpty reports whether the response carries neither an error nor
// any feed data.
func (r *FeedResponse) IsEmpty() bool {
	return r == nil || (r.Error == "" && r.UniversityDomain == "" && len(r.Posts) == 0)
}

// Client is a thin wrapper over the Unitu notifications HTTP API.
//
// It never surfaces transport failures to its callers: every failure
// mode is folded into the error-indicator response shape, so the block
// degrades to an empty body instead of breaking the host page.
type Client struct {
	base  *httpclient.BaseClient
	key   string
	quota *QuotaLimiter
}

// NewClient builds a client for the given base URL and API key.
// quota may be nil to disable rate limiting.
func NewClient(baseURL, key string, timeout time.Duration, quota *QuotaLimiter) *Client {
	return &Client{
		base:  httpclient.NewBaseClientWithClient(httpclient.New(httpclient.Config{Timeout: timeout}), baseURL),
		key:   key,
		quota: quota,
	}
}

// New builds a client from the application config. The API key comes
// from the UNITU_API_KEY environment variable.
func New(cfg config.UnituConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.unitu.co.uk"
	}
	return NewClient(
		base,
		os.Getenv("UNITU_API_KEY"),
		time.Duration(cfg.TimeoutSeconds)*time.Second,
		NewQuotaLimiter(cfg.Quota),
	)
}

// FetchNotifications calls GET /api/v1/feed/notifications and returns
// the decoded feed. The returned response is never nil: quota refusal,
// transport errors, unexpected statuses and decode failures all come
// back as the error-indicator shape.
func (c *Client) FetchNotifications(ctx context.Context) *FeedResponse {
	if c.quota != nil {
		ok, err := c.quota.WaitAndReserve(ctx)
		if err != nil {
			return errorResponse(fmt.Errorf("quota wait interrupted: %w", err))
		}
		if !ok {
			logger.Log.Warn("unitu feed fetch skipped: daily quota exhausted")
			return &FeedResponse{Error: "daily request quota exhausted"}
		}
	}

	req, err := c.base.NewRequest(ctx, http.MethodGet, "/api/v1/feed/notifications", nil, nil)
	if err != nil {
		return errorResponse(err)
	}
	req.Header.Set("X-Api-Key", c.key)

	resp, err := c.base.Do(req)
	if err != nil {
		return errorResponse(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return errorResponse(fmt.Errorf("unitu FetchNotifications: status=%d body=%s", resp.StatusCode, string(b)))
	}

	var out FeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return errorResponse(err)
	}
	return &out
}

// Health checks the upstream /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return err
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("unitu Health: status=%d body=%s", resp.StatusCode, string(b))
	}
	return nil
}

func errorResponse(err error) *FeedResponse {
	logger.Log.Errorf("unitu feed fetch failed: %v", err)
	return &FeedResponse{Error: err.Error()}
}
