package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cp-portal/internal/domain"
	"golang.org/x/time/rate"
)

// Client looks up public Codeforces profiles.
// Calls are throttled to one per interval, as the public API asks.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(baseURL string, interval time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

type userInfoResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  []struct {
		Handle    string `json:"handle"`
		FirstName string `json:"firstName"`
		Rating    int    `json:"rating"`
	} `json:"result"`
}

// FetchProfile returns the profile for handle.
// Transport failures and unreadable replies wrap domain.ErrExternalLookupFailed;
// a FAILED status or an empty result wraps domain.ErrExternalProfileNotFound.
func (c *Client) FetchProfile(ctx context.Context, handle string) (*domain.ExternalProfile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("codeforces throttle: %w", domain.ErrExternalLookupFailed)
	}

	u := c.baseURL + "/user.info?" + url.Values{"handles": {handle}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build codeforces request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("codeforces request failed", "handle", handle, "err", err)
		return nil, fmt.Errorf("codeforces user.info: %w", domain.ErrExternalLookupFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("codeforces user.info status %d: %w", resp.StatusCode, domain.ErrExternalLookupFailed)
	}

	var body userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode codeforces reply: %w", domain.ErrExternalLookupFailed)
	}
	if body.Status != "OK" || len(body.Result) == 0 {
		return nil, fmt.Errorf("codeforces handle %q (%s): %w", handle, body.Comment, domain.ErrExternalProfileNotFound)
	}

	r := body.Result[0]
	return &domain.ExternalProfile{Handle: r.Handle, DisplayName: r.FirstName, Rating: r.Rating}, nil
}
