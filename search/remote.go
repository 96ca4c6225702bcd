package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/poiesic/prodir/core"
)

const defaultRemoteTimeout = 30 * time.Second

// RemoteClient posts search requests to a configured search API endpoint.
// Outbound calls are rate-limited so an impatient user hammering the search
// button cannot flood the backend.
type RemoteClient struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// RemoteOption configures a RemoteClient.
type RemoteOption func(*RemoteClient)

// WithHTTPClient sets a custom HTTP client. Default has a 30s timeout.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(c *RemoteClient) {
		if client != nil {
			c.client = client
		}
	}
}

// WithRateLimit caps outbound request throughput. Default is 2 requests per
// second with a burst of 5.
func WithRateLimit(limit rate.Limit, burst int) RemoteOption {
	return func(c *RemoteClient) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithRemoteLogger sets a custom logger. Default is slog.Default().
func WithRemoteLogger(logger *slog.Logger) RemoteOption {
	return func(c *RemoteClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRemoteClient creates a client for the given search endpoint URL.
func NewRemoteClient(endpoint string, opts ...RemoteOption) (*RemoteClient, error) {
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}

	c := &RemoteClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultRemoteTimeout},
		limiter:  rate.NewLimiter(rate.Limit(2), 5),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// remoteCompany carries the wire shape of a result entry: a company record
// with the ranking score the backend attached to it.
type remoteCompany struct {
	core.Company
	MatchScore int `json:"matchScore,omitempty"`
}

// RemoteResponse is the decoded search API response.
type RemoteResponse struct {
	Companies []*core.Company
	Total     int
	Page      int

	scores []int
}

// Scores returns the backend-assigned score for the i-th company, or 0.
func (r *RemoteResponse) Scores(i int) int {
	if i < 0 || i >= len(r.scores) {
		return 0
	}
	return r.scores[i]
}

// Search posts the request and decodes the ranked response.
// A non-2xx status is surfaced as ErrRemoteStatus.
func (c *RemoteClient) Search(ctx context.Context, req core.SearchRequest) (*RemoteResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrRemoteStatus, resp.StatusCode)
	}

	var wire struct {
		Companies []*remoteCompany `json:"companies"`
		Total     int              `json:"total"`
		Page      int              `json:"page"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, err
	}

	out := &RemoteResponse{
		Companies: make([]*core.Company, len(wire.Companies)),
		Total:     wire.Total,
		Page:      wire.Page,
		scores:    make([]int, len(wire.Companies)),
	}
	for i, rc := range wire.Companies {
		company := rc.Company
		out.Companies[i] = &company
		out.scores[i] = rc.MatchScore
	}
	return out, nil
}
