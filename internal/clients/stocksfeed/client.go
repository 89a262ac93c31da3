// Package stocksfeed provides a client for the external asset price feed
package stocksfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/folium-app/folium/internal/common"
	"github.com/folium-app/folium/internal/interfaces"
	"github.com/folium-app/folium/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
// The feed serializes prices as strings ("Current Price": "173.52").
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("malformed price %q: %w", s, err)
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultBaseURL   = "https://woxa-stocks-test-data.yuttanar.workers.dev"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the AssetFeedClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new feed client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a feed error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("feed error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// rawAsset is the feed's wire shape. All fields are strings.
type rawAsset struct {
	Symbol      string      `json:"Symbol"`
	Name        string      `json:"Name"`
	Description string      `json:"Description"`
	Price       flexFloat64 `json:"Current Price"`
	Type        string      `json:"Type"`
	LogoURL     string      `json:"Logo URL"`
}

// feedResponse wraps the feed's top-level envelope.
type feedResponse struct {
	Data []rawAsset `json:"data"`
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", reqURL).Msg("Feed request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetAssets retrieves the full tradable asset list.
func (c *Client) GetAssets(ctx context.Context) ([]*models.Asset, error) {
	var resp feedResponse
	if err := c.get(ctx, "/", &resp); err != nil {
		return nil, err
	}
	return convertAssets(resp.Data), nil
}

// GetAssetsByType retrieves assets filtered by type on the feed side.
func (c *Client) GetAssetsByType(ctx context.Context, assetType string) ([]*models.Asset, error) {
	var resp feedResponse
	path := "/type/" + url.PathEscape(assetType)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return convertAssets(resp.Data), nil
}

func convertAssets(raw []rawAsset) []*models.Asset {
	assets := make([]*models.Asset, 0, len(raw))
	for _, r := range raw {
		assets = append(assets, &models.Asset{
			Symbol:      r.Symbol,
			Name:        r.Name,
			Description: r.Description,
			Price:       float64(r.Price),
			Type:        r.Type,
			Logo:        r.LogoURL,
		})
	}
	return assets
}

// Ensure Client implements AssetFeedClient
var _ interfaces.AssetFeedClient = (*Client)(nil)
