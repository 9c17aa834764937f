package sportradar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/gridirondata/ncaafb-etl/internal/etl/payload"
	"github.com/gridirondata/ncaafb-etl/internal/platform/logging"
	"github.com/gridirondata/ncaafb-etl/internal/platform/resilience"
)

const (
	defaultBaseURL  = "https://api.sportradar.us/ncaafb/trial/v7/en"
	defaultPoll     = "AP25"
	maxResponseSize = 20 << 20
)

// Rate-limit refusals surface identically whether the provider answers
// with HTTP 429 or with a 200 whose body message says "Too Many
// Requests"; callers retry on ErrRateLimited and nothing else.
var (
	ErrRateLimited = crerr.New("provider rate limited")
	ErrTransport   = crerr.New("provider request failed")
)

const rateLimitedBodyMessage = "Too Many Requests"

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

// Client fetches NCAAFB payloads from the provider REST API. All
// credential state lives on the client; there is no package-level
// configuration.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	limiter        *rate.Limiter
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("provider api key is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		limiter:        rate.NewLimiter(rate.Limit(rps), burst),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}, nil
}

// LeagueHierarchy returns the conference/division/team tree.
func (c *Client) LeagueHierarchy(ctx context.Context) (payload.Document, error) {
	return c.getJSON(ctx, "/league/hierarchy.json")
}

// Seasons returns the league season list.
func (c *Client) Seasons(ctx context.Context) (payload.Document, error) {
	return c.getJSON(ctx, "/league/seasons.json")
}

// TeamRoster returns the full roster payload for one team.
func (c *Client) TeamRoster(ctx context.Context, teamID string) (payload.Document, error) {
	if strings.TrimSpace(teamID) == "" {
		return nil, fmt.Errorf("team id is required")
	}
	return c.getJSON(ctx, "/teams/"+url.PathEscape(teamID)+"/full_roster.json")
}

// PlayerProfile returns the profile payload for one player.
func (c *Client) PlayerProfile(ctx context.Context, playerID string) (payload.Document, error) {
	if strings.TrimSpace(playerID) == "" {
		return nil, fmt.Errorf("player id is required")
	}
	return c.getJSON(ctx, "/players/"+url.PathEscape(playerID)+"/profile.json")
}

// Rankings returns the poll rankings for a season year. An empty poll
// alias falls back to the AP poll.
func (c *Client) Rankings(ctx context.Context, pollAlias string, year int) (payload.Document, error) {
	if year <= 0 {
		return nil, fmt.Errorf("season year must be greater than zero")
	}
	alias := strings.TrimSpace(pollAlias)
	if alias == "" {
		alias = defaultPoll
	}
	return c.getJSON(ctx, fmt.Sprintf("/polls/%s/%d/rankings.json", url.PathEscape(alias), year))
}

func (c *Client) getJSON(ctx context.Context, path string) (payload.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "provider circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: circuit open", ErrTransport)
		}
	}

	out, err, _ := c.flight.Do(path, func() (any, error) {
		doc, reqErr := c.executeRequest(ctx, path)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, ErrTransport) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return doc, reqErr
	})
	if err != nil {
		return nil, err
	}

	doc, ok := out.(payload.Document)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return doc, nil
}

func (c *Client) executeRequest(ctx context.Context, path string) (payload.Document, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: send request: %s", ErrTransport, sanitizeSensitiveText(err.Error(), c.apiKey))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrTransport, err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status=429 path=%s", ErrRateLimited, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d path=%s body=%s", ErrTransport, resp.StatusCode, path, abbreviateBody(raw))
	}

	var doc payload.Document
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode provider payload: %v", ErrTransport, err)
	}

	// The provider sometimes answers 200 with a refusal body instead
	// of a 429.
	if msg := doc.StringAt("message"); msg != nil && *msg == rateLimitedBodyMessage {
		return nil, fmt.Errorf("%w: body message path=%s", ErrRateLimited, path)
	}

	return doc, nil
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}
