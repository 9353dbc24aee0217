package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/jverhelst/scorecast/internal/domain/match"
	"github.com/jverhelst/scorecast/internal/platform/logging"
	"github.com/jverhelst/scorecast/internal/platform/resilience"
)

const (
	defaultBaseURL     = "https://api.football-data.org/v4"
	defaultCompetition = "CL"
	authHeader         = "X-Auth-Token"
	maxBodyBytes       = 4 << 20
)

var errFeedTransient = crerr.New("results feed transient failure")

// IsTransient reports whether the error marks a retryable feed failure
// such as a timeout, a 429, or a 5xx.
func IsTransient(err error) bool {
	return crerr.Is(err, errFeedTransient)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Competition    string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the competition schedule and results from the
// football-data.org v4 API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	competition    string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	competition := strings.TrimSpace(cfg.Competition)
	if competition == "" {
		competition = defaultCompetition
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		competition:    competition,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) ListMatches(ctx context.Context) ([]match.Fixture, error) {
	return c.fetchMatches(ctx, nil)
}

func (c *Client) ListFinishedMatches(ctx context.Context) ([]match.Fixture, error) {
	return c.fetchMatches(ctx, map[string]string{"status": match.StatusFinished})
}

func (c *Client) fetchMatches(ctx context.Context, query map[string]string) ([]match.Fixture, error) {
	path := "/competitions/" + c.competition + "/matches"

	var envelope matchesEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return nil, err
	}

	fixtures := make([]match.Fixture, 0, len(envelope.Matches))
	for _, item := range envelope.Matches {
		fixtures = append(fixtures, mapMatchItem(item))
	}
	return fixtures, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "results feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: results feed is temporarily unavailable", errFeedTransient)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && IsTransient(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set(authHeader, c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFeedTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFeedTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d", errFeedTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "results feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func mapMatchItem(item matchItem) match.Fixture {
	fx := match.Fixture{
		ID:       strconv.FormatInt(item.ID, 10),
		HomeTeam: item.HomeTeam.Name,
		AwayTeam: item.AwayTeam.Name,
		Stage:    item.Stage,
		Matchday: item.Matchday,
		Status:   match.NormalizeStatus(item.Status),
	}
	if kickoff, err := time.Parse(time.RFC3339, item.UTCDate); err == nil {
		fx.KickoffAt = kickoff.UTC()
	}
	if item.Score.FullTime.Home != nil && item.Score.FullTime.Away != nil {
		home := *item.Score.FullTime.Home
		away := *item.Score.FullTime.Away
		fx.HomeScore = &home
		fx.AwayScore = &away
	}
	return fx
}
