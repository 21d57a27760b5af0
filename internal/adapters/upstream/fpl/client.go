// Package fpl fetches entry history from the Fantasy Premier League API.
package fpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/fpl-tracker/internal/domain/model"
	"github.com/okian/fpl-tracker/pkg/logger"
	"github.com/okian/fpl-tracker/pkg/metrics"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL   string
	UserAgent string
	// Timeout applies only when HTTPClient is nil. Zero means no timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     logger.Logger
}

// Client fetches a team's past seasons.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
	logger     logger.Logger
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  cfg.UserAgent,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if cfg.HTTPClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if c.logger == nil {
		c.logger = logger.Nop()
	}
	return c
}

// HistoryURL returns the history endpoint for teamID.
func (c *Client) HistoryURL(teamID model.TeamID) string {
	return c.baseURL + fmt.Sprintf(historyPath, url.PathEscape(string(teamID)))
}

// FetchHistory performs one GET against the team's history endpoint.
//
// A non-200 response returns *StatusError. Network failures wrap ErrTransport
// and a body that does not decode returns *ParseError. Nothing is retried.
func (c *Client) FetchHistory(ctx context.Context, teamID model.TeamID) (*model.History, error) {
	if teamID == "" {
		return nil, ErrEmptyTeamID
	}

	start := time.Now()
	target := c.HistoryURL(teamID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for team ID %s: %w", teamID, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(ctx, teamID, metrics.OutcomeTransportError, start)
		return nil, fmt.Errorf("%w: GET %s: %w", ErrTransport, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		c.observe(ctx, teamID, metrics.OutcomeStatusError, start,
			logger.Int("status_code", resp.StatusCode),
			logger.String("body", strings.TrimSpace(string(body))),
		)
		return nil, &StatusError{TeamID: string(teamID), StatusCode: resp.StatusCode}
	}

	var history model.History
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		c.observe(ctx, teamID, metrics.OutcomeParseError, start, logger.Error(err))
		return nil, &ParseError{TeamID: string(teamID), Err: err}
	}

	c.observe(ctx, teamID, metrics.OutcomeOK, start, logger.Int("seasons", len(history.Past)))
	return &history, nil
}

func (c *Client) observe(ctx context.Context, teamID model.TeamID, outcome string, start time.Time, fields ...logger.Field) {
	elapsed := time.Since(start)
	metrics.RecordUpstreamRequest(outcome, float64(elapsed.Milliseconds()))

	fields = append(fields,
		logger.String("team_id", string(teamID)),
		logger.String("outcome", outcome),
		logger.Duration("elapsed", elapsed),
	)
	if outcome == metrics.OutcomeOK {
		c.logger.Debug(ctx, "fetched entry history", fields...)
		return
	}
	c.logger.Warn(ctx, "entry history request failed", fields...)
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}
