package teamcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	service "github.com/okian/fpl-tracker/internal/app"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

type addTeamRequest struct {
	TeamID string `json:"team_id"`
}

type addTeamResponse struct {
	TeamID  string          `json:"team_id"`
	Outcome service.Outcome `json:"outcome"`
	Seasons int             `json:"seasons"`
	Message string          `json:"message"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// addTeam submits one team ID and returns its result and the service's message.
func addTeam(ctx context.Context, client *HTTPClient, url, teamID string) (string, string) {
	resp, err := client.Post(ctx, url, addTeamRequest{TeamID: teamID})
	if err != nil {
		return resultFailed, err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resultFailed, readError(resp)
	}

	var ack addTeamResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return resultFailed, fmt.Sprintf("decode response: %v", err)
	}
	if ack.Outcome == service.OutcomeNoSeasons {
		return resultSkipped, ack.Message
	}
	return resultAdded, ack.Message
}

// fetchTables reads both pivoted tables from the service.
func fetchTables(ctx context.Context, client *HTTPClient, url string) (service.View, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return service.View{}, fmt.Errorf("failed to fetch tables: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return service.View{}, errors.New(readError(resp))
	}
	var view service.View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return service.View{}, fmt.Errorf("failed to decode tables: %w", err)
	}
	return view, nil
}

// readError extracts the message from an error response.
func readError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return fmt.Sprintf("%d %s", resp.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
