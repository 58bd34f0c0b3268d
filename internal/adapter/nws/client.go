// Package nws is the client for the National Weather Service API. Alert
// collections are requested as JSON-LD so records arrive flat under "@graph"
// instead of nested GeoJSON properties.
package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/nws-alert-relay/internal/domain"
)

// FetchError wraps an upstream failure. The previous snapshot is untouched
// when a fetch fails, so the scheduler's restart is the only recovery needed.
type FetchError struct {
	Feed string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Feed, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to the NWS API. The API requires a contact-identifying
// User-Agent and throttles anonymous traffic hard.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an NWS API client.
func NewClient(baseURL, userAgent string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

type graphResponse struct {
	Graph []domain.RawAlert `json:"@graph"`
}

// ActiveAlerts fetches every alert currently in effect.
func (c *Client) ActiveAlerts(ctx context.Context) ([]domain.RawAlert, error) {
	return c.fetchGraph(ctx, "alerts", c.baseURL+"/alerts/active")
}

// CancelledAlerts fetches cancellation products issued since the given time.
// Cancellations drop off the active endpoint immediately, so without this
// query a cancelled warning would never be announced.
func (c *Client) CancelledAlerts(ctx context.Context, since time.Time) ([]domain.RawAlert, error) {
	params := url.Values{
		"message_type": {"cancel"},
		"start":        {since.UTC().Format(time.RFC3339)},
	}
	return c.fetchGraph(ctx, "cancel", c.baseURL+"/alerts?"+params.Encode())
}

func (c *Client) fetchGraph(ctx context.Context, feed, fullURL string) ([]domain.RawAlert, error) {
	var resp graphResponse
	if err := c.getJSON(ctx, fullURL, &resp); err != nil {
		return nil, &FetchError{Feed: feed, Err: err}
	}
	return resp.Graph, nil
}

// ActiveAlertCount returns the number of alerts currently in effect, as
// reported by the dedicated count endpoint.
func (c *Client) ActiveAlertCount(ctx context.Context) (int, error) {
	var resp struct {
		Total int `json:"total"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/alerts/active/count", &resp); err != nil {
		return 0, &FetchError{Feed: "count", Err: err}
	}
	return resp.Total, nil
}

// GridPoint is the forecast grid metadata for a coordinate.
type GridPoint struct {
	ForecastURL  string `json:"forecast"`
	TimeZone     string `json:"timeZone"`
	RadarStation string `json:"radarStation"`
}

// ForecastPeriod is one named period of a gridpoint forecast.
type ForecastPeriod struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	ShortForecast    string `json:"shortForecast"`
	DetailedForecast string `json:"detailedForecast"`
}

// Point resolves a coordinate to its forecast grid.
func (c *Client) Point(ctx context.Context, lat, lon float64) (GridPoint, error) {
	u := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, lat, lon)
	var gp GridPoint
	if err := c.getJSON(ctx, u, &gp); err != nil {
		return GridPoint{}, &FetchError{Feed: "points", Err: err}
	}
	return gp, nil
}

// Forecast fetches the period forecast for a previously resolved grid point.
func (c *Client) Forecast(ctx context.Context, gp GridPoint) ([]ForecastPeriod, error) {
	var resp struct {
		Periods []ForecastPeriod `json:"periods"`
	}
	if err := c.getJSON(ctx, gp.ForecastURL, &resp); err != nil {
		return nil, &FetchError{Feed: "forecast", Err: err}
	}
	return resp.Periods, nil
}

// GlossaryTerm is one entry of the NWS glossary.
type GlossaryTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Glossary fetches the NWS term glossary.
func (c *Client) Glossary(ctx context.Context) ([]GlossaryTerm, error) {
	var resp struct {
		Glossary []GlossaryTerm `json:"glossary"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/glossary", &resp); err != nil {
		return nil, &FetchError{Feed: "glossary", Err: err}
	}
	return resp.Glossary, nil
}

func (c *Client) getJSON(ctx context.Context, fullURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/ld+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("NWS API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
