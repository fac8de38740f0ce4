// Package feed fetches and decodes the LCSD venue, event, and event-dates
// XML feeds over HTTP.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hkculture/venue-etl-service/internal/config"
	"github.com/hkculture/venue-etl-service/internal/domain"
	"github.com/hkculture/venue-etl-service/internal/observability"
)

// Client retrieves the three public XML feeds. It implements
// pipeline.FeedSource.
type Client struct {
	venuesURL     string
	eventsURL     string
	eventDatesURL string
	httpClient    *http.Client
	metrics       *observability.Metrics
	logger        *slog.Logger
}

// NewClient creates a feed client with a per-request timeout from the
// configured fetch_timeout.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		venuesURL:     cfg.VenuesURL,
		eventsURL:     cfg.EventsURL,
		eventDatesURL: cfg.EventDatesURL,
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// FetchVenues retrieves and decodes the venues feed.
func (c *Client) FetchVenues(ctx context.Context) (domain.VenuesFeed, error) {
	var feed domain.VenuesFeed
	if err := c.fetch(ctx, "venues", c.venuesURL, &feed); err != nil {
		return domain.VenuesFeed{}, err
	}
	return feed, nil
}

// FetchEvents retrieves and decodes the events feed.
func (c *Client) FetchEvents(ctx context.Context) (domain.EventsFeed, error) {
	var feed domain.EventsFeed
	if err := c.fetch(ctx, "events", c.eventsURL, &feed); err != nil {
		return domain.EventsFeed{}, err
	}
	return feed, nil
}

// FetchEventDates retrieves and decodes the event-dates feed.
func (c *Client) FetchEventDates(ctx context.Context) (domain.EventDatesFeed, error) {
	var feed domain.EventDatesFeed
	if err := c.fetch(ctx, "event_dates", c.eventDatesURL, &feed); err != nil {
		return domain.EventDatesFeed{}, err
	}
	return feed, nil
}

// fetch GETs one feed and decodes the whole body into dst. Transport
// failures, timeouts, and non-2xx statuses wrap domain.ErrNetwork; malformed
// XML wraps domain.ErrParse.
func (c *Client) fetch(ctx context.Context, name, url string, dst any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", name, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", domain.ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: status %d", domain.ErrNetwork, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s body: %v", domain.ErrNetwork, name, err)
	}

	if err := xml.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: decode %s feed: %v", domain.ErrParse, name, err)
	}

	c.metrics.FeedFetchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	c.logger.Debug("feed fetched", "feed", name, "bytes", len(body), "duration", time.Since(start))
	return nil
}
