// Package pipeline orchestrates the fetch-parse-rank-load ingestion run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hkculture/venue-etl-service/internal/domain"
	"github.com/hkculture/venue-etl-service/internal/observability"
)

// FeedSource retrieves the three raw feeds. The fetches run sequentially;
// a run owns all three results before ranking starts.
type FeedSource interface {
	FetchVenues(ctx context.Context) (domain.VenuesFeed, error)
	FetchEventDates(ctx context.Context) (domain.EventDatesFeed, error)
	FetchEvents(ctx context.Context) (domain.EventsFeed, error)
}

// Store is the persistent venue/event collection the loader writes to.
// ReplaceAll must be atomic: on error nothing may remain committed.
type Store interface {
	Counts(ctx context.Context) (venues, events int64, err error)
	ReplaceAll(ctx context.Context, venues []domain.StoredVenue, events []domain.StoredEvent) error
}

// Result reports the outcome of one ingestion run.
type Result struct {
	Skipped      bool
	VenuesLoaded int
	EventsLoaded int
	Message      string
	LoadedAt     time.Time
}

// Ingestor performs the one-shot idempotent seed of the venue and event
// collections. A populated store makes Run a no-op by design; re-seeding
// requires clearing the store out of band.
//
// The populated check and the load are not atomic against concurrent
// ingestors. A single Ingestor owns the collections for the duration of its
// run; callers invoke Run once at process startup, never per request.
type Ingestor struct {
	source    FeedSource
	store     Store
	resolver  domain.AreaResolver
	logger    *slog.Logger
	metrics   *observability.Metrics
	minEvents int
	topVenues int
	ready     atomic.Bool
}

// New creates an Ingestor with the given collaborators and selection bounds.
func New(source FeedSource, store Store, resolver domain.AreaResolver, logger *slog.Logger, metrics *observability.Metrics, minEvents, topVenues int) *Ingestor {
	return &Ingestor{
		source:    source,
		store:     store,
		resolver:  resolver,
		logger:    logger,
		metrics:   metrics,
		minEvents: minEvents,
		topVenues: topVenues,
	}
}

// CheckReadiness returns nil once an ingestion run has completed, whether it
// loaded or skipped.
func (i *Ingestor) CheckReadiness(_ context.Context) error {
	if !i.ready.Load() {
		return errors.New("ingestion has not completed yet")
	}
	return nil
}

// Run executes one ingestion attempt. If the store is already populated the
// run skips and reports existing counts; otherwise it fetches and parses the
// three feeds, ranks venues, and replaces both collections in one atomic
// load. Any fetch, parse, or store error aborts the whole run.
func (i *Ingestor) Run(ctx context.Context) (Result, error) {
	start := time.Now()

	venueCount, eventCount, err := i.store.Counts(ctx)
	if err != nil {
		i.metrics.IngestRuns.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("check store state: %w", err)
	}

	if venueCount > 0 || eventCount > 0 {
		i.logger.Info("store already populated, skipping ingestion",
			"venues", venueCount, "events", eventCount)
		i.metrics.IngestRuns.WithLabelValues("skipped").Inc()
		i.ready.Store(true)
		return Result{
			Skipped:      true,
			VenuesLoaded: int(venueCount),
			EventsLoaded: int(eventCount),
			Message:      fmt.Sprintf("already populated: %d venues, %d events", venueCount, eventCount),
		}, nil
	}

	result, err := i.fetchAndLoad(ctx)
	if err != nil {
		outcome := "error"
		if errors.Is(err, domain.ErrNoQualifyingVenues) {
			outcome = "no_venues"
		}
		i.metrics.IngestRuns.WithLabelValues(outcome).Inc()
		return Result{}, err
	}

	i.metrics.IngestRuns.WithLabelValues("loaded").Inc()
	i.metrics.IngestDuration.Observe(time.Since(start).Seconds())
	i.metrics.VenuesLoaded.Set(float64(result.VenuesLoaded))
	i.metrics.EventsLoaded.Set(float64(result.EventsLoaded))
	i.ready.Store(true)

	i.logger.Info("ingestion complete",
		"venues", result.VenuesLoaded,
		"events", result.EventsLoaded,
		"duration", time.Since(start),
	)
	return result, nil
}

func (i *Ingestor) fetchAndLoad(ctx context.Context) (Result, error) {
	venuesFeed, err := i.source.FetchVenues(ctx)
	if err != nil {
		return Result{}, err
	}
	venues := domain.ParseVenues(venuesFeed, i.resolver)
	i.metrics.VenuesParsed.Add(float64(len(venues)))
	i.metrics.RecordsDropped.WithLabelValues("missing_coordinates").
		Add(float64(len(venuesFeed.Venues) - len(venues)))

	datesFeed, err := i.source.FetchEventDates(ctx)
	if err != nil {
		return Result{}, err
	}
	dates := domain.ParseEventDates(datesFeed)

	eventsFeed, err := i.source.FetchEvents(ctx)
	if err != nil {
		return Result{}, err
	}
	events := domain.ParseEvents(eventsFeed, dates)
	i.metrics.EventsParsed.Add(float64(len(events)))
	i.metrics.RecordsDropped.WithLabelValues("no_dates").
		Add(float64(len(eventsFeed.Events) - len(events)))

	known := make(map[string]bool, len(venues))
	for _, v := range venues {
		known[v.VenueID] = true
	}
	unknownVenue := 0
	for _, e := range events {
		if !known[e.VenueRef] {
			unknownVenue++
		}
	}
	if unknownVenue > 0 {
		// Feeds drift out of sync occasionally; these events can never load.
		i.logger.Warn("events reference venues absent from the venues feed", "count", unknownVenue)
		i.metrics.RecordsDropped.WithLabelValues("unknown_venue").Add(float64(unknownVenue))
	}

	ranked, err := domain.RankVenues(venues, events, i.minEvents, i.topVenues)
	if err != nil {
		return Result{}, err
	}
	selected := domain.SelectEvents(ranked, events)

	storedVenues, storedEvents := buildDocuments(ranked, selected)
	if err := i.store.ReplaceAll(ctx, storedVenues, storedEvents); err != nil {
		return Result{}, fmt.Errorf("load store: %w", err)
	}

	return Result{
		VenuesLoaded: len(storedVenues),
		EventsLoaded: len(storedEvents),
		Message: fmt.Sprintf("imported top %d venues with %d total events",
			len(storedVenues), len(storedEvents)),
		LoadedAt: clock.Now(),
	}, nil
}

// buildDocuments assigns storage identifiers to the selection and resolves
// each event's venue reference through the external-id mapping. Every
// selected event references a selected venue, so the lookup cannot miss.
func buildDocuments(ranked []domain.RankedVenue, events []domain.Event) ([]domain.StoredVenue, []domain.StoredEvent) {
	venues := make([]domain.StoredVenue, len(ranked))
	idByVenueRef := make(map[string]uuid.UUID, len(ranked))
	for i, rv := range ranked {
		id := uuid.New()
		idByVenueRef[rv.VenueID] = id
		venues[i] = domain.StoredVenue{
			ID:         id,
			VenueID:    rv.VenueID,
			Name:       rv.Name,
			Latitude:   rv.Latitude,
			Longitude:  rv.Longitude,
			Area:       rv.Area,
			EventCount: rv.EventCount,
		}
	}

	stored := make([]domain.StoredEvent, len(events))
	for i, e := range events {
		stored[i] = domain.StoredEvent{
			ID:          uuid.New(),
			EventID:     e.EventID,
			Title:       e.Title,
			Description: e.Description,
			Presenter:   e.Presenter,
			VenueID:     idByVenueRef[e.VenueRef],
			Dates:       e.Dates,
		}
	}
	return venues, stored
}
