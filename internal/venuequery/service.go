// Package venuequery serves runtime filtering of the seeded venue collection.
package venuequery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hkculture/venue-etl-service/internal/domain"
	"github.com/hkculture/venue-etl-service/internal/observability"
)

// VenueReader is the read surface of the persisted store.
type VenueReader interface {
	ListVenues(ctx context.Context) ([]domain.StoredVenue, error)
	VenueByID(ctx context.Context, id uuid.UUID) (domain.StoredVenue, error)
	EventsForVenue(ctx context.Context, venueID uuid.UUID) ([]domain.StoredEvent, error)
}

// Filter restricts a venue listing. Zero values disable the corresponding
// criterion; DistanceKm == 0 in particular is a documented no-op, not an
// empty-result filter.
type Filter struct {
	Area       string  // exact match, case-sensitive on the stored value
	Keyword    string  // substring match on name, case-insensitive
	DistanceKm float64 // radius from the reference point
}

// VenueDetail is a venue together with its events, reconstructed by reverse
// lookup.
type VenueDetail struct {
	domain.StoredVenue
	Events []domain.StoredEvent
}

// Service answers venue filter queries against a read snapshot of the store.
type Service struct {
	store   VenueReader
	refLat  float64
	refLng  float64
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Service filtering distances from the given reference point.
func New(store VenueReader, refLat, refLng float64, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		store:   store,
		refLat:  refLat,
		refLng:  refLng,
		logger:  logger,
		metrics: metrics,
	}
}

// FilteredVenues applies the filter criteria conjunctively, in fixed order:
// area, then keyword, then distance.
func (s *Service) FilteredVenues(ctx context.Context, f Filter) ([]domain.StoredVenue, error) {
	venues, err := s.store.ListVenues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	s.metrics.FilterQueries.Inc()

	if f.Area != "" {
		venues = keep(venues, func(v domain.StoredVenue) bool {
			return v.Area == f.Area
		})
	}

	if f.Keyword != "" {
		keyword := strings.ToLower(f.Keyword)
		venues = keep(venues, func(v domain.StoredVenue) bool {
			return strings.Contains(strings.ToLower(v.Name), keyword)
		})
	}

	// A zero radius means "no distance filter", not "nothing within zero km".
	if f.DistanceKm > 0 {
		venues = keep(venues, func(v domain.StoredVenue) bool {
			return domain.DistanceKm(s.refLat, s.refLng, v.Latitude, v.Longitude) <= f.DistanceKm
		})
	}

	s.logger.Debug("filter query served",
		"area", f.Area, "keyword", f.Keyword, "distance_km", f.DistanceKm,
		"matches", len(venues),
	)
	return venues, nil
}

// VenueWithEvents loads one venue and its events by storage identifier.
func (s *Service) VenueWithEvents(ctx context.Context, id uuid.UUID) (VenueDetail, error) {
	venue, err := s.store.VenueByID(ctx, id)
	if err != nil {
		return VenueDetail{}, err
	}

	events, err := s.store.EventsForVenue(ctx, id)
	if err != nil {
		return VenueDetail{}, fmt.Errorf("load events for venue %s: %w", id, err)
	}
	return VenueDetail{StoredVenue: venue, Events: events}, nil
}

func keep(venues []domain.StoredVenue, match func(domain.StoredVenue) bool) []domain.StoredVenue {
	kept := venues[:0:0]
	for _, v := range venues {
		if match(v) {
			kept = append(kept, v)
		}
	}
	return kept
}
