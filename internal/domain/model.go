package domain

import (
	"time"

	"github.com/google/uuid"
)

// Venue is a normalized venue record produced by the venue parser. Order of
// a []Venue slice is significant: it preserves feed order, which the ranking
// step uses as its tiebreak.
type Venue struct {
	VenueID   string
	Name      string
	Latitude  float64
	Longitude float64
	Area      string
}

// Event is a normalized event record. VenueRef holds the external venue id
// from the feed; it stays unresolved until the loader maps it to a stored
// venue identifier.
type Event struct {
	EventID     string
	Title       string
	Description string
	Presenter   string
	VenueRef    string
	Dates       []time.Time
}

// DateMap maps an external event id to its ordered, validated occurrence
// dates. It lives only between the date parser and the event parser and is
// never persisted.
type DateMap map[string][]time.Time

// RankedVenue is a Venue together with its qualifying event count, as
// produced by RankVenues.
type RankedVenue struct {
	Venue
	EventCount int
}

// StoredVenue is the persisted venue document. ID is assigned by the loader
// at insert time; VenueID remains the unique external identifier.
type StoredVenue struct {
	ID         uuid.UUID
	VenueID    string
	Name       string
	Latitude   float64
	Longitude  float64
	Area       string
	EventCount int
}

// StoredEvent is the persisted event document. VenueID references the owning
// StoredVenue. The venue does not hold its events; the relationship is
// reconstructed by reverse lookup.
type StoredEvent struct {
	ID          uuid.UUID
	EventID     string
	Title       string
	Description string
	Presenter   string
	VenueID     uuid.UUID
	Dates       []time.Time
}
