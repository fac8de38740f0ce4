//go:build postgres

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkculture/venue-etl-service/internal/domain"
)

// These tests hit a real PostgreSQL instance and require TEST_DATABASE_URL.
// Run with: go test -tags=postgres ./internal/adapter/postgres/ -v -count=1

func smokeStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Fatal("TEST_DATABASE_URL must be set to run smoke tests")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := NewStore(pool)
	require.NoError(t, store.EnsureSchema(ctx))

	// Start from an empty store; ReplaceAll with nothing clears both tables.
	require.NoError(t, store.ReplaceAll(ctx, nil, nil))
	return store
}

func smokeFixtures() ([]domain.StoredVenue, []domain.StoredEvent) {
	v1 := domain.StoredVenue{
		ID: uuid.New(), VenueID: "36750043", Name: "Hong Kong Cultural Centre",
		Latitude: 22.2939, Longitude: 114.1702, Area: "Kowloon", EventCount: 2,
	}
	v2 := domain.StoredVenue{
		ID: uuid.New(), VenueID: "36750001", Name: "Sha Tin Town Hall",
		Latitude: 22.3818, Longitude: 114.1896, Area: "New Territories", EventCount: 2,
	}
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	events := []domain.StoredEvent{
		{ID: uuid.New(), EventID: "E1", Title: "Orchestra Night", Description: "N/A", Presenter: "N/A", VenueID: v1.ID, Dates: []time.Time{day}},
		{ID: uuid.New(), EventID: "E2", Title: "Choir Evening", Description: "N/A", Presenter: "N/A", VenueID: v1.ID, Dates: []time.Time{day, day.AddDate(0, 0, 1)}},
		{ID: uuid.New(), EventID: "E3", Title: "Dance Gala", Description: "N/A", Presenter: "N/A", VenueID: v2.ID, Dates: []time.Time{day}},
		{ID: uuid.New(), EventID: "E4", Title: "Drama Matinee", Description: "N/A", Presenter: "N/A", VenueID: v2.ID, Dates: []time.Time{day}},
	}
	return []domain.StoredVenue{v1, v2}, events
}

func TestSmoke_ReplaceAllAndCounts(t *testing.T) {
	store := smokeStore(t)
	ctx := context.Background()

	venues, events := smokeFixtures()
	require.NoError(t, store.ReplaceAll(ctx, venues, events))

	nVenues, nEvents, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, nVenues)
	assert.EqualValues(t, 4, nEvents)

	// A second ReplaceAll swaps the whole state, no leftovers.
	require.NoError(t, store.ReplaceAll(ctx, venues[:1], events[:2]))
	nVenues, nEvents, err = store.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, nVenues)
	assert.EqualValues(t, 2, nEvents)
}

func TestSmoke_ListVenuesKeepsSelectionOrder(t *testing.T) {
	store := smokeStore(t)
	ctx := context.Background()

	venues, events := smokeFixtures()
	require.NoError(t, store.ReplaceAll(ctx, venues, events))

	got, err := store.ListVenues(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, venues[0].VenueID, got[0].VenueID)
	assert.Equal(t, venues[1].VenueID, got[1].VenueID)
}

func TestSmoke_VenueByIDAndEvents(t *testing.T) {
	store := smokeStore(t)
	ctx := context.Background()

	venues, events := smokeFixtures()
	require.NoError(t, store.ReplaceAll(ctx, venues, events))

	venue, err := store.VenueByID(ctx, venues[0].ID)
	require.NoError(t, err)
	assert.Equal(t, venues[0].Name, venue.Name)

	got, err := store.EventsForVenue(ctx, venues[0].ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "E1", got[0].EventID)
	assert.Len(t, got[1].Dates, 2)

	// The calendar day must survive the round trip regardless of the
	// server's TimeZone setting.
	assert.Equal(t, events[0].Dates[0], got[0].Dates[0].UTC())

	_, err = store.VenueByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrVenueNotFound)
}
