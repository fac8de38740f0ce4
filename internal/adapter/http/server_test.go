package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkculture/venue-etl-service/internal/domain"
	"github.com/hkculture/venue-etl-service/internal/venuequery"
)

type stubReady struct{ err error }

func (s stubReady) CheckReadiness(context.Context) error { return s.err }

type stubQuerier struct {
	venues     []domain.StoredVenue
	lastFilter venuequery.Filter
	detail     venuequery.VenueDetail
	err        error
}

func (s *stubQuerier) FilteredVenues(_ context.Context, f venuequery.Filter) ([]domain.StoredVenue, error) {
	s.lastFilter = f
	return s.venues, s.err
}

func (s *stubQuerier) VenueWithEvents(_ context.Context, id uuid.UUID) (venuequery.VenueDetail, error) {
	if s.err != nil {
		return venuequery.VenueDetail{}, s.err
	}
	return s.detail, nil
}

func newTestServer(ready ReadinessChecker, querier VenueQuerier) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(":0", ready, querier, logger)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(stubReady{}, &stubQuerier{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(stubReady{}, &stubQuerier{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(stubReady{err: errors.New("ingestion has not completed yet")}, &stubQuerier{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestVenues(t *testing.T) {
	venue := domain.StoredVenue{
		ID: uuid.New(), VenueID: "36750043", Name: "Hong Kong Cultural Centre",
		Latitude: 22.2939, Longitude: 114.1702, Area: "Kowloon", EventCount: 12,
	}

	t.Run("passes filter params through", func(t *testing.T) {
		q := &stubQuerier{venues: []domain.StoredVenue{venue}}
		srv := newTestServer(stubReady{}, q)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
			"/api/venues?area=Kowloon&keyword=cultural&distance=12.5", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, venuequery.Filter{Area: "Kowloon", Keyword: "cultural", DistanceKm: 12.5}, q.lastFilter)

		var got []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "36750043", got[0]["venue_id"])
		assert.Equal(t, float64(12), got[0]["event_count"])
	})

	t.Run("rejects malformed distance", func(t *testing.T) {
		srv := newTestServer(stubReady{}, &stubQuerier{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/venues?distance=near", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure maps to 500", func(t *testing.T) {
		srv := newTestServer(stubReady{}, &stubQuerier{err: errors.New("boom")})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/venues", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestVenueByID(t *testing.T) {
	id := uuid.New()
	detail := venuequery.VenueDetail{
		StoredVenue: domain.StoredVenue{ID: id, VenueID: "36750043", Name: "Hong Kong Cultural Centre"},
		Events: []domain.StoredEvent{
			{ID: uuid.New(), EventID: "144001", Title: "Orchestra Night", VenueID: id},
		},
	}

	t.Run("found", func(t *testing.T) {
		srv := newTestServer(stubReady{}, &stubQuerier{detail: detail})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/venues/"+id.String(), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "36750043", got["venue_id"])
		events, ok := got["events"].([]any)
		require.True(t, ok)
		assert.Len(t, events, 1)
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		srv := newTestServer(stubReady{}, &stubQuerier{err: domain.ErrVenueNotFound})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/venues/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id maps to 400", func(t *testing.T) {
		srv := newTestServer(stubReady{}, &stubQuerier{})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/venues/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
