// Package postgres persists the seeded venue and event collections.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hkculture/venue-etl-service/internal/domain"
)

// NewPool opens a pgx connection pool and verifies connectivity.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create DB pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}

	return pool, nil
}

// Store implements the pipeline and venuequery storage interfaces over
// PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the venues and events tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS venues (
			id          uuid PRIMARY KEY,
			venue_id    text NOT NULL UNIQUE,
			name        text NOT NULL,
			latitude    double precision NOT NULL,
			longitude   double precision NOT NULL,
			area        text NOT NULL,
			event_count integer NOT NULL,
			position    integer NOT NULL
		);
		CREATE TABLE IF NOT EXISTS events (
			id          uuid PRIMARY KEY,
			event_id    text NOT NULL UNIQUE,
			title       text NOT NULL,
			description text NOT NULL,
			presenter   text NOT NULL,
			venue_id    uuid NOT NULL REFERENCES venues(id) ON DELETE CASCADE,
			dates       date[] NOT NULL
		);
		CREATE INDEX IF NOT EXISTS events_venue_id_idx ON events (venue_id);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Counts reports how many venues and events are persisted.
func (s *Store) Counts(ctx context.Context) (venues, events int64, err error) {
	row := s.pool.QueryRow(ctx, `
		SELECT (SELECT count(*) FROM venues), (SELECT count(*) FROM events)
	`)
	if err := row.Scan(&venues, &events); err != nil {
		return 0, 0, fmt.Errorf("count documents: %w", err)
	}
	return venues, events, nil
}

// ReplaceAll deletes both collections and bulk-inserts the given venues and
// events inside a single transaction. Venue positions record selection order
// so listing preserves the ranking tiebreak. Either everything commits or
// nothing does.
func (s *Store) ReplaceAll(ctx context.Context, venues []domain.StoredVenue, events []domain.StoredEvent) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("clear events: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM venues`); err != nil {
		return fmt.Errorf("clear venues: %w", err)
	}

	for i, v := range venues {
		if _, err := tx.Exec(ctx, `
			INSERT INTO venues (id, venue_id, name, latitude, longitude, area, event_count, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, v.ID, v.VenueID, v.Name, v.Latitude, v.Longitude, v.Area, v.EventCount, i); err != nil {
			return fmt.Errorf("insert venue %s: %w", v.VenueID, err)
		}
	}

	for _, e := range events {
		if _, err := tx.Exec(ctx, `
			INSERT INTO events (id, event_id, title, description, presenter, venue_id, dates)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, e.ID, e.EventID, e.Title, e.Description, e.Presenter, e.VenueID, dateValues(e.Dates)); err != nil {
			return fmt.Errorf("insert event %s: %w", e.EventID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// dateValues converts occurrence dates for a date[] parameter. A bare
// []time.Time would encode as timestamptz[] and get cast to date in the
// server's TimeZone, shifting UTC midnights on servers west of UTC; typing
// each element as a date keeps the calendar day as parsed.
func dateValues(dates []time.Time) []pgtype.Date {
	values := make([]pgtype.Date, len(dates))
	for i, d := range dates {
		values[i] = pgtype.Date{Time: d, Valid: true}
	}
	return values
}

// ListVenues returns all persisted venues in selection order.
func (s *Store) ListVenues(ctx context.Context) ([]domain.StoredVenue, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, venue_id, name, latitude, longitude, area, event_count
		FROM venues
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("query venues: %w", err)
	}
	defer rows.Close()

	venues := make([]domain.StoredVenue, 0)
	for rows.Next() {
		var v domain.StoredVenue
		if err := rows.Scan(&v.ID, &v.VenueID, &v.Name, &v.Latitude, &v.Longitude, &v.Area, &v.EventCount); err != nil {
			return nil, fmt.Errorf("scan venue row: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venue rows: %w", err)
	}
	return venues, nil
}

// VenueByID fetches one venue by its storage identifier.
func (s *Store) VenueByID(ctx context.Context, id uuid.UUID) (domain.StoredVenue, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, venue_id, name, latitude, longitude, area, event_count
		FROM venues WHERE id = $1
	`, id)

	var v domain.StoredVenue
	if err := row.Scan(&v.ID, &v.VenueID, &v.Name, &v.Latitude, &v.Longitude, &v.Area, &v.EventCount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.StoredVenue{}, domain.ErrVenueNotFound
		}
		return domain.StoredVenue{}, fmt.Errorf("query venue %s: %w", id, err)
	}
	return v, nil
}

// EventsForVenue reconstructs the venue-to-events relationship by reverse
// lookup on the events collection.
func (s *Store) EventsForVenue(ctx context.Context, venueID uuid.UUID) ([]domain.StoredEvent, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, event_id, title, description, presenter, venue_id, dates
		FROM events
		WHERE venue_id = $1
		ORDER BY event_id
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("query events for venue %s: %w", venueID, err)
	}
	defer rows.Close()

	events := make([]domain.StoredEvent, 0)
	for rows.Next() {
		var e domain.StoredEvent
		if err := rows.Scan(&e.ID, &e.EventID, &e.Title, &e.Description, &e.Presenter, &e.VenueID, &e.Dates); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return events, nil
}
