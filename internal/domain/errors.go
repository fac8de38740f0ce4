package domain

import "errors"

// Sentinel errors for the ingestion pipeline. Callers branch on these with
// errors.Is; all wrapping happens via fmt.Errorf("...: %w", err).
var (
	// ErrNetwork marks a feed fetch failure: connection error, timeout, or a
	// non-2xx response. The run aborts; there is no built-in retry.
	ErrNetwork = errors.New("feed fetch failed")

	// ErrParse marks malformed XML or a missing expected document root.
	ErrParse = errors.New("feed parse failed")

	// ErrNoQualifyingVenues is returned when ranking leaves zero venues above
	// the minimum-event threshold. It is a structured outcome, not a crash.
	ErrNoQualifyingVenues = errors.New("no venues qualify")

	// ErrVenueNotFound is returned by store lookups for an unknown storage id.
	ErrVenueNotFound = errors.New("venue not found")
)
