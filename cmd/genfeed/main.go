// Command genfeed writes mock venues.xml, events.xml, and eventDates.xml
// fixtures shaped like the LCSD open-data feeds. Serve the output directory
// with any static file server and point the feed URLs at it to run the
// pipeline without touching the live endpoints.
//
// Usage:
//
//	go run ./cmd/genfeed -out-dir data/mock -venues 40 -events 200 -seed 1
package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/hkculture/venue-etl-service/internal/domain"
)

var baseDate = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

// Coordinate spans roughly covering the territory, so the coordinate area
// resolver produces a mix of all three district buckets.
const (
	latMin = 22.2
	latMax = 22.5
	lngMin = 113.9
	lngMax = 114.3
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/mock", "output directory for feed fixtures")
	venueCount := flag.Int("venues", 40, "number of venues to generate")
	eventCount := flag.Int("events", 200, "number of events to generate")
	seed := flag.Int64("seed", 1, "PRNG seed for reproducible fixtures")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))

	venues := genVenues(rng, *venueCount)
	events, dates := genEvents(rng, *eventCount, *venueCount)

	if err := writeXML(filepath.Join(*outDir, "venues.xml"), domain.VenuesFeed{Venues: venues}); err != nil {
		return err
	}
	if err := writeXML(filepath.Join(*outDir, "events.xml"), domain.EventsFeed{Events: events}); err != nil {
		return err
	}
	if err := writeXML(filepath.Join(*outDir, "eventDates.xml"), domain.EventDatesFeed{Events: dates}); err != nil {
		return err
	}

	fmt.Printf("wrote %d venues, %d events to %s\n", len(venues), len(events), *outDir)
	return nil
}

func genVenues(rng *rand.Rand, n int) []domain.RawVenue {
	venues := make([]domain.RawVenue, 0, n)
	for i := 0; i < n; i++ {
		v := domain.RawVenue{
			ID:        fmt.Sprintf("%d", 36750000+i),
			NameEN:    fmt.Sprintf("Mock Venue %d (Auditorium)", i+1),
			NameTC:    fmt.Sprintf("模擬場地 %d", i+1),
			Latitude:  fmt.Sprintf("%.4f", latMin+rng.Float64()*(latMax-latMin)),
			Longitude: fmt.Sprintf("%.4f", lngMin+rng.Float64()*(lngMax-lngMin)),
		}
		// A few venues without coordinates, like the live feed.
		if i%13 == 12 {
			v.Latitude = ""
			v.Longitude = ""
		}
		venues = append(venues, v)
	}
	return venues
}

func genEvents(rng *rand.Rand, n, venueCount int) ([]domain.RawEvent, []domain.RawEventDates) {
	events := make([]domain.RawEvent, 0, n)
	dates := make([]domain.RawEventDates, 0, n)

	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%d", 144000+i)

		// Skewed venue assignment so a handful of venues clear the
		// minimum-event threshold while most do not.
		venueIdx := int(float64(venueCount) * rng.Float64() * rng.Float64())
		events = append(events, domain.RawEvent{
			ID:          id,
			VenueID:     fmt.Sprintf("%d", 36750000+venueIdx),
			TitleEN:     fmt.Sprintf("Mock Concert %d", i+1),
			TitleTC:     fmt.Sprintf("模擬音樂會 %d", i+1),
			Description: "An evening of mock performances.",
			Presenter:   "Mock Cultural Presentations Office",
		})

		in := make([]string, 0, 3)
		for d := 0; d < 1+rng.Intn(3); d++ {
			day := baseDate.AddDate(0, 0, rng.Intn(60))
			in = append(in, day.Format("20060102"))
		}
		// Sprinkle the no-date sentinel to exercise rejection downstream.
		if i%17 == 16 {
			in = []string{"20990101"}
		}
		dates = append(dates, domain.RawEventDates{ID: id, InDates: in})
	}
	return events, dates
}

func writeXML(path string, doc any) error {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	data = append([]byte(xml.Header), data...)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
