package domain

import (
	"strconv"
	"strings"
)

// ParseVenues normalizes the venues feed. Entries missing a latitude or
// longitude, or carrying a non-numeric one, are dropped. Emission preserves
// feed order.
func ParseVenues(feed VenuesFeed, resolver AreaResolver) []Venue {
	venues := make([]Venue, 0, len(feed.Venues))
	for _, raw := range feed.Venues {
		lat, okLat := parseCoordinate(raw.Latitude)
		lng, okLng := parseCoordinate(raw.Longitude)
		if !okLat || !okLng {
			continue
		}

		name := firstNonEmpty(raw.NameEN, raw.NameTC, "Unknown")
		venues = append(venues, Venue{
			VenueID:   raw.ID,
			Name:      name,
			Latitude:  lat,
			Longitude: lng,
			Area:      resolver.Resolve(name, lat, lng),
		})
	}
	return venues
}

func parseCoordinate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// firstNonEmpty returns the first value that is not blank after trimming.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
