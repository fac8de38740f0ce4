package domain

import "strings"

// AreaResolver assigns a coarse geographic bucket to a venue. Exactly one
// implementation is active per deployment; the strategies are alternatives,
// not a fallback chain.
type AreaResolver interface {
	Resolve(name string, lat, lng float64) string
}

// CoordinateResolver buckets venues by bounding-box tests over their
// coordinates. Points outside the territory-wide box resolve to "Unknown".
type CoordinateResolver struct{}

// Territory bounding box and district cut lines. The Kowloon box is checked
// after the Hong Kong Island cut, so the overlap between the two resolves to
// Hong Kong Island.
const (
	territoryLatMin = 22.15
	territoryLatMax = 22.6
	territoryLngMin = 113.8
	territoryLngMax = 114.4
)

func (CoordinateResolver) Resolve(_ string, lat, lng float64) string {
	if lat < territoryLatMin || lat > territoryLatMax || lng < territoryLngMin || lng > territoryLngMax {
		return "Unknown"
	}
	if lat < 22.28 && lng > 114.1 {
		return "Hong Kong Island"
	}
	if lat >= 22.26 && lat <= 22.36 && lng >= 114.14 && lng <= 114.23 {
		return "Kowloon"
	}
	return "New Territories"
}

// NameResolver buckets venues by substring match on the lower-cased venue
// name. Match order is significant: the first hit in list order wins, it is
// not a best-match search.
type NameResolver struct{}

var nameAreas = []struct {
	substr string
	area   string
}{
	{"sha tin", "Sha Tin"},
	{"yuen long", "Yuen Long"},
	{"tuen mun", "Tuen Mun"},
	{"north district", "North District"},
	{"tai po", "Tai Po"},
	{"ko shan theatre", "Hung Hom"},
	{"ngau chi wan", "Ngau Chi Wan"},
	{"hong kong cultural centre", "Tsim Sha Tsui"},
	{"hong kong city hall", "Central"},
	{"hong kong film archive", "Sai Wan Ho"},
}

func (NameResolver) Resolve(name string, _, _ float64) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, m := range nameAreas {
		if strings.Contains(lowered, m.substr) {
			return m.area
		}
	}
	return "Others"
}
