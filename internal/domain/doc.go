// Package domain models the LCSD cultural-events open-data feeds and the
// normalization, classification, and ranking rules applied to them.
//
// # Data Source
//
// The Leisure and Cultural Services Department publishes three XML files on
// data.gov.hk, refreshed daily:
//
//	venues.xml:     <venues><venue id="...">, elements venuee/venuec
//	                (English/Chinese name), latitude, longitude.
//	events.xml:     <events><event id="...">, elements venueid, titlee/titlec,
//	                desc, presenter.
//	eventDates.xml: <event_dates><event id="...">, one or more <indate>
//	                elements holding YYYYMMDD occurrence dates.
//
// # Feed Conventions
//
// Bilingual fields:
//
//	Most venues and events carry both an English and a Chinese variant. The
//	first non-empty value wins; "Unknown" (venues) or "Untitled" (events) is
//	the last resort. Description and presenter fall back to "N/A".
//
// Coordinates:
//
//	Latitude/longitude arrive as decimal strings. Venues missing either
//	value, or carrying a non-numeric one, are dropped during parsing.
//
// Occurrence dates:
//
//	"20990101" is the feed's placeholder for "no real date scheduled" and is
//	rejected, as is anything that is not exactly eight digits or does not
//	name a real calendar day. An event whose date list filters down to empty
//	is treated as having no dates and never reaches the store.
//
// # Area Classification
//
// Each venue is tagged with a coarse district bucket. Two strategies exist
// and exactly one is active per deployment (config area_strategy):
//
//	coordinates: bounding-box test over lat/lng producing "Hong Kong
//	             Island", "Kowloon", "New Territories", or "Unknown" for
//	             points outside the territory.
//	name:        ordered substring match over the lower-cased venue name,
//	             first match wins, defaulting to "Others".
//
// # Ranking
//
// Events join venues through the external venue id. Venues with fewer
// qualifying events than the configured minimum are discarded; the rest are
// ordered by event count descending, ties broken by feed position, and
// truncated to the configured top N. Events referencing a venue id absent
// from the venues feed never qualify; the feeds are occasionally out of
// sync and this is expected, not an error.
package domain
