package domain

import "sort"

// RankVenues joins events to venues by external venue id, keeps venues with
// at least minEvents qualifying events, orders them by event count descending,
// and truncates to the first topN.
//
// The sort is stable with venue feed order as the tiebreak, which makes the
// selection deterministic for equal counts. Events referencing a venue id
// absent from venues simply never contribute to a kept venue.
//
// Returns ErrNoQualifyingVenues when no venue clears the threshold.
func RankVenues(venues []Venue, events []Event, minEvents, topN int) ([]RankedVenue, error) {
	counts := make(map[string]int, len(venues))
	for _, e := range events {
		counts[e.VenueRef]++
	}

	ranked := make([]RankedVenue, 0, len(venues))
	for _, v := range venues {
		if n := counts[v.VenueID]; n >= minEvents {
			ranked = append(ranked, RankedVenue{Venue: v, EventCount: n})
		}
	}
	if len(ranked) == 0 {
		return nil, ErrNoQualifyingVenues
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EventCount > ranked[j].EventCount
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked, nil
}

// SelectEvents returns the events belonging to the given selection, in feed
// order. Everything else, including events for venues that missed the cut,
// is excluded.
func SelectEvents(selection []RankedVenue, events []Event) []Event {
	selected := make(map[string]bool, len(selection))
	for _, v := range selection {
		selected[v.VenueID] = true
	}

	kept := make([]Event, 0, len(events))
	for _, e := range events {
		if selected[e.VenueRef] {
			kept = append(kept, e)
		}
	}
	return kept
}
