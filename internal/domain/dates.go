package domain

import "time"

// noDateSentinel is the feed's placeholder for events without a real
// scheduled date. It parses as a valid calendar day, so it needs an explicit
// rejection before time.Parse runs.
const noDateSentinel = "20990101"

// ParseYYYYMMDD converts an eight-digit date string into a UTC calendar day.
// It reports false for the no-date sentinel, for strings that are not exactly
// eight digits, and for digit strings that do not name a real date
// (e.g. "20250230").
func ParseYYYYMMDD(s string) (time.Time, bool) {
	if len(s) != 8 || s == noDateSentinel {
		return time.Time{}, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return time.Time{}, false
		}
	}

	// time.Parse on "20060102" rejects impossible days like Feb 30.
	t, err := time.Parse("20060102", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseEventDates converts the event-dates feed into a DateMap. Each event's
// list keeps feed order with invalid and sentinel dates removed; events whose
// list filters down to empty are omitted entirely.
func ParseEventDates(feed EventDatesFeed) DateMap {
	dates := make(DateMap, len(feed.Events))
	for _, e := range feed.Events {
		valid := make([]time.Time, 0, len(e.InDates))
		for _, raw := range e.InDates {
			if t, ok := ParseYYYYMMDD(raw); ok {
				valid = append(valid, t)
			}
		}
		if len(valid) > 0 {
			dates[e.ID] = valid
		}
	}
	return dates
}
