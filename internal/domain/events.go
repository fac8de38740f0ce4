package domain

// ParseEvents normalizes the events feed, joining each event to its resolved
// date list. Events without an entry in the DateMap have no real occurrence
// dates and are skipped entirely.
func ParseEvents(feed EventsFeed, dates DateMap) []Event {
	events := make([]Event, 0, len(feed.Events))
	for _, raw := range feed.Events {
		eventDates, ok := dates[raw.ID]
		if !ok {
			continue
		}

		events = append(events, Event{
			EventID:     raw.ID,
			Title:       firstNonEmpty(raw.TitleEN, raw.TitleTC, "Untitled"),
			Description: firstNonEmpty(raw.Description, "N/A"),
			Presenter:   firstNonEmpty(raw.Presenter, "N/A"),
			VenueRef:    raw.VenueID,
			Dates:       eventDates,
		})
	}
	return events
}
