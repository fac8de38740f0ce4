package domain

import "encoding/xml"

// VenuesFeed mirrors the venues.xml document root.
type VenuesFeed struct {
	XMLName xml.Name   `xml:"venues"`
	Venues  []RawVenue `xml:"venue"`
}

// RawVenue is a single <venue> entry as it appears on the wire. Coordinates
// stay strings until parsing validates them.
type RawVenue struct {
	ID        string `xml:"id,attr"`
	NameEN    string `xml:"venuee"`
	NameTC    string `xml:"venuec"`
	Latitude  string `xml:"latitude"`
	Longitude string `xml:"longitude"`
}

// EventsFeed mirrors the events.xml document root.
type EventsFeed struct {
	XMLName xml.Name   `xml:"events"`
	Events  []RawEvent `xml:"event"`
}

// RawEvent is a single <event> entry. VenueID references the external id of
// a RawVenue in the venues feed.
type RawEvent struct {
	ID          string `xml:"id,attr"`
	VenueID     string `xml:"venueid"`
	TitleEN     string `xml:"titlee"`
	TitleTC     string `xml:"titlec"`
	Description string `xml:"desc"`
	Presenter   string `xml:"presenter"`
}

// EventDatesFeed mirrors the eventDates.xml document root.
type EventDatesFeed struct {
	XMLName xml.Name        `xml:"event_dates"`
	Events  []RawEventDates `xml:"event"`
}

// RawEventDates carries the occurrence dates for one event. A single
// <indate> and a list of them decode identically into the slice.
type RawEventDates struct {
	ID      string   `xml:"id,attr"`
	InDates []string `xml:"indate"`
}
