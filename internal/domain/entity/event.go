package entity

import "time"

// Event is a curated ecosystem event (demo day, conference, summit).
// URL is the natural key; rows are replaced on every ingestion run.
type Event struct {
	ID              int64
	Title           string
	Date            time.Time
	City            string
	URL             string
	RegistrationURL string
	Source          string
	EventType       string
	SectorTags      []SectorTag
	CreatedAt       time.Time
}
