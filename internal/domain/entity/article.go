// Package entity defines the core domain entities of the signal pipeline:
// articles, research papers, startups, events and the per-user overlay rows,
// together with the closed taxonomies they are classified into.
package entity

import "time"

// Article is a news item ingested from an RSS/Atom feed and classified once.
// URL is the natural key; an article is never reclassified after insertion.
type Article struct {
	ID             int64
	Title          string
	Source         string
	URL            string
	PublishedAt    *time.Time
	RawContent     string
	SectorTags     []SectorTag
	EventType      EventType
	Stage          Stage
	Summary        string
	StrategicNote  string
	RelevanceScore int
	CreatedAt      time.Time
}

// MaxRawContentLength caps the stored feed body of an article.
const MaxRawContentLength = 50000

// ResearchPaper is an academic paper pulled from the arXiv feed.
type ResearchPaper struct {
	ID             int64
	Title          string
	Source         string
	URL            string
	PublishedAt    *time.Time
	Abstract       string
	SectorTags     []SectorTag
	Summary        string
	RelevanceScore int
	CreatedAt      time.Time
}

// MaxAbstractLength caps the stored abstract of a research paper.
const MaxAbstractLength = 15000

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
