package entity

import "time"

// Signals are sticky traction flags observed for a startup.
// Once a flag becomes true it never returns to false.
type Signals struct {
	SignedCustomers bool `json:"signed_customers"`
	TeamGrew        bool `json:"team_grew"`
	RaisedFunding   bool `json:"raised_funding"`
}

// Or returns the element-wise OR of two signal sets.
func (s Signals) Or(o Signals) Signals {
	return Signals{
		SignedCustomers: s.SignedCustomers || o.SignedCustomers,
		TeamGrew:        s.TeamGrew || o.TeamGrew,
		RaisedFunding:   s.RaisedFunding || o.RaisedFunding,
	}
}

// Link is a labelled reference to an article or profile page.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// CofounderLinkedIn is a named LinkedIn profile of a founder.
type CofounderLinkedIn struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Startup is a company aggregated across many mentions.
// It is keyed by case-insensitive Name.
type Startup struct {
	ID                 int64
	Name               string
	Website            string
	SectorTags         []SectorTag
	FoundingTeam       string
	WhyInteresting     string
	MoatNote           string
	Featured           bool
	OverallScore       int
	Signals            Signals
	Links              []Link
	Accelerator        string
	Batch              string
	University         string
	CofounderLinkedIns []CofounderLinkedIn
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasLink reports whether a link with the given url is already recorded.
func (s *Startup) HasLink(url string) bool {
	for _, l := range s.Links {
		if l.URL == url {
			return true
		}
	}
	return false
}
