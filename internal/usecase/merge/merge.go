// Package merge folds new observations of a startup into its persisted row.
//
// Mentions extracted from news accumulate score and OR their signal flags;
// accelerator directory entries stamp accelerator metadata. The functions in
// this file are pure; Resolver applies them inside a repository transaction.
package merge

import (
	"strings"

	"venture-feed/internal/domain/entity"
)

// Mention is one scored observation of a startup in a news item.
type Mention struct {
	Name               string
	SectorTags         []entity.SectorTag
	WhyInteresting     string
	MoatNote           string
	Signals            entity.Signals
	Link               entity.Link
	Points             int
	Accelerator        string
	University         string
	CofounderLinkedIns []entity.CofounderLinkedIn
}

// AcceleratorEntry is one company from an accelerator directory.
type AcceleratorEntry struct {
	Accelerator     string
	Name            string
	Website         string
	OneLiner        string
	LongDescription string
	ProfileURL      string
	Batch           string
	SectorTags      []entity.SectorTag
}

// maxDescriptionLength caps a long description used as why_interesting.
const maxDescriptionLength = 300

// MergeMention returns existing with the mention folded in. existing is not modified.
func MergeMention(existing entity.Startup, m Mention) entity.Startup {
	out := existing
	out.OverallScore = existing.OverallScore + m.Points
	out.Featured = out.OverallScore > 0

	if len(m.SectorTags) > 0 {
		out.SectorTags = cloneTags(m.SectorTags)
	}
	if m.WhyInteresting != "" {
		out.WhyInteresting = m.WhyInteresting
	}
	if m.MoatNote != "" {
		out.MoatNote = m.MoatNote
	}
	out.Signals = existing.Signals.Or(m.Signals)
	out.Links = AppendLink(existing.Links, m.Link)

	if out.Accelerator == "" {
		out.Accelerator = m.Accelerator
	}
	if out.University == "" {
		out.University = m.University
	}
	out.CofounderLinkedIns = appendCofounders(existing.CofounderLinkedIns, m.CofounderLinkedIns)
	return out
}

// NewFromMention builds the row created by the first mention of a startup.
func NewFromMention(m Mention) entity.Startup {
	s := entity.Startup{
		Name:               strings.TrimSpace(m.Name),
		SectorTags:         cloneTags(m.SectorTags),
		WhyInteresting:     m.WhyInteresting,
		MoatNote:           m.MoatNote,
		OverallScore:       m.Points,
		Featured:           m.Points > 0,
		Signals:            m.Signals,
		Accelerator:        m.Accelerator,
		University:         m.University,
		CofounderLinkedIns: appendCofounders(nil, m.CofounderLinkedIns),
	}
	if m.Link.URL != "" {
		s.Links = []entity.Link{m.Link}
	}
	return s
}

// MergeAccelerator stamps directory data onto an existing row. Score, signals
// and other accumulated fields are left untouched.
func MergeAccelerator(existing entity.Startup, e AcceleratorEntry) entity.Startup {
	out := existing
	out.Accelerator = e.Accelerator
	out.Batch = e.Batch
	out.Website = e.Website
	out.Featured = true
	if len(e.SectorTags) > 0 {
		out.SectorTags = cloneTags(e.SectorTags)
	}
	if e.OneLiner != "" {
		out.WhyInteresting = e.OneLiner
	}
	if !hasAnyURL(existing.Links, e.ProfileURL, e.Website) {
		out.Links = append(cloneLinks(existing.Links), acceleratorLink(e))
	}
	return out
}

// NewFromAccelerator builds the row created for a directory company that was
// never mentioned before.
func NewFromAccelerator(e AcceleratorEntry) entity.Startup {
	tags := cloneTags(e.SectorTags)
	if len(tags) == 0 {
		tags = []entity.SectorTag{entity.SectorOther}
	}
	why := e.OneLiner
	if why == "" {
		why = entity.Truncate(e.LongDescription, maxDescriptionLength)
	}
	return entity.Startup{
		Name:           strings.TrimSpace(e.Name),
		Website:        e.Website,
		SectorTags:     tags,
		WhyInteresting: why,
		Featured:       true,
		OverallScore:   1,
		Accelerator:    e.Accelerator,
		Batch:          e.Batch,
		Links:          []entity.Link{acceleratorLink(e)},
	}
}

// AppendLink returns links plus link unless a link with the same url exists.
// An empty url is never appended.
func AppendLink(links []entity.Link, link entity.Link) []entity.Link {
	out := cloneLinks(links)
	if link.URL == "" {
		return out
	}
	for _, l := range out {
		if l.URL == link.URL {
			return out
		}
	}
	return append(out, link)
}

func acceleratorLink(e AcceleratorEntry) entity.Link {
	if e.ProfileURL != "" {
		return entity.Link{Label: e.Accelerator, URL: e.ProfileURL}
	}
	url := e.Website
	if url == "" {
		url = "#"
	}
	return entity.Link{Label: "Website", URL: url}
}

func hasAnyURL(links []entity.Link, urls ...string) bool {
	for _, l := range links {
		for _, u := range urls {
			if u != "" && l.URL == u {
				return true
			}
		}
	}
	return false
}

func appendCofounders(existing, add []entity.CofounderLinkedIn) []entity.CofounderLinkedIn {
	if len(add) == 0 {
		return existing
	}
	out := make([]entity.CofounderLinkedIn, 0, len(existing)+len(add))
	out = append(out, existing...)
	for _, c := range add {
		dup := false
		for _, e := range out {
			if strings.EqualFold(e.URL, c.URL) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

func cloneTags(tags []entity.SectorTag) []entity.SectorTag {
	if tags == nil {
		return []entity.SectorTag{}
	}
	return append([]entity.SectorTag(nil), tags...)
}

func cloneLinks(links []entity.Link) []entity.Link {
	return append([]entity.Link(nil), links...)
}
