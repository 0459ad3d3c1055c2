// Package signal provides the read-only HTTP handlers for classified articles,
// research papers, events and startups, plus the CSV export.
package signal

import (
	"time"

	"venture-feed/internal/domain/entity"
)

// ArticleDTO is an article as returned by GET /articles.
type ArticleDTO struct {
	ID             int64      `json:"id" example:"1"`
	Title          string     `json:"title" example:"Acme raises $4M seed for agentic bookkeeping"`
	Source         string     `json:"source" example:"TechCrunch"`
	URL            string     `json:"url" example:"https://techcrunch.com/2025/03/10/acme-seed"`
	PublishedAt    *time.Time `json:"published_at,omitempty" example:"2025-03-10T10:00:00Z"`
	SectorTags     []string   `json:"sector_tags" example:"AI-native,Fintech"`
	EventType      string     `json:"event_type" example:"Fundraise"`
	Stage          string     `json:"stage" example:"early_stage"`
	Summary        string     `json:"summary" example:"Acme closed a $4M seed round led by..."`
	StrategicNote  string     `json:"strategic_note" example:"Second agentic finance seed this month"`
	RelevanceScore int        `json:"relevance_score" example:"8"`
	CreatedAt      time.Time  `json:"created_at" example:"2025-03-10T12:00:00Z"`
}

// ResearchDTO is a research paper as returned by GET /research.
type ResearchDTO struct {
	ID             int64      `json:"id" example:"1"`
	Title          string     `json:"title" example:"Tool-using agents for ledger reconciliation"`
	Source         string     `json:"source" example:"arXiv"`
	URL            string     `json:"url" example:"http://arxiv.org/abs/2503.01234v1"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	Abstract       string     `json:"abstract"`
	SectorTags     []string   `json:"sector_tags"`
	Summary        string     `json:"summary"`
	RelevanceScore int        `json:"relevance_score" example:"6"`
	CreatedAt      time.Time  `json:"created_at"`
}

// EventDTO is an event as returned by GET /events.
type EventDTO struct {
	ID              int64     `json:"id" example:"1"`
	Title           string    `json:"title" example:"YC Demo Day"`
	Date            time.Time `json:"date" example:"2025-03-18T00:00:00Z"`
	City            string    `json:"city" example:"San Francisco"`
	URL             string    `json:"url" example:"https://www.ycombinator.com/demoday"`
	RegistrationURL string    `json:"registration_url,omitempty"`
	Source          string    `json:"source" example:"Y Combinator"`
	EventType       string    `json:"event_type" example:"Demo Day"`
	SectorTags      []string  `json:"sector_tags"`
}

// StartupDTO is a startup as returned by the startup endpoints.
type StartupDTO struct {
	ID                 int64                      `json:"id" example:"1"`
	Name               string                     `json:"name" example:"Acme"`
	Website            string                     `json:"website,omitempty" example:"https://acme.ai"`
	SectorTags         []string                   `json:"sector_tags"`
	FoundingTeam       string                     `json:"founding_team,omitempty"`
	WhyInteresting     string                     `json:"why_interesting,omitempty"`
	MoatNote           string                     `json:"moat_note,omitempty"`
	Featured           bool                       `json:"featured"`
	OverallScore       int                        `json:"overall_score" example:"12"`
	Signals            entity.Signals             `json:"signals"`
	Links              []entity.Link              `json:"links"`
	Accelerator        string                     `json:"accelerator,omitempty" example:"Y Combinator"`
	Batch              string                     `json:"batch,omitempty" example:"W25"`
	University         string                     `json:"university,omitempty"`
	CofounderLinkedIns []entity.CofounderLinkedIn `json:"cofounder_linkedins"`
	UpdatedAt          time.Time                  `json:"updated_at"`
}

func toArticleDTOs(items []*entity.Article) []ArticleDTO {
	out := make([]ArticleDTO, 0, len(items))
	for _, a := range items {
		out = append(out, ArticleDTO{
			ID:             a.ID,
			Title:          a.Title,
			Source:         a.Source,
			URL:            a.URL,
			PublishedAt:    a.PublishedAt,
			SectorTags:     entity.SectorStrings(a.SectorTags),
			EventType:      string(a.EventType),
			Stage:          string(a.Stage),
			Summary:        a.Summary,
			StrategicNote:  a.StrategicNote,
			RelevanceScore: a.RelevanceScore,
			CreatedAt:      a.CreatedAt,
		})
	}
	return out
}

func toResearchDTOs(items []*entity.ResearchPaper) []ResearchDTO {
	out := make([]ResearchDTO, 0, len(items))
	for _, p := range items {
		out = append(out, ResearchDTO{
			ID:             p.ID,
			Title:          p.Title,
			Source:         p.Source,
			URL:            p.URL,
			PublishedAt:    p.PublishedAt,
			Abstract:       p.Abstract,
			SectorTags:     entity.SectorStrings(p.SectorTags),
			Summary:        p.Summary,
			RelevanceScore: p.RelevanceScore,
			CreatedAt:      p.CreatedAt,
		})
	}
	return out
}

func toEventDTOs(items []*entity.Event) []EventDTO {
	out := make([]EventDTO, 0, len(items))
	for _, e := range items {
		out = append(out, EventDTO{
			ID:              e.ID,
			Title:           e.Title,
			Date:            e.Date,
			City:            e.City,
			URL:             e.URL,
			RegistrationURL: e.RegistrationURL,
			Source:          e.Source,
			EventType:       e.EventType,
			SectorTags:      entity.SectorStrings(e.SectorTags),
		})
	}
	return out
}

// ToStartupDTO converts one startup. Nil slices become empty arrays.
func ToStartupDTO(s *entity.Startup) StartupDTO {
	links := s.Links
	if links == nil {
		links = []entity.Link{}
	}
	cofounders := s.CofounderLinkedIns
	if cofounders == nil {
		cofounders = []entity.CofounderLinkedIn{}
	}
	return StartupDTO{
		ID:                 s.ID,
		Name:               s.Name,
		Website:            s.Website,
		SectorTags:         entity.SectorStrings(s.SectorTags),
		FoundingTeam:       s.FoundingTeam,
		WhyInteresting:     s.WhyInteresting,
		MoatNote:           s.MoatNote,
		Featured:           s.Featured,
		OverallScore:       s.OverallScore,
		Signals:            s.Signals,
		Links:              links,
		Accelerator:        s.Accelerator,
		Batch:              s.Batch,
		University:         s.University,
		CofounderLinkedIns: cofounders,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToStartupDTOs converts a list of startups.
func ToStartupDTOs(items []*entity.Startup) []StartupDTO {
	out := make([]StartupDTO, 0, len(items))
	for _, s := range items {
		out = append(out, ToStartupDTO(s))
	}
	return out
}
