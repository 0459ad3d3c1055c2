package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/repository"
)

const (
	// MaxLimit caps caller-supplied limits.
	MaxLimit = 500
	// FeaturedLimit is the size of the featured startups list.
	FeaturedLimit = 50
)

// ArticleQuery filters GET /articles. Empty fields are not applied.
type ArticleQuery struct {
	Sector    string
	TimeRange string
	Stage     string
	Limit     int
}

// ResearchQuery filters GET /research.
type ResearchQuery struct {
	Sector    string
	TimeRange string
	Limit     int
}

// EventQuery filters GET /events. City "All" is the same as no city.
type EventQuery struct {
	City      string
	TimeRange string
	Limit     int
}

// StartupQuery filters GET /startups.
type StartupQuery struct {
	Sector      string
	View        string
	Accelerator string
	University  string
	Limit       int
}

// Service provides the read use cases.
type Service struct {
	Articles repository.ArticleRepository
	Papers   repository.ResearchRepository
	Events   repository.EventRepository
	Startups repository.StartupRepository

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListArticles returns articles newest first. The default window is all time.
func (s *Service) ListArticles(ctx context.Context, q ArticleQuery) ([]*entity.Article, error) {
	tr, err := ParseTimeRange(q.TimeRange, RangeAll)
	if err != nil {
		return nil, err
	}
	sector, err := parseSector(q.Sector)
	if err != nil {
		return nil, err
	}
	f := repository.SignalFilter{
		Sector: sector,
		Since:  tr.Since(s.now()),
		Limit:  clampLimit(q.Limit),
	}
	if q.Stage != "" {
		st, ok := entity.ParseStage(q.Stage)
		if !ok {
			return nil, &entity.ValidationError{Field: "stage", Message: "stage must be one of early_stage, growth_late_stage, public_pe"}
		}
		f.Stage = &st
	}

	articles, err := s.Articles.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// ListResearch returns research papers. The default window is today onward.
func (s *Service) ListResearch(ctx context.Context, q ResearchQuery) ([]*entity.ResearchPaper, error) {
	tr, err := ParseTimeRange(q.TimeRange, RangeTodayFuture)
	if err != nil {
		return nil, err
	}
	sector, err := parseSector(q.Sector)
	if err != nil {
		return nil, err
	}
	papers, err := s.Papers.List(ctx, repository.SignalFilter{
		Sector: sector,
		Since:  tr.Since(s.now()),
		Limit:  clampLimit(q.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list research: %w", err)
	}
	return papers, nil
}

// ListEvents returns upcoming events ascending for today_future. Every other
// window lists past events in [today-N, today) descending; all has no lower bound.
func (s *Service) ListEvents(ctx context.Context, q EventQuery) ([]*entity.Event, error) {
	tr, err := ParseTimeRange(q.TimeRange, RangeTodayFuture)
	if err != nil {
		return nil, err
	}

	today := startOfDay(s.now())
	f := repository.EventFilter{Limit: clampLimit(q.Limit)}
	if city := strings.TrimSpace(q.City); city != "" && !strings.EqualFold(city, "All") {
		f.City = city
	}
	if tr == RangeTodayFuture {
		f.Since = &today
	} else {
		f.Past = true
		f.Since = tr.Since(today)
		f.Until = &today
	}

	events, err := s.Events.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListStartups returns startups by overall score descending.
func (s *Service) ListStartups(ctx context.Context, q StartupQuery) ([]*entity.Startup, error) {
	sector, err := parseSector(q.Sector)
	if err != nil {
		return nil, err
	}
	view := repository.StartupView(q.View)
	switch view {
	case repository.ViewAll, repository.ViewNews, repository.ViewAccelerators, repository.ViewAcademic:
	default:
		return nil, &entity.ValidationError{Field: "view", Message: "view must be one of news, accelerators, academic"}
	}

	startups, err := s.Startups.List(ctx, repository.StartupFilter{
		Sector:      sector,
		View:        view,
		Accelerator: strings.TrimSpace(q.Accelerator),
		University:  strings.TrimSpace(q.University),
		Limit:       clampLimit(q.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}
	return startups, nil
}

// ListFeatured returns the top featured startups.
func (s *Service) ListFeatured(ctx context.Context) ([]*entity.Startup, error) {
	startups, err := s.Startups.List(ctx, repository.StartupFilter{FeaturedOnly: true, Limit: FeaturedLimit})
	if err != nil {
		return nil, fmt.Errorf("list featured startups: %w", err)
	}
	return startups, nil
}

func parseSector(s string) (*entity.SectorTag, error) {
	if s == "" || strings.EqualFold(s, "All") {
		return nil, nil
	}
	tag := entity.SectorTag(s)
	if !tag.IsValid() {
		return nil, &entity.ValidationError{Field: "sector", Message: "sector must be one of AI-native, Vertical SaaS, Fintech, Robotics, Other"}
	}
	return &tag, nil
}

func clampLimit(limit int) int {
	if limit > MaxLimit {
		return MaxLimit
	}
	return repository.LimitOr(limit)
}
