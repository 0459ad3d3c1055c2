package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"venture-feed/internal/config"
	"venture-feed/internal/domain/entity"
	"venture-feed/internal/usecase/classify"
	"venture-feed/internal/usecase/ingest"
)

func TestRunResearch(t *testing.T) {
	src := &config.Sources{Research: config.Feed{Name: "arXiv", URL: "http://export.arxiv.example/api/query"}}
	f := newFixture(src)
	f.feeds.items[src.Research.URL] = []ingest.FeedItem{
		{Title: "Scaling robots", URL: "http://arxiv.example/abs/1", Content: "  We   study\n scaling. "},
		{Title: "", URL: "http://arxiv.example/abs/2", Content: "no title"},
		{Title: "Known", URL: "http://arxiv.example/abs/3"},
	}
	f.papers.rows = []*entity.ResearchPaper{{ID: 7, URL: "http://arxiv.example/abs/3"}}
	f.classifier.research = classify.ResearchClassification{
		SectorTags:     []entity.SectorTag{entity.SectorRobotics},
		Summary:        "Robots scale.",
		RelevanceScore: 6,
	}

	stats, err := f.svc.RunResearch(context.Background())
	if err != nil {
		t.Fatalf("RunResearch err=%v", err)
	}
	if stats.Fetched != 3 || stats.Skipped != 2 || stats.Ingested != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if diff := cmp.Diff([]string{"We study scaling."}, f.classifier.researchAbstracts); diff != "" {
		t.Errorf("abstracts mismatch (-want +got)\n%s", diff)
	}
	p := f.papers.rows[1]
	if p.Source != "arXiv" || p.Abstract != "We study scaling." || p.RelevanceScore != 6 {
		t.Errorf("unexpected paper: %+v", p)
	}
}

func TestRunResearch_FetchError(t *testing.T) {
	src := &config.Sources{Research: config.Feed{Name: "arXiv", URL: "http://export.arxiv.example/api/query"}}
	f := newFixture(src)
	f.feeds.errs[src.Research.URL] = errBoom

	stats, err := f.svc.RunResearch(context.Background())
	if err != nil {
		t.Fatalf("RunResearch err=%v", err)
	}
	if stats.FetchErrors != 1 || stats.Ingested != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestMapDirectoryTags(t *testing.T) {
	tests := []struct {
		in   []string
		want []entity.SectorTag
	}{
		{in: nil, want: []entity.SectorTag{}},
		{in: []string{"B2B", "Developer Tools"}, want: []entity.SectorTag{}},
		{in: []string{"Generative AI", "AI", "Fintech"}, want: []entity.SectorTag{entity.SectorAINative, entity.SectorFintech}},
		{in: []string{"SaaS", "Robotics"}, want: []entity.SectorTag{entity.SectorVerticalSaaS, entity.SectorRobotics}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ingest.MapDirectoryTags(tt.in)); diff != "" {
				t.Errorf("MapDirectoryTags mismatch (-want +got)\n%s", diff)
			}
		})
	}
}

func TestRunAccelerators(t *testing.T) {
	src := &config.Sources{Accelerator: config.Directory{Name: "YC", URL: "https://api.directory.example/companies"}}
	f := newFixture(src)
	f.svc.Directory = &stubDirectory{companies: []ingest.Company{
		{Name: "Acme", Website: "https://acme.example", OneLiner: "Payments for robots", URL: "https://yc.example/acme", Batch: "W25", Tags: []string{"Fintech"}},
		{Name: "Newco", LongDescription: "A long description", Tags: []string{"B2B"}},
		{Name: "  "},
	}}
	// ニュース由来の既存行
	_, _, _ = f.startups.Merge(context.Background(), "acme", func(*entity.Startup) (*entity.Startup, error) {
		return &entity.Startup{Name: "ACME", OverallScore: 4, SectorTags: []entity.SectorTag{entity.SectorAINative}}, nil
	})

	stats, err := f.svc.RunAccelerators(context.Background())
	if err != nil {
		t.Fatalf("RunAccelerators err=%v", err)
	}
	if stats.Fetched != 3 || stats.Skipped != 1 || stats.Ingested != 2 || stats.StartupsCreated != 1 || stats.StartupsUpdated != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	acme := f.startups.byName("Acme")
	if acme.Name != "ACME" || acme.Accelerator != "YC" || acme.Batch != "W25" || !acme.Featured {
		t.Errorf("unexpected merged row: %+v", acme)
	}
	if acme.OverallScore != 4 {
		t.Errorf("directory merge changed score to %d", acme.OverallScore)
	}
	if diff := cmp.Diff([]entity.SectorTag{entity.SectorFintech}, acme.SectorTags); diff != "" {
		t.Errorf("sector tags mismatch (-want +got)\n%s", diff)
	}

	newco := f.startups.byName("Newco")
	if newco.OverallScore != 1 || newco.WhyInteresting != "A long description" {
		t.Errorf("unexpected created row: %+v", newco)
	}
	if diff := cmp.Diff([]entity.SectorTag{entity.SectorOther}, newco.SectorTags); diff != "" {
		t.Errorf("sector tags mismatch (-want +got)\n%s", diff)
	}
	if len(f.alerter.startups) != 0 {
		t.Errorf("directory imports must not alert, got %v", f.alerter.startups)
	}
}

func TestRunAccelerators_FetchError(t *testing.T) {
	src := &config.Sources{Accelerator: config.Directory{Name: "YC", URL: "https://api.directory.example/companies"}}
	f := newFixture(src)
	f.svc.Directory = &stubDirectory{err: errBoom}

	stats, err := f.svc.RunAccelerators(context.Background())
	if err != nil {
		t.Fatalf("RunAccelerators err=%v", err)
	}
	if stats.FetchErrors != 1 || stats.Fetched != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name       string
		month, day int
		now        time.Time
		want       string
	}{
		{name: "later this year", month: 12, day: 8, now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), want: "2026-12-08"},
		{name: "today counts", month: 3, day: 26, now: time.Date(2026, 3, 26, 23, 59, 0, 0, time.UTC), want: "2026-03-26"},
		{name: "already past rolls over", month: 3, day: 26, now: time.Date(2026, 3, 27, 0, 0, 1, 0, time.UTC), want: "2027-03-26"},
		{name: "new year", month: 1, day: 1, now: time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC), want: "2027-01-01"},
		{name: "local calendar day", month: 5, day: 5, now: time.Date(2026, 5, 5, 1, 0, 0, 0, time.FixedZone("JST", 9*3600)), want: "2026-05-05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ingest.NextOccurrence(tt.month, tt.day, tt.now).Format("2006-01-02")
			if got != tt.want {
				t.Errorf("NextOccurrence=%s, want %s", got, tt.want)
			}
		})
	}
}

func TestRunEvents_Idempotent(t *testing.T) {
	src := &config.Sources{
		Events: []config.EventTemplate{
			{Title: "NeurIPS", City: "Vancouver", Month: 12, Day: 8, URL: "https://nips.example", Source: "NeurIPS", EventType: "conference", SectorTags: []string{"AI-native", "bogus"}},
			{Title: "Demo Day", City: "San Francisco", Month: 3, Day: 26, URL: "https://demoday.example", Source: "YC", EventType: "demo_day"},
		},
		RetiredEventURLs: []string{"https://retired.example"},
	}
	f := newFixture(src)
	f.events.byURL["https://retired.example"] = &entity.Event{ID: 50, URL: "https://retired.example"}
	f.svc.Now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }

	for i := 0; i < 2; i++ {
		stats, err := f.svc.RunEvents(context.Background())
		if err != nil {
			t.Fatalf("RunEvents #%d err=%v", i, err)
		}
		if stats.Ingested != 2 {
			t.Fatalf("run #%d ingested=%d, want 2", i, stats.Ingested)
		}
	}

	if len(f.events.byURL) != 2 {
		t.Fatalf("events=%d, want 2", len(f.events.byURL))
	}
	if _, ok := f.events.byURL["https://retired.example"]; ok {
		t.Error("retired event still present")
	}
	neurips := f.events.byURL["https://nips.example"]
	if got := neurips.Date.Format("2006-01-02"); got != "2026-12-08" {
		t.Errorf("NeurIPS date=%s", got)
	}
	if diff := cmp.Diff([]entity.SectorTag{entity.SectorAINative}, neurips.SectorTags); diff != "" {
		t.Errorf("sector tags mismatch (-want +got)\n%s", diff)
	}
	if got := f.events.byURL["https://demoday.example"].Date.Format("2006-01-02"); got != "2027-03-26" {
		t.Errorf("Demo Day date=%s", got)
	}
}

func TestRunEvents_UpsertErrorCounted(t *testing.T) {
	src := &config.Sources{Events: []config.EventTemplate{{Title: "X", Month: 1, Day: 1, URL: "https://x.example"}}}
	f := newFixture(src)
	f.events.upsertErr = errBoom

	stats, err := f.svc.RunEvents(context.Background())
	if err != nil {
		t.Fatalf("RunEvents err=%v", err)
	}
	if stats.PersistErrors != 1 || stats.Ingested != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestBackfillStartups(t *testing.T) {
	f := newFixture(&config.Sources{})
	f.articles.rows = []*entity.Article{
		{ID: 1, Title: "old", URL: "https://wire.example/old", SectorTags: []entity.SectorTag{entity.SectorAINative}},
		{ID: 2, Title: "new", URL: "https://wire.example/new", EventType: entity.EventMajorHiring},
	}
	f.classifier.mentions["old"] = []classify.StartupMention{{Name: "Delta"}}
	f.classifier.mentions["new"] = []classify.StartupMention{{Name: "Delta"}}

	stats, err := f.svc.BackfillStartups(context.Background(), 0)
	if err != nil {
		t.Fatalf("BackfillStartups err=%v", err)
	}
	if stats.Fetched != 2 || stats.StartupsCreated != 1 || stats.StartupsUpdated != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if diff := cmp.Diff([]string{"new", "old"}, f.classifier.extracted); diff != "" {
		t.Errorf("extraction order mismatch (-want +got)\n%s", diff)
	}
	if len(f.articles.rows) != 2 {
		t.Errorf("backfill inserted articles: %d", len(f.articles.rows))
	}
	// new: 1 + 2 (hiring), old: 1 (AI-native)
	if got := f.startups.byName("delta").OverallScore; got != 4 {
		t.Errorf("score=%d, want 4", got)
	}
}

func TestBackfillStartups_ListError(t *testing.T) {
	f := newFixture(&config.Sources{})
	f.articles.listErr = errBoom

	_, err := f.svc.BackfillStartups(context.Background(), 10)
	if !errors.Is(err, ingest.ErrPersistenceFailed) || !errors.Is(err, errBoom) {
		t.Fatalf("err=%v, want persistence error wrapping boom", err)
	}
}

func TestErrorTypes(t *testing.T) {
	var err error = &ingest.FetchError{Source: "TechCrunch", Err: errBoom}
	if !errors.Is(err, ingest.ErrFetchFailed) || !errors.Is(err, errBoom) {
		t.Errorf("FetchError does not match sentinels: %v", err)
	}
	var fe *ingest.FetchError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &fe) || fe.Source != "TechCrunch" {
		t.Errorf("errors.As failed for %v", err)
	}
	if err.Error() != "fetch TechCrunch: boom" {
		t.Errorf("Error()=%q", err.Error())
	}

	err = &ingest.PersistenceError{Op: "create article", Err: errBoom}
	if !errors.Is(err, ingest.ErrPersistenceFailed) || errors.Is(err, ingest.ErrFetchFailed) {
		t.Errorf("PersistenceError sentinel mismatch: %v", err)
	}
}
