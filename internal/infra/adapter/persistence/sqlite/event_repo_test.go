package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence/sqlite"
	"venture-feed/internal/repository"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEventRepo_UpsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewEventRepo(db)
	ctx := context.Background()

	ev := &entity.Event{
		Title: "YC Demo Day", Date: date(2025, 9, 10), City: "San Francisco",
		URL: "https://events.example/yc", Source: "Y Combinator", EventType: "Demo Day",
		SectorTags: []entity.SectorTag{entity.SectorAINative},
	}
	if err := repo.Upsert(ctx, ev); err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	firstID := ev.ID

	moved := *ev
	moved.Date = date(2026, 3, 12)
	moved.Title = "YC Demo Day (Spring)"
	if err := repo.Upsert(ctx, &moved); err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if moved.ID != firstID {
		t.Fatalf("ID changed %d → %d", firstID, moved.ID)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n); err != nil || n != 1 {
		t.Fatalf("count = %d, %v", n, err)
	}

	got, err := repo.List(ctx, repository.EventFilter{})
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if got[0].Title != "YC Demo Day (Spring)" || !got[0].Date.Equal(date(2026, 3, 12)) {
		t.Fatalf("got %+v", got[0])
	}
}

func TestEventRepo_DeleteByURLs(t *testing.T) {
	repo := sqlite.NewEventRepo(newTestDB(t))
	ctx := context.Background()

	for _, u := range []string{"https://e.example/a", "https://e.example/b", "https://e.example/c"} {
		if err := repo.Upsert(ctx, &entity.Event{Title: u, Date: date(2025, 1, 1), URL: u}); err != nil {
			t.Fatalf("Upsert err=%v", err)
		}
	}
	n, err := repo.DeleteByURLs(ctx, []string{"https://e.example/a", "https://e.example/c", "https://e.example/zzz"})
	if err != nil || n != 2 {
		t.Fatalf("DeleteByURLs = %d, %v", n, err)
	}
	n, err = repo.DeleteByURLs(ctx, nil)
	if err != nil || n != 0 {
		t.Fatalf("DeleteByURLs(nil) = %d, %v", n, err)
	}
}

func TestEventRepo_ListWindows(t *testing.T) {
	repo := sqlite.NewEventRepo(newTestDB(t))
	ctx := context.Background()

	seed := []entity.Event{
		{Title: "past-10", Date: date(2025, 7, 9), City: "NYC"},
		{Title: "past-3", Date: date(2025, 7, 16), City: "San Francisco"},
		{Title: "today", Date: date(2025, 7, 19), City: "NYC"},
		{Title: "future", Date: date(2025, 8, 1), City: "nyc"},
	}
	for i := range seed {
		seed[i].URL = "https://e.example/" + seed[i].Title
		if err := repo.Upsert(ctx, &seed[i]); err != nil {
			t.Fatalf("Upsert err=%v", err)
		}
	}

	today := date(2025, 7, 19)
	weekAgo := today.AddDate(0, 0, -7)
	titles := func(f repository.EventFilter) []string {
		t.Helper()
		got, err := repo.List(ctx, f)
		if err != nil {
			t.Fatalf("List err=%v", err)
		}
		out := make([]string, len(got))
		for i, e := range got {
			out[i] = e.Title
		}
		return out
	}

	tests := []struct {
		name   string
		filter repository.EventFilter
		want   []string
	}{
		{"today and future ascending", repository.EventFilter{Since: &today}, []string{"today", "future"}},
		{"past week descending", repository.EventFilter{Since: &weekAgo, Until: &today, Past: true}, []string{"past-3"}},
		{"all past descending", repository.EventFilter{Until: &today, Past: true}, []string{"past-3", "past-10"}},
		{"city is case-insensitive", repository.EventFilter{City: "NYC", Since: &today}, []string{"today", "future"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, titles(tt.filter)); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
