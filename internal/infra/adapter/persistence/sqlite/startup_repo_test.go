package sqlite_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence/sqlite"
	"venture-feed/internal/repository"
)

func addScore(points int) repository.MergeFunc {
	return func(existing *entity.Startup) (*entity.Startup, error) {
		if existing == nil {
			return &entity.Startup{Name: "Acme", OverallScore: points, Featured: points > 0}, nil
		}
		u := *existing
		u.OverallScore += points
		u.Featured = u.OverallScore > 0
		return &u, nil
	}
}

func TestStartupRepo_MergeCreateThenUpdate(t *testing.T) {
	repo := sqlite.NewStartupRepo(newTestDB(t))
	ctx := context.Background()

	created, isNew, err := repo.Merge(ctx, "Acme", func(existing *entity.Startup) (*entity.Startup, error) {
		if existing != nil {
			t.Fatalf("existing = %+v", existing)
		}
		return &entity.Startup{
			Name: "Acme", OverallScore: 5, Featured: true,
			SectorTags: []entity.SectorTag{entity.SectorFintech},
			Signals:    entity.Signals{SignedCustomers: true},
			Links:      []entity.Link{{Label: "Source", URL: "https://a.example/1"}},
		}, nil
	})
	if err != nil || !isNew || created.ID == 0 {
		t.Fatalf("Merge = %+v, %v, %v", created, isNew, err)
	}

	// 名前の大文字小文字は無視される
	updated, isNew, err := repo.Merge(ctx, "ACME", func(existing *entity.Startup) (*entity.Startup, error) {
		if existing == nil || existing.ID != created.ID || !existing.Signals.SignedCustomers {
			t.Fatalf("existing = %+v", existing)
		}
		u := *existing
		u.OverallScore += 4
		u.Signals.RaisedFunding = true
		u.Links = append(u.Links, entity.Link{Label: "Source", URL: "https://a.example/2"})
		return &u, nil
	})
	if err != nil || isNew {
		t.Fatalf("Merge = %v, %v", isNew, err)
	}
	if updated.ID != created.ID || updated.Name != "Acme" {
		t.Fatalf("updated = %+v", updated)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got.OverallScore != 9 || !got.Featured {
		t.Fatalf("score=%d featured=%v", got.OverallScore, got.Featured)
	}
	if diff := cmp.Diff(entity.Signals{SignedCustomers: true, RaisedFunding: true}, got.Signals); diff != "" {
		t.Fatalf("signals mismatch (-want +got):\n%s", diff)
	}
	if len(got.Links) != 2 || len(got.CofounderLinkedIns) != 0 {
		t.Fatalf("links=%v cofounders=%v", got.Links, got.CofounderLinkedIns)
	}
}

func TestStartupRepo_Merge_ErrorLeavesStoreUntouched(t *testing.T) {
	repo := sqlite.NewStartupRepo(newTestDB(t))
	ctx := context.Background()

	boom := errors.New("boom")
	if _, _, err := repo.Merge(ctx, "Acme", func(*entity.Startup) (*entity.Startup, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if _, _, err := repo.Merge(ctx, "Acme", func(*entity.Startup) (*entity.Startup, error) { return nil, nil }); err != nil {
		t.Fatalf("nil merge err=%v", err)
	}
	got, err := repo.FindByName(ctx, "acme")
	if err != nil || got != nil {
		t.Fatalf("FindByName = %v, %v; want nil, nil", got, err)
	}
}

func TestStartupRepo_Merge_ConcurrentSameName(t *testing.T) {
	repo := sqlite.NewStartupRepo(newTestDB(t))
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := repo.Merge(ctx, "Acme", addScore(1)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Merge err=%v", err)
	}

	all, err := repo.List(ctx, repository.StartupFilter{})
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(all) != 1 || all[0].OverallScore != 10 {
		t.Fatalf("want one row with score 10, got %d rows (%+v)", len(all), all)
	}
}

func TestStartupRepo_List_Views(t *testing.T) {
	repo := sqlite.NewStartupRepo(newTestDB(t))
	ctx := context.Background()

	seed := []entity.Startup{
		{Name: "News Co", OverallScore: 5, Featured: true, SectorTags: []entity.SectorTag{entity.SectorAINative}},
		{Name: "YC Co", OverallScore: 1, Featured: true, Accelerator: "YC", Batch: "W25", SectorTags: []entity.SectorTag{entity.SectorFintech}},
		{Name: "Lab Co", OverallScore: 9, University: "MIT", SectorTags: []entity.SectorTag{entity.SectorRobotics, entity.SectorAINative}},
	}
	for _, s := range seed {
		if _, _, err := repo.Merge(ctx, s.Name, func(*entity.Startup) (*entity.Startup, error) { return &s, nil }); err != nil {
			t.Fatalf("Merge err=%v", err)
		}
	}

	names := func(f repository.StartupFilter) []string {
		t.Helper()
		got, err := repo.List(ctx, f)
		if err != nil {
			t.Fatalf("List err=%v", err)
		}
		out := make([]string, len(got))
		for i, s := range got {
			out[i] = s.Name
		}
		return out
	}

	ai := entity.SectorAINative
	tests := []struct {
		name   string
		filter repository.StartupFilter
		want   []string
	}{
		{"all by score", repository.StartupFilter{}, []string{"Lab Co", "News Co", "YC Co"}},
		{"news", repository.StartupFilter{View: repository.ViewNews}, []string{"News Co"}},
		{"accelerators", repository.StartupFilter{View: repository.ViewAccelerators}, []string{"YC Co"}},
		{"academic", repository.StartupFilter{View: repository.ViewAcademic}, []string{"Lab Co"}},
		{"accelerator name", repository.StartupFilter{Accelerator: "SPC"}, []string{}},
		{"university name", repository.StartupFilter{University: "MIT"}, []string{"Lab Co"}},
		{"sector", repository.StartupFilter{Sector: &ai}, []string{"Lab Co", "News Co"}},
		{"featured", repository.StartupFilter{FeaturedOnly: true}, []string{"News Co", "YC Co"}},
		{"limit", repository.StartupFilter{Limit: 1}, []string{"Lab Co"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, names(tt.filter)); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStartupRepo_FindByName_FirstByID(t *testing.T) {
	db := newTestDB(t)
	repo := sqlite.NewStartupRepo(db)
	ctx := context.Background()

	// 重複行は一意制約がないため直接挿入で再現する
	for i, name := range []string{"Acme", "ACME"} {
		if _, err := db.Exec(`INSERT INTO startups (name, overall_score, created_at, updated_at) VALUES (?, ?, 0, 0)`, name, i); err != nil {
			t.Fatalf("insert err=%v", err)
		}
	}
	got, err := repo.FindByName(ctx, "acme")
	if err != nil {
		t.Fatalf("FindByName err=%v", err)
	}
	if got.Name != "Acme" || got.OverallScore != 0 {
		t.Fatalf("got %+v", got)
	}
}

func TestStartupRepo_UpdateCofounderLinkedIns(t *testing.T) {
	repo := sqlite.NewStartupRepo(newTestDB(t))
	ctx := context.Background()

	s, _, err := repo.Merge(ctx, "Acme", addScore(1))
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}
	links := []entity.CofounderLinkedIn{{Name: "Ada", URL: "https://linkedin.com/in/ada"}}
	if err := repo.UpdateCofounderLinkedIns(ctx, s.ID, links); err != nil {
		t.Fatalf("UpdateCofounderLinkedIns err=%v", err)
	}
	got, err := repo.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(links, got.CofounderLinkedIns); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	err = repo.UpdateCofounderLinkedIns(ctx, s.ID+100, links)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
