package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"venture-feed/internal/domain/entity"
	pg "venture-feed/internal/infra/adapter/persistence/postgres"
	"venture-feed/internal/repository"
)

var startupCols = []string{
	"id", "name", "website", "sector_tags", "founding_team", "why_interesting", "moat_note",
	"featured", "overall_score", "signals", "links", "accelerator", "batch", "university",
	"cofounder_linkedins", "created_at", "updated_at",
}

func startupRow(id int64, name string, score int, at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(startupCols).AddRow(
		id, name, "", `["Fintech"]`, "", "why", "",
		score > 0, score, `{"signed_customers":false,"team_grew":true,"raised_funding":false}`,
		`[{"label":"Source","url":"https://a.example/1"}]`, "", "", "",
		`[]`, at, at,
	)
}

/* ─────────────────────────── Merge ─────────────────────────── */

func TestStartupRepo_Merge_Insert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext(lower($1)))")).
		WithArgs("Acme").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("Acme").
		WillReturnRows(sqlmock.NewRows(startupCols))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO startups")).
		WithArgs("Acme", "", `["Fintech"]`, "", "why", "", true, 5,
			`{"signed_customers":true,"team_grew":false,"raised_funding":false}`,
			`[{"label":"Source","url":"https://a.example/1"}]`, "", "", "", `[]`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))
	mock.ExpectCommit()

	var sawExisting *entity.Startup
	got, created, err := pg.NewStartupRepo(db).Merge(context.Background(), "Acme",
		func(existing *entity.Startup) (*entity.Startup, error) {
			sawExisting = existing
			return &entity.Startup{
				Name: "Acme", SectorTags: []entity.SectorTag{entity.SectorFintech},
				WhyInteresting: "why", Featured: true, OverallScore: 5,
				Signals: entity.Signals{SignedCustomers: true},
				Links:   []entity.Link{{Label: "Source", URL: "https://a.example/1"}},
			}, nil
		})
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}
	if sawExisting != nil {
		t.Fatalf("existing = %+v, want nil", sawExisting)
	}
	if !created || got.ID != 7 {
		t.Fatalf("created=%v id=%d", created, got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStartupRepo_Merge_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	then := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WithArgs("acme").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").WithArgs("acme").
		WillReturnRows(startupRow(3, "Acme", 2, then))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE startups")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			true, 7, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectCommit()

	got, created, err := pg.NewStartupRepo(db).Merge(context.Background(), "acme",
		func(existing *entity.Startup) (*entity.Startup, error) {
			if existing == nil || existing.ID != 3 || !existing.Signals.TeamGrew {
				t.Fatalf("existing = %+v", existing)
			}
			u := *existing
			u.OverallScore += 5
			return &u, nil
		})
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}
	if created {
		t.Fatal("created = true, want false")
	}
	// 既存の名前 (大文字小文字) を保持する
	if got.Name != "Acme" || got.OverallScore != 7 || !got.UpdatedAt.Equal(now) || !got.CreatedAt.Equal(then) {
		t.Fatalf("got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStartupRepo_Merge_FuncErrorRollsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows(startupCols))
	mock.ExpectRollback()

	boom := errors.New("boom")
	_, _, err := pg.NewStartupRepo(db).Merge(context.Background(), "Acme",
		func(*entity.Startup) (*entity.Startup, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStartupRepo_Merge_NilResultWritesNothing(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows(startupCols))
	mock.ExpectRollback()

	got, created, err := pg.NewStartupRepo(db).Merge(context.Background(), "Acme",
		func(*entity.Startup) (*entity.Startup, error) { return nil, nil })
	if err != nil || got != nil || created {
		t.Fatalf("Merge = %v, %v, %v", got, created, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────── Lookups ─────────────────────────── */

func TestStartupRepo_FindByName(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(name) = lower($1)\nORDER BY id\nLIMIT 1")).
		WithArgs("ACME").
		WillReturnRows(startupRow(3, "Acme", 2, at))

	got, err := pg.NewStartupRepo(db).FindByName(context.Background(), "ACME")
	if err != nil {
		t.Fatalf("FindByName err=%v", err)
	}
	if got.ID != 3 || len(got.Links) != 1 || got.Links[0].Label != "Source" {
		t.Fatalf("got %+v", got)
	}
}

func TestStartupRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM startups").WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(startupCols))

	got, err := pg.NewStartupRepo(db).Get(context.Background(), 9)
	if err != nil || got != nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
}

func TestStartupRepo_List_Featured(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	at := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE featured\nORDER BY overall_score DESC")).
		WithArgs(50).
		WillReturnRows(startupRow(1, "A", 9, at))

	got, err := pg.NewStartupRepo(db).List(context.Background(), repository.StartupFilter{FeaturedOnly: true, Limit: 50})
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStartupRepo_UpdateCofounderLinkedIns(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("SET cofounder_linkedins = $1::jsonb")).
		WithArgs(`[{"name":"Ada","url":"https://linkedin.com/in/ada"}]`, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("SET cofounder_linkedins").
		WithArgs(`[]`, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewStartupRepo(db)
	err := repo.UpdateCofounderLinkedIns(context.Background(), 3,
		[]entity.CofounderLinkedIn{{Name: "Ada", URL: "https://linkedin.com/in/ada"}})
	if err != nil {
		t.Fatalf("UpdateCofounderLinkedIns err=%v", err)
	}
	err = repo.UpdateCofounderLinkedIns(context.Background(), 4, nil)
	if !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
