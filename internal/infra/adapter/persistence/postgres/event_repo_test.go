package postgres_test

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"venture-feed/internal/domain/entity"
	pg "venture-feed/internal/infra/adapter/persistence/postgres"
	"venture-feed/internal/repository"
)

func TestEventRepo_Upsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	ev := &entity.Event{
		Title: "YC Demo Day", Date: time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
		City: "San Francisco", URL: "https://events.example/yc", Source: "Y Combinator",
		EventType: "Demo Day", SectorTags: []entity.SectorTag{entity.SectorAINative},
	}
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (url) DO UPDATE")).
		WithArgs("YC Demo Day", "2025-09-10", "San Francisco", ev.URL, "", "Y Combinator",
			"Demo Day", `["AI-native"]`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), time.Now()))

	if err := pg.NewEventRepo(db).Upsert(context.Background(), ev); err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if ev.ID != 5 {
		t.Fatalf("ID = %d", ev.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestEventRepo_DeleteByURLs(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE url IN ($1, $2)")).
		WithArgs("https://old.example/a", "https://old.example/b").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewEventRepo(db)
	n, err := repo.DeleteByURLs(context.Background(), []string{"https://old.example/a", "https://old.example/b"})
	if err != nil || n != 1 {
		t.Fatalf("DeleteByURLs = %d, %v", n, err)
	}

	// 空リストはクエリを発行しない
	n, err = repo.DeleteByURLs(context.Background(), nil)
	if err != nil || n != 0 {
		t.Fatalf("DeleteByURLs(nil) = %d, %v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestEventRepo_List(t *testing.T) {
	cols := []string{"id", "title", "date", "city", "url", "registration_url", "source", "event_type", "sector_tags", "created_at"}
	today := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	weekAgo := today.AddDate(0, 0, -7)

	tests := []struct {
		name   string
		filter repository.EventFilter
		query  string
		args   []driver.Value
	}{
		{
			name:   "upcoming ascending",
			filter: repository.EventFilter{Since: &today},
			query:  "WHERE date >= $1::date\nORDER BY date ASC, id",
			args:   []driver.Value{"2025-07-19", repository.DefaultLimit},
		},
		{
			name:   "past window descending",
			filter: repository.EventFilter{City: "NYC", Since: &weekAgo, Until: &today, Past: true},
			query:  "WHERE lower(city) = lower($1) AND date >= $2::date AND date < $3::date\nORDER BY date DESC, id",
			args:   []driver.Value{"NYC", "2025-07-12", "2025-07-19", repository.DefaultLimit},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := sqlmock.New()
			defer func() { _ = db.Close() }()

			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows(cols).AddRow(
					int64(1), "Summit", today, "NYC", "https://e.example", "", "src", "Conference", `[]`, today))

			got, err := pg.NewEventRepo(db).List(context.Background(), tt.filter)
			if err != nil || len(got) != 1 {
				t.Fatalf("List err=%v len=%d", err, len(got))
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatal(err)
			}
		})
	}
}
