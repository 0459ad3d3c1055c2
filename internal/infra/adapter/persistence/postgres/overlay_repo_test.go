package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"venture-feed/internal/domain/entity"
	pg "venture-feed/internal/infra/adapter/persistence/postgres"
)

func TestItemRefRepo_PinsAndDismissedUseOwnTables(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	ref := entity.ItemRef{UserID: "demo", ItemType: entity.ItemArticle, ItemID: 12}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pins (user_id, item_type, item_id)")).
		WithArgs("demo", "article", int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO dismissed_items")).
		WithArgs("demo", "article", int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pins WHERE user_id = $1 AND item_type = $2 AND item_id = $3")).
		WithArgs("demo", "article", int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	if err := pg.NewPinRepo(db).Add(ctx, ref); err != nil {
		t.Fatalf("pin Add err=%v", err)
	}
	if err := pg.NewDismissedRepo(db).Add(ctx, ref); err != nil {
		t.Fatalf("dismiss Add err=%v", err)
	}
	if err := pg.NewPinRepo(db).Remove(ctx, ref); err != nil {
		t.Fatalf("pin Remove err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestItemRefRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("FROM pins").
		WithArgs("demo").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "item_type", "item_id", "created_at"}).
			AddRow("demo", "startup", int64(4), now).
			AddRow("demo", "event", int64(2), now))

	got, err := pg.NewPinRepo(db).List(context.Background(), "demo")
	if err != nil || len(got) != 2 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if got[0].Key() != "startup:4" || got[1].ItemType != entity.ItemEvent {
		t.Fatalf("got %+v", got)
	}
}

func TestStarRepo_ListStartups(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("INNER JOIN startups s ON s.id = ss.startup_id")).
		WithArgs("demo").
		WillReturnRows(startupRow(3, "Acme", 4, time.Now()))

	got, err := pg.NewStarRepo(db).ListStartups(context.Background(), "demo")
	if err != nil || len(got) != 1 || got[0].Name != "Acme" {
		t.Fatalf("ListStartups = %+v, %v", got, err)
	}
}

func TestSubscriptionRepo_Subscribers(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec("INSERT INTO startup_subscriptions").
		WithArgs("u1", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT user_id FROM startup_subscriptions").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1").AddRow("u2"))

	repo := pg.NewSubscriptionRepo(db)
	if err := repo.Add(context.Background(), "u1", 3); err != nil {
		t.Fatalf("Add err=%v", err)
	}
	users, err := repo.Subscribers(context.Background(), 3)
	if err != nil || len(users) != 2 {
		t.Fatalf("Subscribers = %v, %v", users, err)
	}
}

func TestPreferenceRepo_GetMissingAndUpsert(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM notification_preferences").
		WithArgs("demo").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "digest_enabled", "frequency", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (user_id) DO UPDATE")).
		WithArgs("demo", "a@b.example", true, "weekly").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	repo := pg.NewPreferenceRepo(db)
	got, err := repo.Get(context.Background(), "demo")
	if err != nil || got != nil {
		t.Fatalf("Get = %v, %v; want nil, nil", got, err)
	}

	pref := &entity.NotificationPreference{UserID: "demo", Email: "a@b.example", DigestEnabled: true, Frequency: entity.DigestWeekly}
	if err := repo.Upsert(context.Background(), pref); err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	if !pref.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt = %v", pref.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
