package sqlite_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence/sqlite"
)

func TestItemRefRepo_AddIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	pins := sqlite.NewPinRepo(db)
	dismissed := sqlite.NewDismissedRepo(db)
	ctx := context.Background()

	ref := entity.ItemRef{UserID: "demo", ItemType: entity.ItemArticle, ItemID: 7}
	for i := 0; i < 2; i++ {
		if err := pins.Add(ctx, ref); err != nil {
			t.Fatalf("Add err=%v", err)
		}
	}
	got, err := pins.List(ctx, "demo")
	if err != nil || len(got) != 1 || got[0].Key() != "article:7" {
		t.Fatalf("List = %+v, %v", got, err)
	}

	// dismissals are a separate set
	other, err := dismissed.List(ctx, "demo")
	if err != nil || len(other) != 0 {
		t.Fatalf("dismissed List = %+v, %v", other, err)
	}

	if err := pins.Remove(ctx, ref); err != nil {
		t.Fatalf("Remove err=%v", err)
	}
	// removing twice is fine
	if err := pins.Remove(ctx, ref); err != nil {
		t.Fatalf("Remove err=%v", err)
	}
	got, _ = pins.List(ctx, "demo")
	if len(got) != 0 {
		t.Fatalf("after Remove len=%d", len(got))
	}
}

func TestItemRefRepo_ScopedByUser(t *testing.T) {
	pins := sqlite.NewPinRepo(newTestDB(t))
	ctx := context.Background()

	_ = pins.Add(ctx, entity.ItemRef{UserID: "a", ItemType: entity.ItemEvent, ItemID: 1})
	_ = pins.Add(ctx, entity.ItemRef{UserID: "b", ItemType: entity.ItemEvent, ItemID: 2})

	got, err := pins.List(ctx, "b")
	if err != nil || len(got) != 1 || got[0].ItemID != 2 {
		t.Fatalf("List = %+v, %v", got, err)
	}
}

func TestStarRepo_ListStartups(t *testing.T) {
	db := newTestDB(t)
	startups := sqlite.NewStartupRepo(db)
	stars := sqlite.NewStarRepo(db)
	ctx := context.Background()

	s, _, err := startups.Merge(ctx, "Acme", addScore(0))
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}
	if err := stars.Add(ctx, "demo", s.ID); err != nil {
		t.Fatalf("Add err=%v", err)
	}
	if err := stars.Add(ctx, "demo", s.ID); err != nil {
		t.Fatalf("Add twice err=%v", err)
	}
	got, err := stars.ListStartups(ctx, "demo")
	if err != nil || len(got) != 1 || got[0].Name != "Acme" {
		t.Fatalf("ListStartups = %+v, %v", got, err)
	}

	if err := stars.Remove(ctx, "demo", s.ID); err != nil {
		t.Fatalf("Remove err=%v", err)
	}
	got, _ = stars.ListStartups(ctx, "demo")
	if len(got) != 0 {
		t.Fatalf("after Remove len=%d", len(got))
	}
}

func TestStarRepo_UnknownStartupRejected(t *testing.T) {
	stars := sqlite.NewStarRepo(newTestDB(t))
	// foreign_keys=ON
	if err := stars.Add(context.Background(), "demo", 999); err == nil {
		t.Fatal("want foreign key error")
	}
}

func TestSubscriptionRepo(t *testing.T) {
	db := newTestDB(t)
	startups := sqlite.NewStartupRepo(db)
	subs := sqlite.NewSubscriptionRepo(db)
	ctx := context.Background()

	s, _, err := startups.Merge(ctx, "Acme", addScore(1))
	if err != nil {
		t.Fatalf("Merge err=%v", err)
	}
	for _, u := range []string{"u2", "u1", "u1"} {
		if err := subs.Add(ctx, u, s.ID); err != nil {
			t.Fatalf("Add err=%v", err)
		}
	}
	users, err := subs.Subscribers(ctx, s.ID)
	if err != nil {
		t.Fatalf("Subscribers err=%v", err)
	}
	if diff := cmp.Diff([]string{"u1", "u2"}, users); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	list, err := subs.List(ctx, "u1")
	if err != nil || len(list) != 1 || list[0].StartupID != s.ID {
		t.Fatalf("List = %+v, %v", list, err)
	}
	if err := subs.Remove(ctx, "u1", s.ID); err != nil {
		t.Fatalf("Remove err=%v", err)
	}
	list, _ = subs.List(ctx, "u1")
	if len(list) != 0 {
		t.Fatalf("after Remove len=%d", len(list))
	}
}

func TestPreferenceRepo(t *testing.T) {
	prefs := sqlite.NewPreferenceRepo(newTestDB(t))
	ctx := context.Background()

	got, err := prefs.Get(ctx, "demo")
	if err != nil || got != nil {
		t.Fatalf("Get = %v, %v; want nil, nil", got, err)
	}

	p := &entity.NotificationPreference{UserID: "demo", Email: "a@b.example", DigestEnabled: true, Frequency: entity.DigestDaily}
	if err := prefs.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert err=%v", err)
	}
	p.Frequency = entity.DigestWeekly
	p.DigestEnabled = false
	if err := prefs.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert err=%v", err)
	}

	got, err = prefs.Get(ctx, "demo")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got.Frequency != entity.DigestWeekly || got.DigestEnabled || got.Email != "a@b.example" {
		t.Fatalf("got %+v", got)
	}
}
