package storage

import (
	"testing"
	"time"

	"github.com/pable/go-cr-wrapped/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleProfile() *model.Profile {
	return &model.Profile{
		Name:         "X",
		Tag:          "#2PP",
		Trophies:     5000,
		BestTrophies: 5200,
		CurrentDeck:  []model.Card{{Name: "Giant"}},
	}
}

func sampleBattles() []model.Battle {
	return []model.Battle{
		{
			BattleTime: "20240101T120000.000Z",
			Team:       []model.Participant{{Name: "X", Tag: "#2PP", Crowns: 3, Cards: []model.Card{{Name: "Giant"}}}},
			Opponent:   []model.Participant{{Name: "foe", Tag: "#FOE", Crowns: 1}},
		},
	}
}

func TestSaveAndGetSnapshot(t *testing.T) {
	db := openMemDB(t)

	if err := db.SaveSnapshot(sampleProfile(), sampleBattles(), time.Now()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	profile, battles, err := db.GetSnapshot("#2PP")
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if profile == nil {
		t.Fatal("expected cached profile")
	}
	if profile.Name != "X" || profile.Trophies != 5000 {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if len(battles) != 1 || battles[0].TeamCrowns() != 3 {
		t.Errorf("unexpected battles: %+v", battles)
	}
	if len(battles[0].Team[0].Cards) != 1 {
		t.Error("cards lost through the compression round trip")
	}
}

func TestGetSnapshot_TagShapeInsensitive(t *testing.T) {
	db := openMemDB(t)
	if err := db.SaveSnapshot(sampleProfile(), sampleBattles(), time.Now()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	// Same tag typed without '#' and in lowercase.
	profile, _, err := db.GetSnapshot("2pp")
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if profile == nil {
		t.Error("expected lookup to succeed regardless of tag shape")
	}
}

func TestGetSnapshot_Missing(t *testing.T) {
	db := openMemDB(t)
	profile, battles, err := db.GetSnapshot("#NOPE")
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if profile != nil || battles != nil {
		t.Error("expected nils for an uncached tag")
	}
}

func TestSaveSnapshot_Upserts(t *testing.T) {
	db := openMemDB(t)

	if err := db.SaveSnapshot(sampleProfile(), nil, time.Now()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	updated := sampleProfile()
	updated.Trophies = 5100
	if err := db.SaveSnapshot(updated, sampleBattles(), time.Now()); err != nil {
		t.Fatalf("SaveSnapshot (second): %v", err)
	}

	list, err := db.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 row after upsert, got %d", len(list))
	}
	if list[0].Trophies != 5100 || list[0].Battles != 1 {
		t.Errorf("unexpected snapshot: %+v", list[0])
	}
}

func TestSaveSnapshot_EmptyBattleLog(t *testing.T) {
	db := openMemDB(t)
	if err := db.SaveSnapshot(sampleProfile(), nil, time.Now()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	_, battles, err := db.GetSnapshot("#2PP")
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if battles == nil || len(battles) != 0 {
		t.Errorf("expected empty non-nil battle list, got %v", battles)
	}
}

func TestDeleteSnapshot(t *testing.T) {
	db := openMemDB(t)
	if err := db.SaveSnapshot(sampleProfile(), nil, time.Now()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	deleted, err := db.DeleteSnapshot("#2PP")
	if err != nil {
		t.Fatalf("DeleteSnapshot: %v", err)
	}
	if !deleted {
		t.Error("expected a row to be deleted")
	}

	deleted, _ = db.DeleteSnapshot("#2PP")
	if deleted {
		t.Error("second delete should find nothing")
	}
}
