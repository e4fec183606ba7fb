package store

import (
	"database/sql"
	"testing"

	"github.com/intelligrit/geostamp/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestImageRoundTrip(t *testing.T) {
	s := testStore(t)

	img := &model.Image{
		Filename:       "vacation.jpg",
		UniqueFilename: "20260829_ab12cd34_vacation.jpg",
		Lat:            37.7749,
		Lng:            -122.4194,
		LocationName:   "San Francisco",
		Timestamp:      "2026-08-29T10:00:00Z",
		Path:           "/data/uploads/20260829_ab12cd34_vacation.jpg",
		SidecarPath:    "/data/uploads/20260829_ab12cd34_vacation.jpg.geolocation.json",
		GeotaggedPath:  "/data/uploads/20260829_ab12cd34_vacation_geotagged.jpg",
	}
	if err := s.InsertImage(img); err != nil {
		t.Fatalf("inserting image: %v", err)
	}
	if img.ID == 0 {
		t.Error("expected assigned ID")
	}
	if img.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}

	got, err := s.GetImage(img.ID)
	if err != nil {
		t.Fatalf("loading image: %v", err)
	}
	if got.Filename != img.Filename || got.Lat != img.Lat || got.GeotaggedPath != img.GeotaggedPath {
		t.Errorf("loaded image = %+v", got)
	}

	list, err := s.ListImages()
	if err != nil {
		t.Fatalf("listing images: %v", err)
	}
	if len(list) != 1 || list[0].ID != img.ID {
		t.Errorf("list = %+v", list)
	}
}

func TestGetImageMissing(t *testing.T) {
	s := testStore(t)
	if _, err := s.GetImage(999); err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestRecordUseUpsert(t *testing.T) {
	s := testStore(t)

	for i := 0; i < 3; i++ {
		if err := s.RecordUse("Home", 52.52, 13.405); err != nil {
			t.Fatalf("recording use: %v", err)
		}
	}
	// A tiny coordinate drift still matches the same entry.
	if err := s.RecordUse("Home", 52.52001, 13.40501); err != nil {
		t.Fatalf("recording use: %v", err)
	}
	// Same name far away is a different place.
	if err := s.RecordUse("Home", 40.0, -3.0); err != nil {
		t.Fatalf("recording use: %v", err)
	}

	entries, err := s.ListHistory()
	if err != nil {
		t.Fatalf("listing history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("history has %d entries, want 2", len(entries))
	}
	// Most-used entry sorts first.
	if entries[0].UseCount != 4 {
		t.Errorf("top entry use_count = %d, want 4", entries[0].UseCount)
	}
	if entries[1].UseCount != 1 {
		t.Errorf("second entry use_count = %d, want 1", entries[1].UseCount)
	}
}

func TestHistoryFavoritesFirst(t *testing.T) {
	s := testStore(t)

	if err := s.RecordUse("Busy", 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordUse("Busy", 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordUse("Rare", 2, 2); err != nil {
		t.Fatal(err)
	}

	entries, err := s.ListHistory()
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Name != "Busy" {
		t.Fatalf("expected usage ordering before favoriting, got %q first", entries[0].Name)
	}

	if err := s.SetFavorite(entries[1].ID, true); err != nil {
		t.Fatalf("setting favorite: %v", err)
	}

	entries, err = s.ListHistory()
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Name != "Rare" || !entries[0].Favorite {
		t.Errorf("favorite did not sort first: %+v", entries)
	}
}

func TestSetFavoriteMissing(t *testing.T) {
	s := testStore(t)
	if err := s.SetFavorite(42, true); err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestDeleteHistory(t *testing.T) {
	s := testStore(t)

	if err := s.RecordUse("Gone", 3, 3); err != nil {
		t.Fatal(err)
	}
	entries, err := s.ListHistory()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteHistory(entries[0].ID); err != nil {
		t.Fatalf("deleting: %v", err)
	}
	if n := s.HistoryCount(); n != 0 {
		t.Errorf("history count = %d after delete", n)
	}

	if err := s.DeleteHistory(entries[0].ID); err != sql.ErrNoRows {
		t.Errorf("second delete err = %v, want sql.ErrNoRows", err)
	}
}

func TestCounts(t *testing.T) {
	s := testStore(t)

	if err := s.InsertImage(&model.Image{Filename: "a.png", UniqueFilename: "u_a.png", LocationName: "X", Timestamp: "t", Path: "/p/a"}); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordUse("X", 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordUse("Y", 2, 2); err != nil {
		t.Fatal(err)
	}
	entries, err := s.ListHistory()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetFavorite(entries[0].ID, true); err != nil {
		t.Fatal(err)
	}

	if n := s.ImageCount(); n != 1 {
		t.Errorf("image count = %d", n)
	}
	if n := s.HistoryCount(); n != 2 {
		t.Errorf("history count = %d", n)
	}
	if n := s.FavoriteCount(); n != 1 {
		t.Errorf("favorite count = %d", n)
	}
}
