package geotag

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/intelligrit/geostamp/internal/model"
)

func TestSidecarPath(t *testing.T) {
	got := SidecarPath("/tmp/photos/vacation.jpg")
	if got != "/tmp/photos/vacation.jpg.geolocation.json" {
		t.Errorf("SidecarPath = %q", got)
	}

	// Redundant path elements normalize away.
	if a, b := SidecarPath("/tmp/photos/./vacation.jpg"), SidecarPath("/tmp/photos/vacation.jpg"); a != b {
		t.Errorf("normalization mismatch: %q vs %q", a, b)
	}
}

func TestWriteSidecar(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(imgPath, []byte("jpegdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := model.LocationRecord{Latitude: 37.7749, Longitude: -122.4194, Name: "San Francisco"}
	out, meta, err := WriteSidecar(imgPath, rec)
	if err != nil {
		t.Fatalf("writing sidecar: %v", err)
	}
	if !strings.HasSuffix(out, ".geolocation.json") {
		t.Errorf("sidecar path %q lacks suffix", out)
	}
	if meta.LocationName != "San Francisco" || meta.OriginalFilename != "photo.jpg" {
		t.Errorf("metadata = %+v", meta)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading sidecar: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sidecar is not valid JSON: %v", err)
	}
	for _, key := range []string{"latitude", "longitude", "location_name", "image_path", "original_filename"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("sidecar missing key %q", key)
		}
	}
	if decoded["latitude"] != 37.7749 {
		t.Errorf("latitude = %v", decoded["latitude"])
	}
}

func TestWriteSidecarDefaultName(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(imgPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, meta, err := WriteSidecar(imgPath, model.LocationRecord{Latitude: 1, Longitude: 2})
	if err != nil {
		t.Fatal(err)
	}
	if meta.LocationName != model.DefaultLocationName {
		t.Errorf("location name = %q, want %q", meta.LocationName, model.DefaultLocationName)
	}
}

func TestWriteSidecarBadDir(t *testing.T) {
	if _, _, err := WriteSidecar("/nonexistent/dir/photo.jpg", model.LocationRecord{}); err == nil {
		t.Error("expected error writing sidecar into missing directory")
	}
}
