package maptile

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func tilePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{G: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestThumbnail(t *testing.T) {
	var gotURL string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Header().Set("Content-Type", "image/png")
		w.Write(tilePNG(t))
	}))
	defer ts.Close()

	c := New(ts.URL+"/map?center={lat},{lng}&zoom={zoom}&size={width}x{height}", 14, 2*time.Second, 100)
	img, err := c.Thumbnail(context.Background(), 37.7749, -122.4194, 130, 130)
	if err != nil {
		t.Fatalf("fetching thumbnail: %v", err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}

	for _, want := range []string{"center=37.774900,-122.419400", "zoom=14", "size=130x130"} {
		if !strings.Contains(gotURL, want) {
			t.Errorf("request URL %q missing %q", gotURL, want)
		}
	}
}

func TestThumbnailServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := New(ts.URL+"/map?center={lat},{lng}", 14, 2*time.Second, 100)
	if _, err := c.Thumbnail(context.Background(), 1, 2, 130, 130); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestThumbnailBadPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	}))
	defer ts.Close()

	c := New(ts.URL, 14, 2*time.Second, 100)
	if _, err := c.Thumbnail(context.Background(), 1, 2, 130, 130); err == nil {
		t.Error("expected decode error on non-image payload")
	}
}

func TestThumbnailZeroRateDoesNotBlock(t *testing.T) {
	png := tilePNG(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(png)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// A configured rate of zero means unlimited, not one-request-ever.
	c := New(ts.URL, 14, 2*time.Second, 0)
	for i := 0; i < 3; i++ {
		if _, err := c.Thumbnail(ctx, 1, 2, 130, 130); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}
}

func TestThumbnailUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // closed before use: connection refused

	c := New(ts.URL, 14, 500*time.Millisecond, 100)
	if _, err := c.Thumbnail(context.Background(), 1, 2, 130, 130); err == nil {
		t.Error("expected error for unreachable tile server")
	}
}
