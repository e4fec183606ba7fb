// Package stamp renders visual location stamps onto copies of raster
// images. The source file on disk is never modified; the stamped result
// is written next to it under a derived name.
package stamp

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/intelligrit/geostamp/internal/fsutil"
	"github.com/intelligrit/geostamp/internal/model"
)

// Kind selects which visual stamp is rendered.
type Kind int

const (
	// TextBar is the original full-width caption strip.
	TextBar Kind = iota
	// Badge is the rounded location badge with pin, map thumbnail and
	// DMS text, anchored bottom-right.
	Badge
)

// DerivedMarker is inserted before the extension to form the output path:
// photo.jpg becomes photo_geotagged.jpg. External readers depend on it.
const DerivedMarker = "_geotagged"

// DerivedPath returns the output path for a stamped copy of path.
func DerivedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + DerivedMarker + ext
}

// Compositor renders location stamps. The zero value works: no map
// thumbnails, no attribution line, default font probing.
type Compositor struct {
	Tiles       ThumbnailFetcher // nil disables the remote map
	Attribution string
	FontPaths   []string // probed before the built-in candidates
	Logf        func(format string, args ...any)
}

func (c *Compositor) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

// RenderStamp composites the selected stamp onto a copy of the image at
// path and writes the result under the derived name, preserving the
// original format. Returns the derived path.
func (c *Compositor) RenderStamp(ctx context.Context, path string, rec model.LocationRecord, kind Kind) (string, error) {
	src, format, err := loadImage(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}

	b := src.Bounds()
	c.logf("image opened successfully, size: %dx%d", b.Dx(), b.Dy())

	canvas := newCanvas(src)

	switch kind {
	case TextBar:
		face := ResolveFont(append(append([]string{}, c.FontPaths...), defaultFontPaths...), 16)
		layer := RenderTextBar(b.Dx(), rec, face)
		pos := image.Pt(b.Min.X, b.Max.Y-textBarHeight)
		draw.Draw(canvas, layer.Bounds().Add(pos), layer, image.Point{}, draw.Over)

	case Badge:
		l := ComputeLayout(b.Dx(), b.Dy())
		var thumb image.Image
		if c.Tiles != nil && !l.Thumb.Empty() {
			thumb, err = c.Tiles.Thumbnail(ctx, rec.Latitude, rec.Longitude, l.Thumb.Dx(), l.Thumb.Dy())
			if err != nil {
				c.logf("map thumbnail unavailable, using placeholder: %v", err)
				thumb = nil
			}
		}
		if thumb == nil && !l.Thumb.Empty() {
			thumb = Placeholder(l.Thumb.Dx(), l.Thumb.Dy())
		}
		layer := RenderBadge(l, rec, thumb, LoadFaces(c.FontPaths), c.Attribution)
		draw.Draw(canvas, l.Badge.Add(b.Min), layer, image.Point{}, draw.Over)

	default:
		return "", fmt.Errorf("unknown stamp kind %d", kind)
	}

	out := DerivedPath(path)
	if err := saveImage(out, canvas, format); err != nil {
		return "", fmt.Errorf("saving geotagged image: %w", err)
	}
	c.logf("created geotagged image at: %s", out)
	return out, nil
}

func loadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

// newCanvas copies the source into a drawable image. Sources that carry
// transparency keep it through an NRGBA canvas; opaque sources get a
// plain RGBA canvas and a straight over-draw.
func newCanvas(src image.Image) draw.Image {
	b := src.Bounds()
	var canvas draw.Image
	if hasAlpha(src) {
		canvas = image.NewNRGBA(b)
	} else {
		canvas = image.NewRGBA(b)
	}
	draw.Draw(canvas, b, src, b.Min, draw.Src)
	return canvas
}

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

func saveImage(path string, img image.Image, format string) error {
	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return err
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return fsutil.WriteFile(path, buf.Bytes(), 0o644)
}
