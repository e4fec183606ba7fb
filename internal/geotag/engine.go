// Package geotag is the tagging engine: it takes a saved image plus a
// coordinate and produces a metadata sidecar, a visually stamped copy,
// or an embedded GPS tag, depending on the selected style.
package geotag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/intelligrit/geostamp/internal/exiftag"
	"github.com/intelligrit/geostamp/internal/model"
	"github.com/intelligrit/geostamp/internal/stamp"
)

// Style selects the tagging strategy. The three styles are mutually
// exclusive: exif rewrites the image's own metadata block instead of
// producing a sidecar and a stamped copy.
type Style string

const (
	StyleTextBar Style = "textbar"
	StyleBadge   Style = "badge"
	StyleExif    Style = "exif"
)

// ParseStyle validates a configured style string.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleTextBar, StyleBadge, StyleExif:
		return Style(s), nil
	}
	return "", fmt.Errorf("unknown stamp style %q (want textbar, badge or exif)", s)
}

// Engine performs one-shot tagging calls. It holds no mutable state
// between calls; everything mutable lives on the filesystem paths each
// call is given, so concurrent calls on distinct paths do not interfere.
type Engine struct {
	Style      Style
	Compositor *stamp.Compositor
	Logf       func(format string, args ...any)
}

func (e *Engine) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}

func failure(msg string) model.GeotagResult {
	return model.GeotagResult{Success: false, Message: msg}
}

// Tag runs one tagging request: validate the path, persist metadata, then
// stamp. Sidecar persistence is the hard guarantee; the visual stamp is
// best effort and degrades to a warning. No failure mode escapes as a
// panic or error; everything is folded into the result.
func (e *Engine) Tag(ctx context.Context, imagePath string, rec model.LocationRecord) model.GeotagResult {
	e.logf("processing image at path: %q", imagePath)

	if imagePath == "" {
		return failure("empty file path received")
	}

	abs, err := filepath.Abs(filepath.Clean(imagePath))
	if err != nil {
		return failure(fmt.Sprintf("resolving path: %v", err))
	}
	if err := checkReadable(abs); err != nil {
		return failure(err.Error())
	}

	if e.Style == StyleExif {
		if err := e.embed(abs, rec); err != nil {
			return failure(fmt.Sprintf("embedding GPS tag: %v", err))
		}
		meta := sidecarMetadata(abs, rec)
		return model.GeotagResult{
			Success:  true,
			Message:  "GPS tag embedded successfully",
			Location: &meta,
		}
	}

	sidecarPath, meta, err := WriteSidecar(abs, rec)
	if err != nil {
		return failure(fmt.Sprintf("writing location metadata: %v", err))
	}
	e.logf("created metadata file at: %s", sidecarPath)

	res := model.GeotagResult{
		Success:      true,
		Message:      "Geotag added successfully",
		MetadataFile: sidecarPath,
		Location:     meta,
	}

	kind := stamp.Badge
	if e.Style == StyleTextBar {
		kind = stamp.TextBar
	}
	out, err := e.renderStamp(ctx, abs, rec, kind)
	if err != nil {
		// The metadata is already on disk; report degraded success.
		e.logf("error creating visual geotag: %v", err)
		res.Message = "Location data saved, but visual geotag failed"
		res.Warning = err.Error()
		return res
	}

	res.GeotaggedImage = out
	return res
}

func checkReadable(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file does not exist at path: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file is not readable: %s", path)
	}
	f.Close()
	return nil
}

// renderStamp fences the compositor: any panic in decoding or drawing is
// converted to an error so it folds into the warning path.
func (e *Engine) renderStamp(ctx context.Context, path string, rec model.LocationRecord, kind stamp.Kind) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering failed: %v", r)
		}
	}()
	return e.Compositor.RenderStamp(ctx, path, rec, kind)
}

func (e *Engine) embed(path string, rec model.LocationRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("metadata codec failure: %v", r)
		}
	}()
	return exiftag.Embed(path, rec)
}

func sidecarMetadata(abs string, rec model.LocationRecord) model.SidecarMetadata {
	return model.SidecarMetadata{
		Latitude:         rec.Latitude,
		Longitude:        rec.Longitude,
		LocationName:     rec.DisplayName(),
		ImagePath:        abs,
		OriginalFilename: filepath.Base(abs),
	}
}
