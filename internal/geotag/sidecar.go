package geotag

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/intelligrit/geostamp/internal/fsutil"
	"github.com/intelligrit/geostamp/internal/model"
)

// SidecarSuffix is appended to the source image path to form the sidecar
// metadata path. External readers depend on this convention.
const SidecarSuffix = ".geolocation.json"

// SidecarPath derives the sidecar location for an image path. The path is
// normalized and made absolute first so repeated calls agree regardless
// of how the caller spelled the path.
func SidecarPath(imagePath string) string {
	return normalizePath(imagePath) + SidecarSuffix
}

func normalizePath(p string) string {
	abs, err := filepath.Abs(filepath.Clean(p))
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

// WriteSidecar persists the location record next to the source image and
// returns the sidecar path plus the metadata as written. This is the hard
// guarantee of a tagging call: failure here is fatal to the request.
func WriteSidecar(imagePath string, rec model.LocationRecord) (string, *model.SidecarMetadata, error) {
	abs := normalizePath(imagePath)

	meta := &model.SidecarMetadata{
		Latitude:         rec.Latitude,
		Longitude:        rec.Longitude,
		LocationName:     rec.DisplayName(),
		ImagePath:        abs,
		OriginalFilename: filepath.Base(abs),
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encoding location metadata: %w", err)
	}

	out := abs + SidecarSuffix
	if err := fsutil.WriteFile(out, data, 0o644); err != nil {
		return "", nil, fmt.Errorf("writing metadata file: %w", err)
	}
	return out, meta, nil
}
