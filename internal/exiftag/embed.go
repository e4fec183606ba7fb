// Package exiftag writes geolocation into an image's own embedded
// metadata block, the alternate tagging path to sidecar-plus-stamp.
package exiftag

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	exifundefined "github.com/dsoprea/go-exif/v3/undefined"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"

	"github.com/intelligrit/geostamp/internal/dms"
	"github.com/intelligrit/geostamp/internal/fsutil"
	"github.com/intelligrit/geostamp/internal/model"
)

// GPS IFD version marker, EXIF 2.3.
var gpsVersion = []byte{2, 3, 0, 0}

// Embed writes the coordinate, hemisphere letters and (when a name is
// present) a UserComment into the JPEG's EXIF block, then replaces the
// file through a write-then-rename so a failed save cannot truncate it.
// Pixel data is untouched: only metadata segments are rewritten. Existing
// non-GPS tags are preserved; malformed existing EXIF is replaced with a
// fresh block rather than reported as an error.
func Embed(imagePath string, rec model.LocationRecord) error {
	if imagePath == "" {
		return fmt.Errorf("empty image path")
	}
	if abs, err := filepath.Abs(filepath.Clean(imagePath)); err == nil {
		imagePath = abs
	}

	info, err := os.Stat(imagePath)
	if err != nil {
		return fmt.Errorf("image not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not an image", imagePath)
	}

	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".jpg", ".jpeg":
	default:
		return fmt.Errorf("embedded GPS tags require a JPEG container, got %q", filepath.Ext(imagePath))
	}

	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseFile(imagePath)
	if err != nil {
		return fmt.Errorf("parsing JPEG: %w", err)
	}
	sl := intfc.(*jpegstructure.SegmentList)

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		// No EXIF segment, or one too mangled to parse: start fresh.
		rootIb, err = newExifBuilder()
		if err != nil {
			return err
		}
	}

	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/GPSInfo")
	if err != nil {
		return fmt.Errorf("creating GPS IFD: %w", err)
	}

	if err := gpsIb.SetStandardWithName("GPSVersionID", gpsVersion); err != nil {
		return fmt.Errorf("setting GPS version: %w", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLatitudeRef", dms.LatRef(rec.Latitude)); err != nil {
		return fmt.Errorf("setting latitude ref: %w", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLatitude", toExifRationals(dms.Split(rec.Latitude))); err != nil {
		return fmt.Errorf("setting latitude: %w", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitudeRef", dms.LngRef(rec.Longitude)); err != nil {
		return fmt.Errorf("setting longitude ref: %w", err)
	}
	if err := gpsIb.SetStandardWithName("GPSLongitude", toExifRationals(dms.Split(rec.Longitude))); err != nil {
		return fmt.Errorf("setting longitude: %w", err)
	}

	if rec.Name != "" {
		exifIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/Exif")
		if err != nil {
			return fmt.Errorf("creating Exif IFD: %w", err)
		}
		comment := exifundefined.Tag9286UserComment{
			EncodingType:  exifundefined.TagUndefinedType_9286_UserComment_Encoding_ASCII,
			EncodingBytes: []byte(rec.Name),
		}
		if err := exifIb.SetStandardWithName("UserComment", comment); err != nil {
			return fmt.Errorf("setting user comment: %w", err)
		}
	}

	if err := sl.SetExif(rootIb); err != nil {
		return fmt.Errorf("updating EXIF segment: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := sl.Write(buf); err != nil {
		return fmt.Errorf("serializing JPEG: %w", err)
	}
	if err := fsutil.WriteFile(imagePath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("replacing image: %w", err)
	}
	return nil
}

func newExifBuilder() (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("building IFD mapping: %w", err)
	}
	ti := exif.NewTagIndex()
	if err := exif.LoadStandardTags(ti); err != nil {
		return nil, fmt.Errorf("loading standard tags: %w", err)
	}
	return exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder), nil
}

func toExifRationals(d dms.DMS) []exifcommon.Rational {
	rs := d.Rationals()
	out := make([]exifcommon.Rational, len(rs))
	for i, r := range rs {
		out[i] = exifcommon.Rational{Numerator: r.Numerator, Denominator: r.Denominator}
	}
	return out
}
