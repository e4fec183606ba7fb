package stamp

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Probe order mirrors where DejaVu and Arial usually live. Entries that
// are missing or fail to parse are skipped; the built-in bitmap face is
// the guaranteed last resort, so resolution can never fail.
var defaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/ttf/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/dejavu/DejaVuSans.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
	"DejaVuSans.ttf",
}

var defaultBoldFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/ttf/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/TTF/dejavu/DejaVuSans-Bold.ttf",
	"/Library/Fonts/Arial Bold.ttf",
	"C:\\Windows\\Fonts\\arialbd.ttf",
	"DejaVuSans-Bold.ttf",
}

// Faces bundles the three text faces drawn on a badge.
type Faces struct {
	Bold    font.Face
	Regular font.Face
	Small   font.Face
}

// ResolveFont probes the given paths in order and returns the first face
// that loads at the given point size. When nothing loads it returns the
// built-in 7x13 bitmap face: degraded legibility, never an error.
func ResolveFont(paths []string, size float64) font.Face {
	for _, p := range paths {
		face, err := loadFace(p, size)
		if err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

func loadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// LoadFaces resolves the badge faces, trying any extra paths before the
// built-in probe list.
func LoadFaces(extra []string) Faces {
	regular := append(append([]string{}, extra...), defaultFontPaths...)
	bold := append(append([]string{}, extra...), defaultBoldFontPaths...)
	return Faces{
		Bold:    ResolveFont(bold, 26),
		Regular: ResolveFont(regular, 20),
		Small:   ResolveFont(regular, 14),
	}
}

func drawText(dst *image.NRGBA, x, y int, face font.Face, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
