package stamp

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/intelligrit/geostamp/internal/dms"
	"github.com/intelligrit/geostamp/internal/model"
)

// Badge geometry. The badge is anchored to the bottom-right corner with a
// fixed margin and never grows past the image edge.
const (
	badgeMaxWidth    = 600
	badgeHeight      = 150
	badgeMargin      = 10
	badgeCornerRad   = 16
	badgeThumbSize   = 130
	badgePinWidth    = 40
	badgePinHeight   = 56
	badgeTextPadding = 14
)

// Minimum badge width at which the map thumbnail still fits next to the
// text block.
const thumbMinBadgeWidth = 420

// Layout describes where the badge and its parts land. Badge is in canvas
// coordinates; the rest are relative to the badge's own layer.
type Layout struct {
	Badge         image.Rectangle
	Pin           image.Point
	Thumb         image.Rectangle // empty when the badge is too narrow
	TextX         int
	NameBaseline  int
	CoordBaseline int
	AttrBaseline  int
}

// ComputeLayout sizes the badge for an image of the given dimensions.
func ComputeLayout(imgW, imgH int) Layout {
	w := badgeMaxWidth
	if maxW := imgW - 2*badgeMargin; w > maxW {
		w = maxW
	}
	h := badgeHeight
	if maxH := imgH - 2*badgeMargin; h > maxH {
		h = maxH
	}

	l := Layout{
		Badge: image.Rect(imgW-w-badgeMargin, imgH-h-badgeMargin, imgW-badgeMargin, imgH-badgeMargin),
	}
	l.Pin = image.Pt(16, (h-badgePinHeight)/2)
	l.TextX = 16 + badgePinWidth + badgeTextPadding
	if w >= thumbMinBadgeWidth && h >= badgeThumbSize {
		l.Thumb = image.Rect(w-badgeThumbSize-badgeMargin, (h-badgeThumbSize)/2,
			w-badgeMargin, (h+badgeThumbSize)/2)
	}
	l.NameBaseline = h/2 - 24
	l.CoordBaseline = h/2 + 8
	l.AttrBaseline = h/2 + 38
	return l
}

// RenderBadge draws the complete badge layer: rounded background, pin
// glyph, map thumbnail (scaled into place) and the three text lines.
func RenderBadge(l Layout, rec model.LocationRecord, thumb image.Image, faces Faces, attribution string) *image.NRGBA {
	w, h := l.Badge.Dx(), l.Badge.Dy()
	layer := image.NewNRGBA(image.Rect(0, 0, w, h))

	FillRoundedRect(layer, layer.Bounds(), badgeCornerRad, color.NRGBA{A: 180})

	pin := Pin(badgePinWidth, badgePinHeight, pinRed)
	draw.Draw(layer, pin.Bounds().Add(l.Pin), pin, image.Point{}, draw.Over)

	if thumb != nil && !l.Thumb.Empty() {
		xdraw.ApproxBiLinear.Scale(layer, l.Thumb, thumb, thumb.Bounds(), xdraw.Over, nil)
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	grey := color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	drawText(layer, l.TextX, l.NameBaseline, faces.Bold, white, rec.DisplayName())
	drawText(layer, l.TextX, l.CoordBaseline, faces.Regular, white, dms.Format(rec.Latitude, rec.Longitude))
	if attribution != "" {
		drawText(layer, l.TextX, l.AttrBaseline, faces.Small, grey, attribution)
	}

	return layer
}
