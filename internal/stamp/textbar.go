package stamp

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/intelligrit/geostamp/internal/model"
)

// textBarHeight is the height of the legacy caption strip.
const textBarHeight = 40

// RenderTextBar draws the original single-line stamp: a semi-opaque black
// strip across the full image width with the location name and decimal
// coordinates in white.
func RenderTextBar(imgW int, rec model.LocationRecord, face font.Face) *image.NRGBA {
	layer := image.NewNRGBA(image.Rect(0, 0, imgW, textBarHeight))
	fillRect(layer, layer.Bounds(), color.NRGBA{A: 180})

	text := fmt.Sprintf("%s (%.6f, %.6f)", rec.DisplayName(), rec.Latitude, rec.Longitude)
	drawText(layer, 10, 26, face, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, text)
	return layer
}
