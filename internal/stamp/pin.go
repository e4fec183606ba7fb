package stamp

import (
	"image"
	"image/color"
)

var (
	pinRed   = color.NRGBA{R: 234, G: 67, B: 53, A: 255}
	pinWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Pin renders a map-pin silhouette into its own transparent layer: a disc
// head with a white center dot, atop a triangle tapering to the bottom
// point. Callers composite the layer wherever the pin should land.
func Pin(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	r := w / 2
	if r < 1 {
		r = 1
	}
	cx, cy := w/2, r

	fillDisc(img, cx, cy, r-1, c)

	// Triangle from the disc's widest point down to the tip.
	tipY := h - 1
	for y := cy; y <= tipY; y++ {
		half := (r - 1) * (tipY - y) / (tipY - cy)
		for x := cx - half; x <= cx+half; x++ {
			img.SetNRGBA(x, y, c)
		}
	}

	fillDisc(img, cx, cy, r/3, pinWhite)
	return img
}
