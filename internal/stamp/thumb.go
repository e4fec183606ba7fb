package stamp

import (
	"context"
	"image"
	"image/color"
	"image/draw"
)

// ThumbnailFetcher fetches a small map raster centered on a coordinate.
// A nil fetcher disables the remote map entirely.
type ThumbnailFetcher interface {
	Thumbnail(ctx context.Context, lat, lng float64, w, h int) (image.Image, error)
}

// Placeholder draws the offline map stand-in: a flat ground fill, two
// crossing road lines and a pin in the middle. Used whenever the remote
// map fetch fails or is disabled, so a dead tile server can never fail a
// tagging call.
func Placeholder(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	ground := color.NRGBA{R: 226, G: 232, B: 214, A: 255}
	road := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	edge := color.NRGBA{R: 190, G: 190, B: 190, A: 255}

	fillRect(img, img.Bounds(), ground)

	roadW := 8
	fillRect(img, image.Rect(0, h/2-roadW/2-1, w, h/2+roadW/2+1), edge)
	fillRect(img, image.Rect(w/2-roadW/2-1, 0, w/2+roadW/2+1, h), edge)
	fillRect(img, image.Rect(0, h/2-roadW/2, w, h/2+roadW/2), road)
	fillRect(img, image.Rect(w/2-roadW/2, 0, w/2+roadW/2, h), road)

	pw := w / 4
	if pw < 8 {
		pw = 8
	}
	ph := pw * 7 / 5
	pin := Pin(pw, ph, pinRed)
	pos := image.Pt((w-pw)/2, (h-ph)/2)
	draw.Draw(img, pin.Bounds().Add(pos), pin, image.Point{}, draw.Over)

	return img
}
