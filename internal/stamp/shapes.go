package stamp

import (
	"image"
	"image/color"
)

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// fillQuarterDisc paints the quarter of a disc centered at (cx, cy) that
// extends in the direction of (sx, sy), each ±1.
func fillQuarterDisc(img *image.NRGBA, cx, cy, r int, sx, sy int, c color.NRGBA) {
	for dy := 0; dy <= r; dy++ {
		for dx := 0; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(cx+sx*dx, cy+sy*dy, c)
			}
		}
	}
}

func fillDisc(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(cx+dx, cy+dy, c)
			}
		}
	}
}

// FillRoundedRect paints an axis-aligned rounded rectangle with a uniform
// color, composed of three bands plus four quarter discs. Pixels are
// written directly so a semi-opaque fill is never composited twice where
// the pieces meet.
func FillRoundedRect(img *image.NRGBA, r image.Rectangle, radius int, c color.NRGBA) {
	if radius > r.Dx()/2 {
		radius = r.Dx() / 2
	}
	if radius > r.Dy()/2 {
		radius = r.Dy() / 2
	}
	if radius < 0 {
		radius = 0
	}

	// Center band full height, side bands inset past the corners.
	fillRect(img, image.Rect(r.Min.X+radius, r.Min.Y, r.Max.X-radius, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y+radius, r.Min.X+radius, r.Max.Y-radius), c)
	fillRect(img, image.Rect(r.Max.X-radius, r.Min.Y+radius, r.Max.X, r.Max.Y-radius), c)

	fillQuarterDisc(img, r.Min.X+radius, r.Min.Y+radius, radius, -1, -1, c)
	fillQuarterDisc(img, r.Max.X-radius-1, r.Min.Y+radius, radius, 1, -1, c)
	fillQuarterDisc(img, r.Min.X+radius, r.Max.Y-radius-1, radius, -1, 1, c)
	fillQuarterDisc(img, r.Max.X-radius-1, r.Max.Y-radius-1, radius, 1, 1, c)
}
