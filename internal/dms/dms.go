// Package dms converts between signed decimal-degree coordinates and
// degrees/minutes/seconds form, including the rational encoding required
// by binary metadata codecs.
package dms

import (
	"fmt"
	"math"
)

// DMS is a coordinate decomposed into degree, minute and second
// magnitudes, with the sign carried separately.
type DMS struct {
	Degrees  int
	Minutes  int
	Seconds  float64
	Negative bool
}

// Rational is a numerator/denominator pair for codecs without native
// floating-point fields.
type Rational struct {
	Numerator   uint32
	Denominator uint32
}

// Split decomposes a decimal-degree coordinate. It is defined over the
// full float64 domain; range validation belongs to the caller.
func Split(deg float64) DMS {
	abs := math.Abs(deg)
	d := math.Floor(abs)
	minFrac := (abs - d) * 60
	m := math.Floor(minFrac)
	s := (minFrac - m) * 60
	return DMS{Degrees: int(d), Minutes: int(m), Seconds: s, Negative: deg < 0}
}

// Decimal reconstructs the signed decimal-degree value.
func (d DMS) Decimal() float64 {
	v := float64(d.Degrees) + float64(d.Minutes)/60 + d.Seconds/3600
	if d.Negative {
		return -v
	}
	return v
}

// Rationals returns the three rationals a GPS IFD expects: degrees and
// minutes over 1, seconds over 100 (1/100-second precision).
func (d DMS) Rationals() [3]Rational {
	return [3]Rational{
		{Numerator: uint32(d.Degrees), Denominator: 1},
		{Numerator: uint32(d.Minutes), Denominator: 1},
		{Numerator: uint32(math.Round(d.Seconds * 100)), Denominator: 100},
	}
}

// FromRationals rebuilds a DMS value from its rational encoding.
func FromRationals(rs [3]Rational, negative bool) DMS {
	return DMS{
		Degrees:  int(rs[0].Numerator / rs[0].Denominator),
		Minutes:  int(rs[1].Numerator / rs[1].Denominator),
		Seconds:  float64(rs[2].Numerator) / float64(rs[2].Denominator),
		Negative: negative,
	}
}

// LatRef returns the hemisphere letter for a latitude. Zero is "N".
func LatRef(lat float64) string {
	if lat < 0 {
		return "S"
	}
	return "N"
}

// LngRef returns the hemisphere letter for a longitude. Zero is "E".
func LngRef(lng float64) string {
	if lng < 0 {
		return "W"
	}
	return "E"
}

// Format renders a coordinate pair in the stamped-text form, for example
// `37°46'30" N, 122°25'10" W`.
func Format(lat, lng float64) string {
	laD, laM, laS := displayParts(lat)
	loD, loM, loS := displayParts(lng)
	return fmt.Sprintf("%d°%d'%d\" %s, %d°%d'%d\" %s",
		laD, laM, laS, LatRef(lat),
		loD, loM, loS, LngRef(lng))
}

// displayParts rounds seconds to whole units for display, carrying into
// minutes and degrees so 59'59.7" becomes the next full minute rather
// than 59'60".
func displayParts(deg float64) (d, m, s int) {
	v := Split(deg)
	d, m = v.Degrees, v.Minutes
	s = int(math.Round(v.Seconds))
	if s == 60 {
		s = 0
		m++
	}
	if m == 60 {
		m = 0
		d++
	}
	return d, m, s
}
