package dms

import (
	"math"
	"testing"
)

// Rational encoding carries 1/100-second precision, i.e. 1/360000 of a
// degree.
const encodingTolerance = 1.0 / 360000

func TestRationalRoundTrip(t *testing.T) {
	for d := -180.0; d <= 180.0; d += 0.0137 {
		split := Split(d)
		rebuilt := FromRationals(split.Rationals(), split.Negative).Decimal()
		if diff := math.Abs(rebuilt - d); diff > encodingTolerance {
			t.Fatalf("round trip of %v drifted by %v (got %v)", d, diff, rebuilt)
		}
	}
}

func TestSplit(t *testing.T) {
	got := Split(37.7749)
	if got.Degrees != 37 || got.Minutes != 46 || got.Negative {
		t.Errorf("Split(37.7749) = %+v", got)
	}
	if got.Seconds < 29 || got.Seconds > 30 {
		t.Errorf("expected seconds near 29.6, got %v", got.Seconds)
	}

	neg := Split(-122.4194)
	if neg.Degrees != 122 || neg.Minutes != 25 || !neg.Negative {
		t.Errorf("Split(-122.4194) = %+v", neg)
	}
}

func TestSplitTotalOverFullDomain(t *testing.T) {
	// Out-of-range coordinates are not rejected here; the decomposition
	// must stay well-defined.
	for _, d := range []float64{200, -300, 719.999, -1000} {
		got := Split(d)
		if got.Minutes < 0 || got.Minutes > 59 {
			t.Errorf("Split(%v) minutes out of range: %+v", d, got)
		}
		if got.Seconds < 0 || got.Seconds >= 60 {
			t.Errorf("Split(%v) seconds out of range: %+v", d, got)
		}
	}
}

func TestHemisphereLetters(t *testing.T) {
	tests := []struct {
		lat, lng         float64
		wantLat, wantLng string
	}{
		{37.7749, -122.4194, "N", "W"},
		{-33.8688, 151.2093, "S", "E"},
		{0, 0, "N", "E"}, // zero takes the non-negative branch
		{90, 180, "N", "E"},
		{-90, -180, "S", "W"},
	}
	for _, tt := range tests {
		if got := LatRef(tt.lat); got != tt.wantLat {
			t.Errorf("LatRef(%v) = %q, want %q", tt.lat, got, tt.wantLat)
		}
		if got := LngRef(tt.lng); got != tt.wantLng {
			t.Errorf("LngRef(%v) = %q, want %q", tt.lng, got, tt.wantLng)
		}
	}
}

func TestFormat(t *testing.T) {
	got := Format(37.7749, -122.4194)
	want := `37°46'30" N, 122°25'10" W`
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}

	if got := Format(0, 0); got != `0°0'0" N, 0°0'0" E` {
		t.Errorf("Format(0, 0) = %q", got)
	}
}

func TestFormatSecondsCarry(t *testing.T) {
	// Rounded seconds must carry into minutes and degrees instead of
	// rendering 60".
	if got := Format(37.9999999, 0); got != `38°0'0" N, 0°0'0" E` {
		t.Errorf("Format(37.9999999, 0) = %q", got)
	}
	if got := Format(0, -0.9999999); got != `0°0'0" N, 1°0'0" W` {
		t.Errorf("Format(0, -0.9999999) = %q", got)
	}
	if got := Format(12.0166665, 0); got != `12°1'0" N, 0°0'0" E` {
		t.Errorf("Format(12.0166665, 0) = %q", got)
	}
}

func TestRationals(t *testing.T) {
	rs := Split(37.7749).Rationals()
	if rs[0] != (Rational{37, 1}) {
		t.Errorf("degrees rational = %+v", rs[0])
	}
	if rs[1] != (Rational{46, 1}) {
		t.Errorf("minutes rational = %+v", rs[1])
	}
	if rs[2].Denominator != 100 {
		t.Errorf("seconds denominator = %d, want 100", rs[2].Denominator)
	}
}
