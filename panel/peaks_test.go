// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panel

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// spikes makes a profile of length n which is zero apart from the
// given row heights
func spikes(n int, heights map[int]float64) Profile {
	p := make(Profile, n)
	for y, v := range heights {
		p[y] = v
	}
	return p
}

func TestFindBoundaries(t *testing.T) {
	cases := []struct {
		name      string
		profile   Profile
		rel       float64
		minheight int
		expected  []int
	}{
		{"twopeaks", spikes(1000, map[int]float64{300: 100, 700: 90}), 0.3, 150, []int{300, 700}},
		{"closehigherfirst", spikes(1000, map[int]float64{100: 80, 110: 50}), 0.3, 150, []int{100}},
		{"closehigherlast", spikes(1000, map[int]float64{100: 50, 110: 80}), 0.3, 150, []int{110}},
		{"closeequal", spikes(1000, map[int]float64{100: 80, 110: 80}), 0.3, 150, []int{100}},
		{"belowthreshold", spikes(1000, map[int]float64{300: 100, 700: 20}), 0.3, 150, []int{300}},
		{"atthreshold", spikes(1000, map[int]float64{300: 100, 700: 30}), 0.3, 150, []int{300, 700}},
		{"exactspacing", spikes(1000, map[int]float64{300: 100, 450: 90}), 0.3, 150, []int{300, 450}},
		{"justtooclose", spikes(1000, map[int]float64{300: 100, 449: 90}), 0.3, 150, []int{300}},
		{"chain", spikes(1000, map[int]float64{200: 50, 300: 100, 400: 50}), 0.3, 150, []int{300}},
		{"chainsurvivor", spikes(1000, map[int]float64{200: 50, 300: 100, 460: 50}), 0.3, 150, []int{300, 460}},
		{"edges", spikes(1000, map[int]float64{0: 100, 999: 100, 500: 50}), 0.3, 150, []int{500}},
		{"blank", make(Profile, 1000), 0.3, 150, nil},
		{"tooshort", spikes(100, map[int]float64{50: 100}), 0.3, 150, nil},
		{"zerorel", spikes(1000, map[int]float64{300: 100, 700: 1}), 0, 150, []int{300, 700}},
		{"fullrel", spikes(1000, map[int]float64{300: 100, 700: 99}), 1, 150, []int{300}},
		{"plateau", Profile{0, 5, 5, 5, 0, 0, 0, 0, 0, 0}, 0.3, 3, []int{2}},
		{"evenplateau", Profile{0, 5, 5, 5, 5, 0, 0, 0, 0, 0}, 0.3, 3, []int{2}},
		{"shoulder", Profile{0, 5, 5, 7, 0, 0, 0, 0, 0, 0}, 0.3, 3, []int{3}},
		{"plateautoend", Profile{0, 1, 0, 0, 0, 0, 5, 5, 5, 5}, 0.1, 3, []int{1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b, err := FindBoundaries(c.profile, c.rel, c.minheight)
			if err != nil {
				t.Fatalf("Error finding boundaries: %v", err)
			}
			if len(b) == 0 && len(c.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(b, c.expected) {
				t.Fatalf("Expected boundaries %v, got %v", c.expected, b)
			}
		})
	}
}

func TestFindBoundariesInvalid(t *testing.T) {
	p := spikes(1000, map[int]float64{300: 100})
	cases := []struct {
		name      string
		rel       float64
		minheight int
	}{
		{"negativerel", -0.1, 150},
		{"bigrel", 1.1, 150},
		{"nanrel", math.NaN(), 150},
		{"zeroheight", 0.3, 0},
		{"negativeheight", 0.3, -5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := FindBoundaries(p, c.rel, c.minheight)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("Expected ErrInvalidParameter, got %v", err)
			}
			var perr *InvalidParameterError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected an *InvalidParameterError, got %T", err)
			}
		})
	}
}

// TestFindBoundariesSpacing checks the boundary invariants over a
// noisy profile
func TestFindBoundariesSpacing(t *testing.T) {
	p := make(Profile, 3000)
	for i := range p {
		// deterministic pseudo-noise with plenty of local maxima
		p[i] = float64((i*7919)%113) + 50*math.Sin(float64(i)/37)
		if p[i] < 0 {
			p[i] = 0
		}
	}

	for _, minheight := range []int{1, 10, 150, 400} {
		b, err := FindBoundaries(p, 0.3, minheight)
		if err != nil {
			t.Fatalf("Error finding boundaries: %v", err)
		}
		if len(b) == 0 {
			t.Fatalf("Expected some boundaries with minimum height %d", minheight)
		}
		for i := 1; i < len(b); i++ {
			if b[i] <= b[i-1] {
				t.Fatalf("Boundaries not strictly increasing: %v", b)
			}
			if b[i]-b[i-1] < minheight {
				t.Fatalf("Boundaries %d and %d closer than %d", b[i-1], b[i], minheight)
			}
		}
		for _, y := range b {
			if y < 0 || y >= len(p) {
				t.Fatalf("Boundary %d out of range", y)
			}
		}
	}
}

// TestFindBoundariesThinLine checks that a one pixel line, whose edge
// response is a flat run of three saturated rows, gives a boundary
// on the line itself
func TestFindBoundariesThinLine(t *testing.T) {
	p, err := EdgeProfile(linedpage(20, 400, 200))
	if err != nil {
		t.Fatalf("Error getting profile: %v", err)
	}
	for y := 199; y <= 201; y++ {
		if p[y] != 255*20 {
			t.Fatalf("Expected row %d to be saturated, got %f", y, p[y])
		}
	}
	b, err := FindBoundaries(p, 0.3, 3)
	if err != nil {
		t.Fatalf("Error finding boundaries: %v", err)
	}
	if len(b) != 1 || b[0] != 200 {
		t.Fatalf("Expected boundaries [200], got %v", b)
	}
}
