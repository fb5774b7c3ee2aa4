// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// integralimg provides integral images (summed-area tables) over
// pixel masks, so that the number of pixels matching a condition in
// any rectangle of an image can be found with four lookups.
package integralimg

import (
	"image"
)

// Mask is the Integral Image of a boolean pixel mask. It has one
// more row and column than the image it was made from; row 0 and
// column 0 are all zero, so that Mask[y][x] is the count of matching
// pixels above and to the left of (x, y).
type Mask [][]uint32

// Window is a part of a Mask
type Window struct {
	topleft     uint32
	topright    uint32
	bottomleft  uint32
	bottomright uint32
	width       int
	height      int
}

// NewMask creates a Mask of all pixels in img for which match
// returns true
func NewMask(img *image.Gray, match func(v uint8) bool) Mask {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	integral := make(Mask, h+1)
	integral[0] = make([]uint32, w+1)
	for y := 0; y < h; y++ {
		row := make([]uint32, w+1)
		above := integral[y]
		var rowsum uint32
		off := y * img.Stride
		for x := 0; x < w; x++ {
			if match(img.Pix[off+x]) {
				rowsum++
			}
			row[x+1] = above[x+1] + rowsum
		}
		integral[y+1] = row
	}
	return integral
}

// Width returns the width of the image the Mask was made from
func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0]) - 1
}

// Height returns the height of the image the Mask was made from
func (m Mask) Height() int {
	if len(m) == 0 {
		return 0
	}
	return len(m) - 1
}

// Bounds returns the rectangle covered by the Mask, which always
// has its origin at 0, 0
func (m Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width(), m.Height())
}

// GetWindow gets the values of the corners of a rectangle of the
// Mask, clipped to the Mask bounds
func (m Mask) GetWindow(r image.Rectangle) Window {
	r = r.Intersect(m.Bounds())
	if r.Empty() {
		return Window{}
	}
	return Window{
		topleft:     m[r.Min.Y][r.Min.X],
		topright:    m[r.Min.Y][r.Max.X],
		bottomleft:  m[r.Max.Y][r.Min.X],
		bottomright: m[r.Max.Y][r.Max.X],
		width:       r.Dx(),
		height:      r.Dy(),
	}
}

// Count returns the number of matching pixels in a rectangle
func (m Mask) Count(r image.Rectangle) int {
	return int(m.GetWindow(r).Sum())
}

// Proportion returns the proportion of pixels in a rectangle which
// match, or 0 for an empty rectangle
func (m Mask) Proportion(r image.Rectangle) float64 {
	return m.GetWindow(r).Proportion()
}

// Sum returns the number of matching pixels in a Window
func (w Window) Sum() uint32 {
	return w.bottomright + w.topleft - w.topright - w.bottomleft
}

// Size returns the total number of pixels in a Window
func (w Window) Size() int {
	return w.width * w.height
}

// Proportion returns the proportion of pixels in a Window which
// match
func (w Window) Proportion() float64 {
	if w.Size() == 0 {
		return 0
	}
	return float64(w.Sum()) / float64(w.Size())
}
