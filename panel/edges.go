// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// panel splits comic book pages into their panels. A page is turned
// into a profile of how much edge activity there is on each row,
// the peaks of that profile are taken as the gutters between panels,
// and the page is cropped between them. Crops which are nearly all
// white or nearly all dark are marked as degenerate, as they are
// gutters, blank space or solid dividers rather than real panels.
//
// Only horizontal gutters are found; each panel spans the full width
// of the page.
package panel

import (
	"image"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"
)

// Profile is the sum of the edge response along each row of an
// image, from top to bottom
type Profile []float64

// Max returns the highest value in the profile, or 0 if it is empty
func (p Profile) Max() float64 {
	if len(p) == 0 {
		return 0
	}
	return floats.Max(p)
}

// Gray converts an image to 8 bit luminance, with its origin at 0, 0.
// Images which are already like that are returned as-is.
func Gray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// clamp keeps i within [0, n)
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// EdgeImage applies a 3x3 edge detection kernel to an image:
//
//	-1 -1 -1
//	-1  8 -1
//	-1 -1 -1
//
// The magnitude of the response is clipped to 255. Pixels outside of
// the image are treated as copies of the nearest edge pixel, so the
// result has the same dimensions as the input and a uniform image
// has no edges at all.
func EdgeImage(gray *image.Gray) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	edges := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		rows := [3]int{clamp(y-1, h), y, clamp(y+1, h)}
		for x := 0; x < w; x++ {
			cols := [3]int{clamp(x-1, w), x, clamp(x+1, w)}
			var sum int
			for _, yi := range rows {
				off := yi * gray.Stride
				for _, xi := range cols {
					sum += int(gray.Pix[off+xi])
				}
			}
			centre := int(gray.Pix[y*gray.Stride+x])
			// sum includes the centre once, so this is 8*centre - neighbours
			r := 9*centre - sum
			if r < 0 {
				r = -r
			}
			if r > 255 {
				r = 255
			}
			edges.Pix[y*edges.Stride+x] = uint8(r)
		}
	}

	return edges
}

// RowSums sums each row of an image
func RowSums(img *image.Gray) Profile {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	p := make(Profile, h)
	for y := 0; y < h; y++ {
		var sum int
		for _, v := range img.Pix[y*img.Stride : y*img.Stride+w] {
			sum += int(v)
		}
		p[y] = float64(sum)
	}
	return p
}

// EdgeProfile finds the amount of edge activity on each row of an
// image. The profile always has one entry per row.
func EdgeProfile(img image.Image) (Profile, error) {
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return RowSums(EdgeImage(Gray(img))), nil
}
