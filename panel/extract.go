// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panel

import (
	"image"

	"github.com/disintegration/imaging"
)

// Region is a horizontal strip of a page, from row Start up to but
// not including row End
type Region struct {
	Start, End int
}

// Height returns the number of rows in the region
func (r Region) Height() int {
	return r.End - r.Start
}

// Rect returns the rectangle covering the region across the full
// width of bounds
func (r Region) Rect(bounds image.Rectangle) image.Rectangle {
	return image.Rect(bounds.Min.X, bounds.Min.Y+r.Start, bounds.Max.X, bounds.Min.Y+r.End)
}

// Regions splits a page of the given height at the boundaries. Any
// strip shorter than minPanelHeight is merged into the strip below
// it, so thin slivers next to a gutter end up as part of the
// following panel. If the strip left at the bottom of the page is
// too short it is merged into the last region, so the regions always
// cover the whole page. A page shorter than minPanelHeight has no
// regions.
func Regions(height int, boundaries []int, minPanelHeight int) []Region {
	var regions []Region
	start := 0
	for _, end := range append(boundaries[:len(boundaries):len(boundaries)], height) {
		if end-start >= minPanelHeight {
			regions = append(regions, Region{start, end})
			start = end
		}
	}
	if start < height && len(regions) > 0 {
		regions[len(regions)-1].End = height
	}
	return regions
}

// Crop copies a region out of the page, across its full width, so
// the result doesn't share memory with the page
func Crop(img image.Image, r Region) *image.NRGBA {
	return imaging.Crop(img, r.Rect(img.Bounds()))
}

// Extract crops each region out of the page
func Extract(img image.Image, regions []Region) []*image.NRGBA {
	crops := make([]*image.NRGBA, 0, len(regions))
	for _, r := range regions {
		crops = append(crops, Crop(img, r))
	}
	return crops
}
