// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panel

import (
	"image"

	"github.com/disintegration/imaging"
)

// Panel is one region of a page along with its content check. Image
// is only set for panels which are not degenerate.
type Panel struct {
	Region
	Verdict
	Image *image.NRGBA
}

// Page holds everything found while splitting a page
type Page struct {
	Profile    Profile
	Boundaries []int
	Panels     []Panel
}

// Kept returns the panels which are not degenerate, in order from
// the top of the page
func (p *Page) Kept() []Panel {
	var kept []Panel
	for _, pn := range p.Panels {
		if !pn.Degenerate {
			kept = append(kept, pn)
		}
	}
	return kept
}

// Discarded returns the number of degenerate panels
func (p *Page) Discarded() int {
	return len(p.Panels) - len(p.Kept())
}

// normalise converts a page to 8 bit NRGBA, the same pixels that Crop
// gives, so that checking a region of the page and checking its crop
// agree. Gray pages are left alone, as the conversion is lossless.
func normalise(img image.Image) image.Image {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	return imaging.Clone(img)
}

// Split finds the panels on a page. The luminance image is shared
// between edge detection and the content check, so each page is only
// converted once.
func Split(img image.Image, params Params) (*Page, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}

	img = normalise(img)
	gray := Gray(img)
	profile := RowSums(EdgeImage(gray))

	boundaries, err := FindBoundaries(profile, params.ThresholdRel, params.MinPanelHeight)
	if err != nil {
		return nil, err
	}

	masks := NewMasks(gray)
	page := &Page{Profile: profile, Boundaries: boundaries}
	for _, r := range Regions(b.Dy(), boundaries, params.MinPanelHeight) {
		pn := Panel{Region: r}
		pn.Verdict = masks.Classify(r.Rect(gray.Bounds()), params.WhiteThreshold, params.DarkThreshold)
		if !pn.Degenerate {
			pn.Image = Crop(img, r)
		}
		page.Panels = append(page.Panels, pn)
	}

	return page, nil
}
