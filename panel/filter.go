// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panel

import (
	"image"

	"rescribe.xyz/panelsplit/integralimg"
)

// Verdict is the result of checking whether a crop has any content
type Verdict struct {
	WhiteRatio float64 // Proportion of pixels brighter than WhiteLevel
	DarkRatio  float64 // Proportion of pixels darker than DarkLevel
	Degenerate bool    // Whether the crop is blank or a solid colour
}

func isWhite(v uint8) bool {
	return v > WhiteLevel
}

func isDark(v uint8) bool {
	return v < DarkLevel
}

// Masks holds the near-white and dark pixel counts of an image, so
// that any part of it can be checked for content quickly
type Masks struct {
	White, Dark integralimg.Mask
}

// NewMasks calculates the Masks for an image
func NewMasks(gray *image.Gray) Masks {
	return Masks{
		White: integralimg.NewMask(gray, isWhite),
		Dark:  integralimg.NewMask(gray, isDark),
	}
}

// Classify checks a rectangle of the image the masks were made from,
// which has its origin at 0, 0. A crop which is mostly near-white
// (above whiteThreshold) or mostly dark (above darkThreshold) is
// degenerate, as is an empty one.
func (m Masks) Classify(r image.Rectangle, whiteThreshold, darkThreshold float64) Verdict {
	r = r.Intersect(m.White.Bounds())
	if r.Empty() {
		return Verdict{Degenerate: true}
	}
	v := Verdict{
		WhiteRatio: m.White.Proportion(r),
		DarkRatio:  m.Dark.Proportion(r),
	}
	v.Degenerate = v.WhiteRatio > whiteThreshold || v.DarkRatio > darkThreshold
	return v
}

// Classify checks whether a crop is degenerate; see Masks.Classify
func Classify(img image.Image, whiteThreshold, darkThreshold float64) Verdict {
	if img.Bounds().Empty() {
		return Verdict{Degenerate: true}
	}
	gray := Gray(img)
	return NewMasks(gray).Classify(gray.Bounds(), whiteThreshold, darkThreshold)
}

// IsDegenerate reports whether a crop is nearly all white or nearly
// all dark, and so is not really a panel
func IsDegenerate(img image.Image, whiteThreshold, darkThreshold float64) bool {
	return Classify(img, whiteThreshold, darkThreshold).Degenerate
}
