// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panel

import (
	"image"
	"image/color"
)

// blankpage makes a page filled with a single grey level
func blankpage(w, h int, level uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	return img
}

// linedpage makes a mid grey page, so that its panels are not
// degenerate, with a dark horizontal line at each of rows
func linedpage(w, h int, rows ...int) *image.Gray {
	img := blankpage(w, h, 180)
	for _, y := range rows {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{0})
		}
	}
	return img
}

// colourpage is linedpage as an RGBA image
func colourpage(w, h int, rows ...int) *image.RGBA {
	gray := linedpage(w, h, rows...)
	img := image.NewRGBA(gray.Bounds())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := gray.GrayAt(x, y).Y
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}
