// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

//go:build gocv

package panel

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// EdgeProfileCV is the same as EdgeProfile, but uses OpenCV for the
// filtering and summing, which is considerably faster for large
// pages. It is only built with the gocv build tag, as it needs the
// OpenCV libraries to be installed.
func EdgeProfileCV(img image.Image) (Profile, error) {
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	gray, err := gocv.ImageGrayToMatGray(Gray(img))
	if err != nil {
		return nil, fmt.Errorf("Error converting image to Mat: %w", err)
	}
	defer gray.Close()

	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	defer kernel.Close()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			kernel.SetFloatAt(y, x, -1)
		}
	}
	kernel.SetFloatAt(1, 1, 8)

	response := gocv.NewMat()
	defer response.Close()
	gocv.Filter2D(gray, &response, gocv.MatTypeCV16S, kernel, image.Point{-1, -1}, 0, gocv.BorderReplicate)

	// absolute value, saturated to 8 bits
	edges := gocv.NewMat()
	defer edges.Close()
	gocv.ConvertScaleAbs(response, &edges, 1, 0)

	sums := gocv.NewMat()
	defer sums.Close()
	gocv.Reduce(edges, &sums, 1, gocv.ReduceSum, gocv.MatTypeCV32S)

	p := make(Profile, sums.Rows())
	for y := range p {
		p[y] = float64(sums.GetIntAt(y, 0))
	}
	return p, nil
}
