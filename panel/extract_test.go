// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panel

import (
	"fmt"
	"image"
	"image/color"
	"reflect"
	"testing"
)

func TestRegions(t *testing.T) {
	cases := []struct {
		name       string
		height     int
		boundaries []int
		minheight  int
		expected   []Region
	}{
		{"twoboundaries", 1000, []int{300, 700}, 150, []Region{{0, 300}, {300, 700}, {700, 1000}}},
		{"none", 1000, nil, 150, []Region{{0, 1000}}},
		{"exactheight", 150, nil, 150, []Region{{0, 150}}},
		{"tooshort", 149, nil, 150, nil},
		{"firsttooshort", 1000, []int{100, 400}, 150, []Region{{0, 400}, {400, 1000}}},
		{"middletooshort", 1000, []int{300, 400, 700}, 150, []Region{{0, 300}, {300, 700}, {700, 1000}}},
		{"tailtooshort", 1000, []int{300, 900}, 150, []Region{{0, 300}, {300, 1000}}},
		{"allmerged", 1000, []int{100, 200, 300, 400, 500, 600, 700, 800, 900}, 250, []Region{{0, 300}, {300, 600}, {600, 1000}}},
		{"exactminimums", 450, []int{150, 300}, 150, []Region{{0, 150}, {150, 300}, {300, 450}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			regions := Regions(c.height, c.boundaries, c.minheight)
			if len(regions) == 0 && len(c.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(regions, c.expected) {
				t.Fatalf("Expected regions %v, got %v", c.expected, regions)
			}
		})
	}
}

// TestRegionsCover checks that regions never fall below the minimum
// height and cover the whole page without gaps or overlaps
func TestRegionsCover(t *testing.T) {
	for _, minheight := range []int{1, 7, 50, 150, 333} {
		for _, step := range []int{3, 40, 149, 151, 500} {
			t.Run(fmt.Sprintf("min%d_step%d", minheight, step), func(t *testing.T) {
				height := 1000
				var boundaries []int
				for y := step; y < height; y += step {
					boundaries = append(boundaries, y)
				}
				regions := Regions(height, boundaries, minheight)
				if len(regions) == 0 {
					t.Fatalf("Expected at least one region")
				}
				if regions[0].Start != 0 {
					t.Fatalf("First region starts at %d", regions[0].Start)
				}
				if regions[len(regions)-1].End != height {
					t.Fatalf("Last region ends at %d", regions[len(regions)-1].End)
				}
				for i, r := range regions {
					if r.Height() < minheight {
						t.Fatalf("Region %v is shorter than %d", r, minheight)
					}
					if i > 0 && r.Start != regions[i-1].End {
						t.Fatalf("Region %v doesn't follow %v", r, regions[i-1])
					}
				}
			})
		}
	}
}

func TestExtract(t *testing.T) {
	page := image.NewRGBA(image.Rect(0, 0, 40, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 40; x++ {
			page.SetRGBA(x, y, color.RGBA{uint8(y), uint8(x), 0, 255})
		}
	}
	regions := []Region{{0, 30}, {30, 100}}
	crops := Extract(page, regions)
	if len(crops) != 2 {
		t.Fatalf("Expected 2 crops, got %d", len(crops))
	}
	for i, r := range regions {
		b := crops[i].Bounds()
		if b.Dx() != 40 || b.Dy() != r.Height() {
			t.Fatalf("Crop %d has size %dx%d, expected 40x%d", i, b.Dx(), b.Dy(), r.Height())
		}
		c := crops[i].NRGBAAt(5, 2)
		if int(c.R) != r.Start+2 || c.G != 5 {
			t.Fatalf("Crop %d has wrong pixel at 5,2: %v", i, c)
		}
	}

	// crops must not alias the page
	page.SetRGBA(5, 2, color.RGBA{255, 255, 255, 255})
	if c := crops[0].NRGBAAt(5, 2); c.R != 2 {
		t.Fatalf("Crop changed when the page did: %v", c)
	}
}

func TestExtractOffsetOrigin(t *testing.T) {
	page := linedpage(20, 200, 50)
	sub := page.SubImage(image.Rect(0, 40, 20, 200))
	crops := Extract(sub, []Region{{0, 20}})
	if crops[0].Bounds().Dy() != 20 {
		t.Fatalf("Expected crop of height 20, got %d", crops[0].Bounds().Dy())
	}
	if c := crops[0].NRGBAAt(0, 10); c.R != 0 {
		t.Fatalf("Expected the line at row 10 of the crop, got %v", c)
	}
}
