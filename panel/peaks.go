// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panel

import (
	"sort"
)

// localMaxima finds the peaks in a profile which are at least as
// high as thresh. A peak is a value higher than both its neighbours,
// or a flat run of equal values with lower values either side, in
// which case the middle of the run is used (the lower middle for
// runs of even length). The first and last values are never peaks.
func localMaxima(p Profile, thresh float64) []int {
	var peaks []int
	i := 1
	for i < len(p)-1 {
		if p[i] <= p[i-1] {
			i++
			continue
		}
		// rising edge; find the end of any plateau
		end := i
		for end+1 < len(p)-1 && p[end+1] == p[i] {
			end++
		}
		if p[end+1] < p[i] && p[i] >= thresh {
			peaks = append(peaks, (i+end)/2)
		}
		i = end + 1
	}
	return peaks
}

// farEnough checks whether y is at least dist away from every
// accepted peak
func farEnough(accepted []int, y int, dist int) bool {
	for _, a := range accepted {
		d := a - y
		if d < 0 {
			d = -d
		}
		if d < dist {
			return false
		}
	}
	return true
}

// FindBoundaries finds the rows of a profile which are likely to be
// gutters between panels. These are the peaks of the profile which
// reach thresholdRel of its highest value. Where peaks are closer
// than minPanelHeight the higher one is kept, or the earlier one if
// they are equal. The boundaries are returned in increasing order.
func FindBoundaries(p Profile, thresholdRel float64, minPanelHeight int) ([]int, error) {
	if err := unitRange("ThresholdRel", thresholdRel); err != nil {
		return nil, err
	}
	if err := positive("MinPanelHeight", minPanelHeight); err != nil {
		return nil, err
	}

	// a page shorter than a single panel can't be split
	if len(p) < minPanelHeight {
		return nil, nil
	}

	max := p.Max()
	if max <= 0 {
		return nil, nil
	}

	candidates := localMaxima(p, thresholdRel*max)

	// highest first, earliest first for equal heights
	sort.SliceStable(candidates, func(i, j int) bool {
		return p[candidates[i]] > p[candidates[j]]
	})

	var accepted []int
	for _, c := range candidates {
		if farEnough(accepted, c, minPanelHeight) {
			accepted = append(accepted, c)
		}
	}

	sort.Ints(accepted)
	return accepted, nil
}
