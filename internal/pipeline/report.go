// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
)

// Summary is a count of what happened to a batch of pages
type Summary struct {
	Pages     int
	Failed    int
	Kept      int
	Discarded int
}

// Partial reports whether any page in the batch failed
func (s Summary) Partial() bool {
	return s.Failed > 0
}

// Summarise totals up a set of Results
func Summarise(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.Pages++
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.Kept += r.Kept
		s.Discarded += r.Discarded
	}
	return s
}

// Report writes a line for each page describing what was done with
// it, followed by a line for the whole batch
func Report(w io.Writer, results []Result) error {
	for _, r := range results {
		var err error
		name := filepath.Base(r.Path)
		if r.Err != nil {
			_, err = fmt.Fprintf(w, "%s: failed: %v\n", name, r.Err)
		} else {
			_, err = fmt.Fprintf(w, "%s: %d panels saved, %d discarded\n", name, r.Kept, r.Discarded)
		}
		if err != nil {
			return err
		}
	}

	s := Summarise(results)
	_, err := fmt.Fprintf(w, "%d pages processed, %d failed, %d panels saved, %d discarded\n", s.Pages, s.Failed, s.Kept, s.Discarded)
	return err
}
