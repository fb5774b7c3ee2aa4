// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// selection copies a subset of the pages of a book between
// directories, with pages chosen by chapter and page number. Page
// files are named CCCPPP.png, with a 3 digit chapter number followed
// by a 3 digit page number.
package selection

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var pageName = regexp.MustCompile(`^([0-9]{3})([0-9]{3})\.png$`)

// maxNumber is the highest chapter or page number a page name can hold
const maxNumber = 999

// Mode determines whether a Filter copies the pages it matches or
// every other page
type Mode int

const (
	Select Mode = iota
	Exclude
)

// Filter chooses pages by chapter and page number. A nil list
// matches every number.
type Filter struct {
	Chapters []int
	Pages    []int
	Mode     Mode
}

func contains(list []int, n int) bool {
	if list == nil {
		return true
	}
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

// Match reports whether the page should be copied
func (f Filter) Match(chapter, page int) bool {
	m := contains(f.Chapters, chapter) && contains(f.Pages, page)
	if f.Mode == Exclude {
		return !m
	}
	return m
}

// ParseName gets the chapter and page numbers from a page file name
func ParseName(name string) (chapter int, page int, ok bool) {
	m := pageName.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	chapter, _ = strconv.Atoi(m[1])
	page, _ = strconv.Atoi(m[2])
	return chapter, page, true
}

// ParseList parses a comma separated list of numbers and ranges,
// like "1,3,5-7", each between 0 and 999. "all" or an empty string
// returns nil, which matches every number.
func ParseList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return nil, nil
	}

	var list []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi := part, part
		if i := strings.Index(part, "-"); i > 0 {
			lo, hi = part[:i], part[i+1:]
		}
		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("Error parsing number %s: %w", lo, err)
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("Error parsing number %s: %w", hi, err)
		}
		if start < 0 || end < start || end > maxNumber {
			return nil, fmt.Errorf("Invalid range %s: must be between 0 and %d", part, maxNumber)
		}
		for n := start; n <= end; n++ {
			list = append(list, n)
		}
	}

	return list, nil
}

// copyFile copies src to dst, keeping the modification time of src
func copyFile(src string, dst string) error {
	fin, err := os.Open(src)
	if err != nil {
		return err
	}
	defer fin.Close()

	fi, err := fin.Stat()
	if err != nil {
		return err
	}

	fout, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer fout.Close()

	_, err = io.Copy(fout, fin)
	if err != nil {
		return err
	}
	err = fout.Close()
	if err != nil {
		return err
	}

	return os.Chtimes(dst, fi.ModTime(), fi.ModTime())
}

// Copy copies the page files in src which the filter allows into
// dst, returning the names copied in order. Files in src which are
// not named like pages are ignored.
func Copy(ctx context.Context, src string, dst string, f Filter) ([]string, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("Failed to read directory %s: %w", src, err)
	}

	err = os.MkdirAll(dst, 0755)
	if err != nil {
		return nil, fmt.Errorf("Error creating directory %s: %w", dst, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		chapter, page, ok := ParseName(e.Name())
		if ok && f.Match(chapter, page) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var copied []string
	for _, n := range names {
		select {
		case <-ctx.Done():
			return copied, ctx.Err()
		default:
		}
		err = copyFile(filepath.Join(src, n), filepath.Join(dst, n))
		if err != nil {
			return copied, fmt.Errorf("Error copying %s: %w", n, err)
		}
		copied = append(copied, n)
	}

	return copied, nil
}
