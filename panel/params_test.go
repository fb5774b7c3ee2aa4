// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panel

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("Default parameters are invalid: %v", err)
	}

	cases := []struct {
		name   string
		modify func(p *Params)
		field  string
	}{
		{"thresholdlow", func(p *Params) { p.ThresholdRel = -0.01 }, "ThresholdRel"},
		{"thresholdhigh", func(p *Params) { p.ThresholdRel = 1.01 }, "ThresholdRel"},
		{"minheight", func(p *Params) { p.MinPanelHeight = 0 }, "MinPanelHeight"},
		{"white", func(p *Params) { p.WhiteThreshold = 2 }, "WhiteThreshold"},
		{"dark", func(p *Params) { p.DarkThreshold = -1 }, "DarkThreshold"},
		{"emptyprefix", func(p *Params) { p.OutputPrefix = "" }, "OutputPrefix"},
		{"pathprefix", func(p *Params) { p.OutputPrefix = "a/b" }, "OutputPrefix"},
		{"quality", func(p *Params) { p.JPEGQuality = 0 }, "JPEGQuality"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultParams()
			c.modify(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("Expected ErrInvalidParameter, got %v", err)
			}
			var perr *InvalidParameterError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected an *InvalidParameterError, got %T", err)
			}
			if perr.Name != c.field {
				t.Fatalf("Expected error about %s, got %s", c.field, perr.Name)
			}
			if !strings.Contains(err.Error(), c.field) {
				t.Fatalf("Error message doesn't name the parameter: %v", err)
			}
		})
	}

	edges := DefaultParams()
	edges.ThresholdRel = 0
	edges.WhiteThreshold = 1
	edges.DarkThreshold = 0
	edges.MinPanelHeight = 1
	if err := edges.Validate(); err != nil {
		t.Fatalf("Parameters at the edges of their ranges are invalid: %v", err)
	}
}
