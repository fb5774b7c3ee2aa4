// Copyright 2026 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package panel

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Default values for Params
const (
	DefaultThresholdRel   = 0.3
	DefaultMinPanelHeight = 150
	DefaultWhiteThreshold = 0.9
	DefaultDarkThreshold  = 0.8
	DefaultOutputPrefix   = "panel"
	DefaultJPEGQuality    = 95
)

// Luminance cutoffs, on an 8 bit scale, used by the content filter
const (
	WhiteLevel = 240 // pixels brighter than this are near-white
	DarkLevel  = 100 // pixels darker than this are dark
)

// ErrInvalidParameter is matched by any *InvalidParameterError
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrEmptyImage is returned when an image has no pixels
var ErrEmptyImage = errors.New("image has zero width or height")

// InvalidParameterError describes a configuration value which is
// outside of its valid range
type InvalidParameterError struct {
	Name  string
	Value interface{}
	Want  string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("Invalid parameter %s = %v: must be %s", e.Name, e.Value, e.Want)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// Params holds everything which can be tuned for splitting a page
type Params struct {
	ThresholdRel   float64 // Relative height of the highest profile peak a boundary must reach
	MinPanelHeight int     // Minimum panel height, and minimum spacing between boundaries
	WhiteThreshold float64 // Proportion of near-white pixels above which a panel is discarded
	DarkThreshold  float64 // Proportion of dark pixels above which a panel is discarded
	OutputPrefix   string  // Prefix of saved panel files
	JPEGQuality    int     // Quality of saved panel files
}

// DefaultParams returns the default splitting parameters
func DefaultParams() Params {
	return Params{
		ThresholdRel:   DefaultThresholdRel,
		MinPanelHeight: DefaultMinPanelHeight,
		WhiteThreshold: DefaultWhiteThreshold,
		DarkThreshold:  DefaultDarkThreshold,
		OutputPrefix:   DefaultOutputPrefix,
		JPEGQuality:    DefaultJPEGQuality,
	}
}

func unitRange(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return &InvalidParameterError{Name: name, Value: v, Want: "between 0 and 1"}
	}
	return nil
}

func positive(name string, v int) error {
	if v <= 0 {
		return &InvalidParameterError{Name: name, Value: v, Want: "greater than 0"}
	}
	return nil
}

// Validate checks that all parameters are within their valid
// ranges, returning an *InvalidParameterError for the first one
// which is not
func (p Params) Validate() error {
	if err := unitRange("ThresholdRel", p.ThresholdRel); err != nil {
		return err
	}
	if err := positive("MinPanelHeight", p.MinPanelHeight); err != nil {
		return err
	}
	if err := unitRange("WhiteThreshold", p.WhiteThreshold); err != nil {
		return err
	}
	if err := unitRange("DarkThreshold", p.DarkThreshold); err != nil {
		return err
	}
	if p.OutputPrefix == "" || strings.ContainsAny(p.OutputPrefix, `/\`) {
		return &InvalidParameterError{Name: "OutputPrefix", Value: p.OutputPrefix, Want: "a non-empty name without path separators"}
	}
	if p.JPEGQuality < 1 || p.JPEGQuality > 100 {
		return &InvalidParameterError{Name: "JPEGQuality", Value: p.JPEGQuality, Want: "between 1 and 100"}
	}
	return nil
}
