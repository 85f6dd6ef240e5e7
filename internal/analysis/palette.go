// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package analysis

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var ErrPaletteExhausted = errors.New("palette exhausted")

// OverflowPolicy defines what happens when there are more series than palette colors.
type OverflowPolicy string

const (
	// OverflowWrap reuses palette colors from the start.
	OverflowWrap OverflowPolicy = "wrap"
	// OverflowError fails with ErrPaletteExhausted.
	OverflowError OverflowPolicy = "error"
)

// ParseOverflowPolicy converts s into OverflowPolicy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch p := OverflowPolicy(s); p {
	case OverflowWrap, OverflowError:
		return p, nil
	default:
		return "", fmt.Errorf("unknown palette overflow policy %q", s)
	}
}

// DefaultPalette holds colors for up to 6 series: red, green, blue, olive, purple, teal.
var DefaultPalette = []string{
	"#990000",
	"#009900",
	"#000099",
	"#999900",
	"#990099",
	"#009999",
}

// Palette assigns colors to chart series by series index.
type Palette struct {
	colors   []color.RGBA
	overflow OverflowPolicy
}

// NewPalette creates Palette from "#rrggbb" color strings.
func NewPalette(hexColors []string, overflow OverflowPolicy) (*Palette, error) {
	if len(hexColors) == 0 {
		return nil, errors.New("NewPalette() empty palette")
	}
	if _, err := ParseOverflowPolicy(string(overflow)); err != nil {
		return nil, fmt.Errorf("NewPalette(): %w", err)
	}

	colors := make([]color.RGBA, 0, len(hexColors))
	for _, h := range hexColors {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, fmt.Errorf("NewPalette(): %w", err)
		}
		colors = append(colors, c)
	}
	return &Palette{colors: colors, overflow: overflow}, nil
}

// Len returns number of distinct colors in Palette.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Color returns color for series with index i.
func (p *Palette) Color(i int) (color.RGBA, error) {
	if i < 0 {
		return color.RGBA{}, fmt.Errorf("negative series index %d", i)
	}
	if i >= len(p.colors) && p.overflow != OverflowWrap {
		return color.RGBA{}, fmt.Errorf("series %d with %d colors: %w", i+1, len(p.colors), ErrPaletteExhausted)
	}
	return p.colors[i%len(p.colors)], nil
}

// ParseHexColor parses color in "#rrggbb" notation.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 || len(h) == len(s) {
		return color.RGBA{}, fmt.Errorf("invalid color %q, expecting #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
