// Package colormap builds perceptually distinct, color-blind-safe
// palettes for labeling discrete mode numbers in magnetics spectra.
package colormap

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// MinColors and MaxColors bound the number of distinct colors a
	// generator can produce while keeping adjacent colors separable
	// under common color-vision deficiencies.
	MinColors = 1
	MaxColors = 12
)

// ErrColorCount is returned when a palette size outside
// [MinColors, MaxColors] is requested.
var ErrColorCount = errors.New("color count out of range")

// Generator produces ordered lists of visually distinct colors. The
// native order progresses from cool to warm.
type Generator interface {
	Distinct(n int) ([]colorful.Color, error)
}

// Paul Tol's qualitative color schemes (SRON technical note SRON/EPS/
// TN/09-002). One row per palette size; each row is ordered cool to
// warm and stays distinguishable under deuteranopia and protanopia.
var tolSchemes = [MaxColors][]string{
	{"#4477AA"},
	{"#4477AA", "#CC6677"},
	{"#4477AA", "#DDCC77", "#CC6677"},
	{"#4477AA", "#117733", "#DDCC77", "#CC6677"},
	{"#332288", "#88CCEE", "#117733", "#DDCC77", "#CC6677"},
	{"#332288", "#88CCEE", "#117733", "#DDCC77", "#CC6677", "#AA4499"},
	{"#332288", "#88CCEE", "#44AA99", "#117733", "#DDCC77", "#CC6677",
		"#AA4499"},
	{"#332288", "#88CCEE", "#44AA99", "#117733", "#999933", "#DDCC77",
		"#CC6677", "#AA4499"},
	{"#332288", "#88CCEE", "#44AA99", "#117733", "#999933", "#DDCC77",
		"#CC6677", "#882255", "#AA4499"},
	{"#332288", "#88CCEE", "#44AA99", "#117733", "#999933", "#DDCC77",
		"#661100", "#CC6677", "#882255", "#AA4499"},
	{"#332288", "#6699CC", "#88CCEE", "#44AA99", "#117733", "#999933",
		"#DDCC77", "#661100", "#CC6677", "#882255", "#AA4499"},
	{"#332288", "#6699CC", "#88CCEE", "#44AA99", "#117733", "#999933",
		"#DDCC77", "#661100", "#CC6677", "#AA4466", "#882255", "#AA4499"},
}

// TolGenerator is the default Generator, backed by Paul Tol's
// published distinct-colour tables.
type TolGenerator struct{}

// Distinct returns n distinct colors in cool-to-warm order.
func (TolGenerator) Distinct(n int) ([]colorful.Color, error) {
	if n < MinColors || n > MaxColors {
		return nil, fmt.Errorf("%d colors requested, supported range is [%d, %d]: %w",
			n, MinColors, MaxColors, ErrColorCount)
	}

	scheme := tolSchemes[n-1]
	colors := make([]colorful.Color, n)
	for i, hex := range scheme {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("parsing scheme color '%s': %w", hex, err)
		}
		colors[i] = c
	}

	return colors, nil
}
