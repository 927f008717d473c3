package colormap

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is a named, ordered, immutable list of distinct colors.
// The name deterministically encodes the color count, the direction,
// and the literal slice bounds used, so identical build arguments
// yield identical names and different arguments never collide.
type Palette struct {
	Name   string
	Colors []colorful.Color
}

// Len returns the number of colors in the palette.
func (p Palette) Len() int {
	return len(p.Colors)
}

// Hex returns the palette colors as hex strings.
func (p Palette) Hex() []string {
	hex := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hex[i] = c.Hex()
	}
	return hex
}

// BuildOption configures a palette build.
type BuildOption func(*buildParams)

type buildParams struct {
	start      *int
	stop       *int
	coolToWarm bool
}

// WithStart keeps only colors from index start on. Slicing always
// happens after any reversal: the window selects a sub-range of the
// already direction-ordered spectrum.
func WithStart(start int) BuildOption {
	return func(p *buildParams) {
		p.start = &start
	}
}

// WithStop keeps only colors before index stop (half-open).
func WithStop(stop int) BuildOption {
	return func(p *buildParams) {
		p.stop = &stop
	}
}

// WithRange sets both slice bounds. This is a convenience function
// equivalent to applying both WithStart and WithStop.
func WithRange(start, stop int) BuildOption {
	return func(p *buildParams) {
		p.start = &start
		p.stop = &stop
	}
}

// CoolToWarm keeps the generator's native cool-to-warm order. Without
// this option the color list is reversed to warm-to-cool before any
// slicing.
func CoolToWarm() BuildOption {
	return func(p *buildParams) {
		p.coolToWarm = true
	}
}

// Builder constructs palettes from an injected distinct-color
// generator.
type Builder struct {
	gen Generator
}

// NewBuilder creates a Builder. A nil generator selects the built-in
// Tol tables.
func NewBuilder(gen Generator) *Builder {
	if gen == nil {
		gen = TolGenerator{}
	}
	return &Builder{gen: gen}
}

// Build produces a palette of count distinct colors. Count must lie
// in [MinColors, MaxColors]. Unless CoolToWarm is given, the list is
// reversed to warm-to-cool first, then the optional [start:stop)
// window is applied.
func (b *Builder) Build(count int, opts ...BuildOption) (Palette, error) {
	var params buildParams
	for _, opt := range opts {
		opt(&params)
	}

	colors, err := b.gen.Distinct(count)
	if err != nil {
		return Palette{}, fmt.Errorf("generating %d distinct colors: %w", count, err)
	}

	name := fmt.Sprintf("distinct_%d", count)

	if !params.coolToWarm {
		reverse(colors)
		name += "_warm_to_cool"
	} else {
		name += "_cool_to_warm"
	}

	name += boundToken(params.start) + boundToken(params.stop)

	return Palette{
		Name:   name,
		Colors: window(colors, params.start, params.stop),
	}, nil
}

func reverse(colors []colorful.Color) {
	for i, j := 0, len(colors)-1; i < j; i, j = i+1, j-1 {
		colors[i], colors[j] = colors[j], colors[i]
	}
}

// boundToken renders a slice bound for the palette name, with "None"
// standing in for an unspecified bound.
func boundToken(bound *int) string {
	if bound == nil {
		return "_None"
	}
	return fmt.Sprintf("_%d", *bound)
}

// window applies half-open [start:stop) slicing with bounds clamped
// to the list, so over-long windows degrade to the full list and an
// inverted window yields an empty palette.
func window(colors []colorful.Color, start, stop *int) []colorful.Color {
	lo, hi := 0, len(colors)
	if start != nil {
		lo = clamp(*start, 0, len(colors))
	}
	if stop != nil {
		hi = clamp(*stop, 0, len(colors))
	}
	if lo > hi {
		lo = hi
	}
	return colors[lo:hi]
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
