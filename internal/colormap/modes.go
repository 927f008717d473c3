package colormap

import (
	"errors"
	"fmt"
	"math"
)

// ErrAngularSeparation is returned for a non-positive probe
// separation; the resolvable mode-number bounds would be undefined.
var ErrAngularSeparation = errors.New("angular separation must be positive")

// ModePalettes pairs the full mode-number palette with the subset
// resolvable by a two-point correlation at a given probe separation.
// FullModes and ClippedModes list the mode numbers the palettes
// label, index-aligned with the color lists.
type ModePalettes struct {
	Full    Palette // One color per representable mode number
	Clipped Palette // Subset within the Nyquist-like bounds

	FullModes    []int
	ClippedModes []int
}

// MixedSignModeNumbers builds palettes for mode numbers -6..5. The
// full palette uses all twelve distinct colors in warm-to-cool order.
// The clipped palette keeps only the mode numbers resolvable by a
// two-point correlation whose probes are angularSeparation radians
// apart: lower bound floor(-pi/sep)+1, upper bound floor(pi/sep).
func (b *Builder) MixedSignModeNumbers(angularSeparation float64) (ModePalettes, error) {
	if angularSeparation <= 0 {
		return ModePalettes{}, fmt.Errorf("got %g rad: %w", angularSeparation, ErrAngularSeparation)
	}

	full, err := b.Build(MaxColors)
	if err != nil {
		return ModePalettes{}, err
	}

	modeNumbers := modeRange(-6, 6)
	lbound, ubound := correlationBounds(angularSeparation)

	start, stop := 0, len(modeNumbers)
	var opts []BuildOption
	if lbound > modeNumbers[0] {
		start = firstAtLeast(modeNumbers, lbound)
		opts = append(opts, WithStart(start))
	}
	if ubound < modeNumbers[len(modeNumbers)-1] {
		stop = lastAtMost(modeNumbers, ubound) + 1
		opts = append(opts, WithStop(stop))
	}

	clipped, err := b.Build(MaxColors, opts...)
	if err != nil {
		return ModePalettes{}, err
	}

	return ModePalettes{
		Full:         full,
		Clipped:      clipped,
		FullModes:    modeNumbers,
		ClippedModes: modeNumbers[start:stop],
	}, nil
}

// PositiveModeNumbers builds palettes for mode numbers 0..11 in
// cool-to-warm order. The upper bound is shifted down by the lower
// bound to account for the zero origin, and only the stop side is
// ever clipped.
func (b *Builder) PositiveModeNumbers(angularSeparation float64) (ModePalettes, error) {
	if angularSeparation <= 0 {
		return ModePalettes{}, fmt.Errorf("got %g rad: %w", angularSeparation, ErrAngularSeparation)
	}

	full, err := b.Build(MaxColors, CoolToWarm())
	if err != nil {
		return ModePalettes{}, err
	}

	modeNumbers := modeRange(0, MaxColors)
	lbound, ubound := correlationBounds(angularSeparation)
	ubound -= lbound

	stop := len(modeNumbers)
	opts := []BuildOption{CoolToWarm()}
	if ubound < modeNumbers[len(modeNumbers)-1] {
		stop = lastAtMost(modeNumbers, ubound) + 1
		opts = append(opts, WithStop(stop))
	}

	clipped, err := b.Build(MaxColors, opts...)
	if err != nil {
		return ModePalettes{}, err
	}

	return ModePalettes{
		Full:         full,
		Clipped:      clipped,
		FullModes:    modeNumbers,
		ClippedModes: modeNumbers[:stop],
	}, nil
}

// correlationBounds computes the smallest and largest mode numbers a
// two-point correlation can resolve at the given probe separation.
// Floor matters here: truncation would round the negative ratio the
// wrong way.
func correlationBounds(angularSeparation float64) (lbound, ubound int) {
	lbound = int(math.Floor(-math.Pi/angularSeparation)) + 1
	ubound = int(math.Floor(math.Pi / angularSeparation))
	return lbound, ubound
}

// modeRange returns the integers in [lo, hi).
func modeRange(lo, hi int) []int {
	modes := make([]int, 0, hi-lo)
	for m := lo; m < hi; m++ {
		modes = append(modes, m)
	}
	return modes
}

// firstAtLeast returns the index of the first mode number >= bound.
func firstAtLeast(modes []int, bound int) int {
	for i, m := range modes {
		if m >= bound {
			return i
		}
	}
	return len(modes)
}

// lastAtMost returns the index of the last mode number <= bound.
func lastAtMost(modes []int, bound int) int {
	for i := len(modes) - 1; i >= 0; i-- {
		if modes[i] <= bound {
			return i
		}
	}
	return -1
}
