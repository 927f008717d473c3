// Package render draws palette legends as images: one swatch row per
// color, labeled with the mode number it stands for.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/magdiag/magnetics/internal/colormap"
)

const (
	dpi = 120.0

	defaultFontSize     = 12.0
	defaultSwatchWidth  = 140
	defaultSwatchHeight = 28
	defaultLabelWidth   = 100
	defaultPadding      = 8
)

// Config holds the layout options for legend rendering. Zero values
// select defaults; FontPath is required since no font is shipped with
// the library.
type Config struct {
	FontPath string  // Path to a TTF file used for labels
	FontSize float64 // Font size in points

	SwatchWidth  int // Width of each color swatch in pixels
	SwatchHeight int // Height of each swatch row in pixels
	LabelWidth   int // Space reserved for the label column
	Padding      int // Space around and between rows
}

// LegendRenderer draws palettes as labeled swatch columns.
type LegendRenderer struct {
	context  *freetype.Context
	fontFace font.Face
	config   Config
}

// NewLegendRenderer creates a renderer, loading and parsing the
// configured font.
func NewLegendRenderer(config Config) (*LegendRenderer, error) {
	if config.FontSize == 0 {
		config.FontSize = defaultFontSize
	}
	if config.SwatchWidth == 0 {
		config.SwatchWidth = defaultSwatchWidth
	}
	if config.SwatchHeight == 0 {
		config.SwatchHeight = defaultSwatchHeight
	}
	if config.LabelWidth == 0 {
		config.LabelWidth = defaultLabelWidth
	}
	if config.Padding == 0 {
		config.Padding = defaultPadding
	}

	if config.FontPath == "" {
		return nil, fmt.Errorf("no font configured: set FontPath to a TTF file (any monospace or sans TTF will do)")
	}

	fontBytes, err := os.ReadFile(config.FontPath)
	if err != nil {
		return nil, fmt.Errorf("reading font file '%s': %w", config.FontPath, err)
	}

	parsedFont, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font '%s': %w", config.FontPath, err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetFontSize(config.FontSize)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	return &LegendRenderer{
		context: ctx,
		config:  config,
		fontFace: truetype.NewFace(parsedFont, &truetype.Options{
			Size:    config.FontSize,
			DPI:     dpi,
			Hinting: font.HintingNone,
		}),
	}, nil
}

// Close releases the font face.
func (r *LegendRenderer) Close() error {
	if r.fontFace != nil {
		return r.fontFace.Close()
	}
	return nil
}

// Render draws the palette as a column of swatches with one label per
// color. Labels must be index-aligned with the palette colors.
func (r *LegendRenderer) Render(p colormap.Palette, labels []string) (*image.RGBA, error) {
	if len(labels) != p.Len() {
		return nil, fmt.Errorf("palette '%s': %d labels for %d colors", p.Name, len(labels), p.Len())
	}
	if p.Len() == 0 {
		return nil, fmt.Errorf("palette '%s' is empty", p.Name)
	}

	c := r.config
	width := c.Padding + c.SwatchWidth + c.Padding + c.LabelWidth + c.Padding
	height := c.Padding + p.Len()*(c.SwatchHeight+c.Padding)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	r.context.SetClip(img.Bounds())
	r.context.SetDst(img)

	metrics := r.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()

	for i, col := range p.Colors {
		top := c.Padding + i*(c.SwatchHeight+c.Padding)

		swatch := image.Rect(c.Padding, top, c.Padding+c.SwatchWidth, top+c.SwatchHeight)
		draw.Draw(img, swatch, image.NewUniform(col), image.Point{}, draw.Src)

		// Baseline roughly centered in the swatch row
		textY := top + (c.SwatchHeight+fontHeight)/2 - metrics.Descent.Round()
		pt := freetype.Pt(c.Padding+c.SwatchWidth+c.Padding, textY)
		if _, err := r.context.DrawString(labels[i], pt); err != nil {
			return nil, fmt.Errorf("drawing label '%s': %w", labels[i], err)
		}
	}

	return img, nil
}
