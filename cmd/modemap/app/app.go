package app

import (
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"

	"github.com/magdiag/magnetics/internal/colormap"
	"github.com/magdiag/magnetics/internal/render"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	builder := colormap.NewBuilder(nil)

	var palettes colormap.ModePalettes
	var err error
	switch config.Preset {
	case PresetMixed:
		palettes, err = builder.MixedSignModeNumbers(config.Separation)
	case PresetPositive:
		palettes, err = builder.PositiveModeNumbers(config.Separation)
	}
	if err != nil {
		return fmt.Errorf("building %s preset: %w", config.Preset, err)
	}

	palette, modes := palettes.Clipped, palettes.ClippedModes
	if config.Full {
		palette, modes = palettes.Full, palettes.FullModes
	}

	labels := make([]string, len(modes))
	for i, m := range modes {
		labels[i] = fmt.Sprintf("n = %d", m)
	}

	renderer, err := render.NewLegendRenderer(render.Config{FontPath: config.FontPath})
	if err != nil {
		return fmt.Errorf("creating legend renderer: %w", err)
	}
	defer renderer.Close()

	logger.Info("rendering legend",
		slog.Group("image",
			slog.String("destination", config.OutputFile),
			slog.String("format", string(config.Format)),
		),
		slog.Group("palette",
			slog.String("name", palette.Name),
			slog.Int("colors", palette.Len()),
			slog.String("separation", fmt.Sprintf("%.4f rad", config.Separation)),
		))

	img, err := renderer.Render(palette, labels)
	if err != nil {
		return fmt.Errorf("rendering legend: %w", err)
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	switch config.Format {
	case ImagePNG:
		err = png.Encode(out, img)

	case ImageJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{
			Quality: 98,
		})
	}
	return err
}
