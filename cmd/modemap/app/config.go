package app

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strings"
)

const (
	ImagePNG  = "png"
	ImageJPEG = "jpeg"

	PresetMixed    = "mixed"
	PresetPositive = "positive"
)

type ImageFormat string

type Config struct {
	OutputFile string
	Format     ImageFormat
	FontPath   string

	Preset     string
	Separation float64 // radians
	Full       bool    // render the full palette instead of the clipped one
}

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

var validPresets = map[string]struct{}{
	PresetMixed:    {},
	PresetPositive: {},
}

func NewConfig() *Config {
	return &Config{
		Format:     ImagePNG,
		Preset:     PresetMixed,
		Separation: math.Pi / 4,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var imageFormat string
	flag.StringVar(&c.OutputFile, "o", "", "Path to the output file")
	flag.StringVar(&imageFormat, "f", string(ImagePNG), "Output image format. [png, jpeg]")
	flag.StringVar(&c.FontPath, "font", "", "Path to a TTF font for labels")
	flag.StringVar(&c.Preset, "preset", PresetMixed, "Mode-number preset. [mixed, positive]")
	flag.Float64Var(&c.Separation, "sep", math.Pi/4, "Angular separation of the correlation pair in radians")
	flag.BoolVar(&c.Full, "full", false, "Render the full palette instead of the clipped subset")
	flag.Parse()

	imageFormat = strings.ToLower(imageFormat)
	c.Preset = strings.ToLower(c.Preset)

	var err error
	switch {
	case c.OutputFile == "":
		err = errors.New("output file is required")
	case c.FontPath == "":
		err = errors.New("font file is required")
	default:
		if _, ok := validImageFormats[ImageFormat(imageFormat)]; !ok {
			err = fmt.Errorf("invalid image format: %s", imageFormat)
		} else if _, ok = validPresets[c.Preset]; !ok {
			err = fmt.Errorf("invalid preset: %s", c.Preset)
		} else if c.Separation <= 0 {
			err = fmt.Errorf("invalid angular separation: %g", c.Separation)
		}
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}

	c.Format = ImageFormat(imageFormat)
	c.OutputFile = fmt.Sprintf("%s.%s", c.OutputFile, c.Format)
	return c, nil
}
