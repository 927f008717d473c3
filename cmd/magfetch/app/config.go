package app

import (
	"errors"
	"flag"
	"fmt"
)

type Config struct {
	DBPath    string
	Shot      int64
	PointName string
	ArrayPath string

	TimeWindow  []float64 // nil, or exactly two bounds in seconds
	Parallelism int
	Lenient     bool
	List        bool
}

func NewConfig() *Config {
	return &Config{
		Parallelism: 1,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var tmin, tmax float64
	flag.StringVar(&c.DBPath, "db", "", "Path to the archive capture file")
	flag.Int64Var(&c.Shot, "shot", 0, "Shot number to retrieve")
	flag.StringVar(&c.PointName, "point", "", "Retrieve a single point name instead of the toroidal array")
	flag.StringVar(&c.ArrayPath, "array", "", "Path to a YAML channel-array file (default: built-in toroidal array)")
	flag.Float64Var(&tmin, "tmin", 0, "Lower time bound in seconds")
	flag.Float64Var(&tmax, "tmax", 0, "Upper time bound in seconds")
	flag.IntVar(&c.Parallelism, "parallel", 1, "Number of concurrent channel retrievals")
	flag.BoolVar(&c.Lenient, "lenient", false, "Keep the first channel's time base on per-channel mismatch")
	flag.BoolVar(&c.List, "list", false, "List the shots in the capture file and exit")
	flag.Parse()

	var haveMin, haveMax bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "tmin" {
			haveMin = true
		}
		if f.Name == "tmax" {
			haveMax = true
		}
	})

	var err error
	switch {
	case c.DBPath == "":
		err = errors.New("archive capture file is required")
	case !c.List && c.Shot <= 0:
		err = errors.New("shot number is required")
	case haveMin != haveMax:
		err = errors.New("time window needs both -tmin and -tmax")
	case c.Parallelism <= 0:
		err = fmt.Errorf("invalid parallelism: %d", c.Parallelism)
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}

	if haveMin {
		c.TimeWindow = []float64{tmin, tmax}
	}
	return c, nil
}
