package signal

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ChannelDescriptor pairs an archive point name with the physical
// angular position of the probe, in radians.
type ChannelDescriptor struct {
	PointName string  `yaml:"pointName"`
	Angle     float64 `yaml:"angle"` // radians
}

// ToroidalArray returns the descriptors for the toroidal Mirnov probe
// array. Descriptor order is semantically meaningful: it indexes the
// rows of an aggregated sample matrix and pairs with the angle list.
func ToroidalArray() []ChannelDescriptor {
	return []ChannelDescriptor{
		{PointName: "mpi66m067", Angle: radians(67)},
		{PointName: "mpi66m097", Angle: radians(97)},
		{PointName: "mpi66m127", Angle: radians(127)},
		{PointName: "mpi66m132", Angle: radians(132)},
		{PointName: "mpi66m137", Angle: radians(137)},
		{PointName: "mpi66m157", Angle: radians(157)},
		{PointName: "mpi66m247", Angle: radians(247)},
		{PointName: "mpi66m277", Angle: radians(277)},
		{PointName: "mpi66m307", Angle: radians(307)},
		{PointName: "mpi66m312", Angle: radians(312)},
		{PointName: "mpi66m322", Angle: radians(322)},
	}
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

type arrayFile struct {
	Channels []ChannelDescriptor `yaml:"channels"`
}

// LoadArray reads an alternate channel array from a YAML file. Each
// entry carries a point name and an angle in radians.
func LoadArray(path string) ([]ChannelDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading array file: %w", err)
	}

	var f arrayFile
	if err = yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing array file: %w", err)
	}

	if len(f.Channels) == 0 {
		return nil, fmt.Errorf("array file '%s' defines no channels", path)
	}
	for i, ch := range f.Channels {
		if ch.PointName == "" {
			return nil, fmt.Errorf("array file '%s': channel %d has no point name", path, i)
		}
	}

	return f.Channels, nil
}
