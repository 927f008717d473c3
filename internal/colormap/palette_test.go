package colormap

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder(nil)

	first, err := b.Build(12)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	second, err := b.Build(12)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if first.Name != second.Name {
		t.Errorf("Names differ: %q vs %q", first.Name, second.Name)
	}
	if first.Name != "distinct_12_warm_to_cool_None_None" {
		t.Errorf("Unexpected name %q", first.Name)
	}
	for i := range first.Colors {
		if first.Colors[i] != second.Colors[i] {
			t.Errorf("Color %d differs between identical builds", i)
		}
	}
}

func TestBuild_NameEncodesArguments(t *testing.T) {
	b := NewBuilder(nil)

	tests := []struct {
		opts []BuildOption
		name string
	}{
		{nil, "distinct_12_warm_to_cool_None_None"},
		{[]BuildOption{CoolToWarm()}, "distinct_12_cool_to_warm_None_None"},
		{[]BuildOption{WithStart(2)}, "distinct_12_warm_to_cool_2_None"},
		{[]BuildOption{WithStop(5)}, "distinct_12_warm_to_cool_None_5"},
		{[]BuildOption{WithRange(2, 5)}, "distinct_12_warm_to_cool_2_5"},
		{[]BuildOption{CoolToWarm(), WithRange(3, 10)}, "distinct_12_cool_to_warm_3_10"},
	}
	for _, tt := range tests {
		p, err := b.Build(12, tt.opts...)
		if err != nil {
			t.Fatalf("Build for %q failed: %v", tt.name, err)
		}
		if p.Name != tt.name {
			t.Errorf("Expected name %q, got %q", tt.name, p.Name)
		}
	}
}

func TestBuild_ReversalBeforeSlice(t *testing.T) {
	b := NewBuilder(nil)

	sliced, err := b.Build(12, WithRange(2, 5))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	native, err := b.Build(12, CoolToWarm())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	reversed := make([]colorful.Color, native.Len())
	copy(reversed, native.Colors)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	want := reversed[2:5]
	if sliced.Len() != len(want) {
		t.Fatalf("Expected %d colors, got %d", len(want), sliced.Len())
	}
	for i := range want {
		if sliced.Colors[i] != want[i] {
			t.Errorf("Color %d: expected %v, got %v", i, want[i].Hex(), sliced.Colors[i].Hex())
		}
	}
}

func TestBuild_CountValidation(t *testing.T) {
	b := NewBuilder(nil)

	for _, count := range []int{0, -1, 13, 100} {
		if _, err := b.Build(count); !errors.Is(err, ErrColorCount) {
			t.Errorf("Count %d: expected ErrColorCount, got %v", count, err)
		}
	}

	for count := MinColors; count <= MaxColors; count++ {
		p, err := b.Build(count)
		if err != nil {
			t.Fatalf("Count %d: Build failed: %v", count, err)
		}
		if p.Len() != count {
			t.Errorf("Count %d: got %d colors", count, p.Len())
		}
	}
}

func TestBuild_WindowClamped(t *testing.T) {
	b := NewBuilder(nil)

	over, err := b.Build(5, WithRange(0, 99))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if over.Len() != 5 {
		t.Errorf("Over-long window: expected 5 colors, got %d", over.Len())
	}

	inverted, err := b.Build(5, WithRange(4, 1))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if inverted.Len() != 0 {
		t.Errorf("Inverted window: expected empty palette, got %d colors", inverted.Len())
	}
}

func TestPalette_Hex(t *testing.T) {
	b := NewBuilder(nil)

	p, err := b.Build(1)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if hex := p.Hex(); len(hex) != 1 || hex[0] != "#4477aa" {
		t.Errorf("Expected [#4477aa], got %v", hex)
	}
}

type brokenGenerator struct{}

func (brokenGenerator) Distinct(int) ([]colorful.Color, error) {
	return nil, errors.New("generator unavailable")
}

func TestBuild_GeneratorErrorPropagates(t *testing.T) {
	b := NewBuilder(brokenGenerator{})

	if _, err := b.Build(12); err == nil {
		t.Error("Expected generator failure to surface")
	}
}
