package render

import (
	"path/filepath"
	"testing"
)

func TestNewLegendRenderer_FontRequired(t *testing.T) {
	if _, err := NewLegendRenderer(Config{}); err == nil {
		t.Error("Expected error when no font is configured")
	}

	missing := filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := NewLegendRenderer(Config{FontPath: missing}); err == nil {
		t.Error("Expected error for missing font file")
	}
}
