package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/bastion/engine/colors"
)

func TestDefaults(t *testing.T) {
	s := New()
	tests := []struct {
		key  string
		want float32
	}{
		{"radarRadius", 1500},
		{"radarSize", 35},
		{"hudContainerSoftEdge", 2},
		{"renderingPerspectiveNearClip", 0.5},
		{"islandMaximumHeight", 100},
	}
	for _, tt := range tests {
		if got := s.Float(tt.key); got != tt.want {
			t.Errorf("Float(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
	if got := s.String("fontFile"); got != "" {
		t.Errorf("String(fontFile) = %q, want built-in face", got)
	}
	if got := s.Color("radarSpotColor"); got != colors.Red {
		t.Errorf("Color(radarSpotColor) = %v, want %v", got, colors.Red)
	}
}

func TestLookupFallbacks(t *testing.T) {
	s := New()
	if got := s.Float("nope"); got != 0 {
		t.Errorf("Float(unknown) = %v, want 0", got)
	}
	if got := s.String("nope"); got != "" {
		t.Errorf("String(unknown) = %q, want empty", got)
	}
	// Only the literal "false" is false.
	if !s.Bool("nope") {
		t.Error("Bool(unknown) = false, want true")
	}
	if s.Bool("displayFPSCap") {
		t.Error("Bool(displayFPSCap) = true, want false")
	}
}

func TestSet(t *testing.T) {
	s := New()
	if err := s.Set("radarRadius", 900.5); err != nil {
		t.Fatal(err)
	}
	if got := s.Float("radarRadius"); got != 900.5 {
		t.Errorf("Float = %v, want 900.5", got)
	}
	if err := s.Set("nope", 1); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set(unknown) err = %v, want ErrUnknownKey", err)
	}
	if err := s.Set("preferencesVersion", 2); !errors.Is(err, ErrLocked) {
		t.Errorf("Set(locked) err = %v, want ErrLocked", err)
	}
}

func TestOverlay(t *testing.T) {
	s := New()
	doc := []byte(`
radarRadius: 2000
displayFPSCap: true
fontFile: Other.ttf
radarSpotColor: [0, 1, 0, 1]
hudGrayOutColor: "000000ff"
unknownThing: 3
`)
	err := s.Overlay(doc)
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Overlay err = %v, want ErrUnknownKey", err)
	}
	if got := s.Float("radarRadius"); got != 2000 {
		t.Errorf("radarRadius = %v, want 2000", got)
	}
	if !s.Bool("displayFPSCap") {
		t.Error("displayFPSCap = false, want true")
	}
	if got := s.String("fontFile"); got != "Other.ttf" {
		t.Errorf("fontFile = %q", got)
	}
	if got := s.Color("radarSpotColor"); got != (colors.Color{0, 1, 0, 1}) {
		t.Errorf("radarSpotColor = %v", got)
	}
	if got := s.Color("hudGrayOutColor"); got != colors.Black {
		t.Errorf("hudGrayOutColor = %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	s := New()
	if err := s.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Errorf("LoadFile(missing) = %v, want nil", err)
	}
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("radarRefreshSpeed: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	if got := s.Float("radarRefreshSpeed"); got != 2 {
		t.Errorf("radarRefreshSpeed = %v, want 2", got)
	}
}
