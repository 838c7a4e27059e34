package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recera/panzoom/pkg/viewport"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
	if cfg.ViewportOptions() != viewport.DefaultOptions() {
		t.Errorf("ViewportOptions = %+v", cfg.ViewportOptions())
	}
}

func TestParse_PartialFile(t *testing.T) {
	cfg, err := Parse([]byte(`
viewport:
  initialScale: 1
  zoomStep: 0.5
server:
  port: 9000
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := viewport.DefaultOptions()
	want.InitialScale = 1
	want.ZoomStep = 0.5
	if got := cfg.ViewportOptions(); got != want {
		t.Errorf("ViewportOptions = %+v, want %+v", got, want)
	}
	if cfg.Addr() != "localhost:9000" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "viewport: [1, 2"},
		{"wrong type", "viewport:\n  minScale: lots\n"},
		{"port out of range", "server:\n  port: 70000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Viewport.MaxScale = 4
	cfg.Server.Host = "0.0.0.0"

	if err := cfg.Save(filepath.Join(dir, FileName)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_Unreadable(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be cannot be read as a file.
	if err := os.Mkdir(filepath.Join(dir, FileName), 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Error("expected an error reading a directory")
	}
}
