package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-go/popup/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := config.Default()

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 3000 {
		t.Errorf("server defaults = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Popup.Placement != "top left" {
		t.Errorf("placement default = %q", cfg.Popup.Placement)
	}
	if cfg.Popup.Transition != "scale" {
		t.Errorf("transition default = %q", cfg.Popup.Transition)
	}
	if cfg.Popup.TransitionDuration() != 200*time.Millisecond {
		t.Errorf("duration default = %v", cfg.Popup.TransitionDuration())
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("metrics path default = %q", cfg.Metrics.Path)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"name": "demo",
		"server": {"host": "0.0.0.0", "port": 8080},
		"popup": {"placement": "bottom center", "transition": "fade", "transitionDurationMs": 300},
		"metrics": {"enabled": true}
	}`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr = %q", cfg.Addr())
	}
	if cfg.Popup.Placement != "bottom center" || cfg.Popup.Transition != "fade" {
		t.Errorf("popup config = %+v", cfg.Popup)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled")
	}
	if cfg.Path() != path {
		t.Errorf("Path = %q, want %q", cfg.Path(), path)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)

	if _, err := config.Load(path); err == nil {
		t.Fatal("Load should fail on malformed JSON")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load should fail on a missing file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", `{"server": {"port": 99999}}`},
		{"bad placement", `{"popup": {"placement": "sideways up"}}`},
		{"bad transition", `{"popup": {"transition": "wobble"}}`},
		{"negative duration", `{"popup": {"transitionDurationMs": -5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := config.Load(path); err == nil {
				t.Errorf("Load accepted %s", tt.name)
			}
		})
	}
}
