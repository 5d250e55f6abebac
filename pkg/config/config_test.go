package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stageside/bracketeer/pkg/layout"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.RoundWidth != layout.DefaultRoundWidth {
		t.Errorf("RoundWidth = %v, want default %v", cfg.Layout.RoundWidth, layout.DefaultRoundWidth)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[layout]
round_width = 260.0

[cache]
ttl = "1h"
redis_addr = "localhost:6379"

[server]
addr = ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.RoundWidth != 260 {
		t.Errorf("RoundWidth = %v, want 260", cfg.Layout.RoundWidth)
	}
	// Untouched keys keep their defaults.
	if cfg.Layout.RoundGap != layout.DefaultRoundGap {
		t.Errorf("RoundGap = %v, want default %v", cfg.Layout.RoundGap, layout.DefaultRoundGap)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.Cache.RedisAddr)
	}
	if got := cfg.CacheTTL().Hours(); got != 1 {
		t.Errorf("CacheTTL = %vh, want 1h", got)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad ttl", "[cache]\nttl = \"soon\"\n"},
		{"negative geometry", "[layout]\nround_width = -10.0\n"},
		{"min scale out of range", "[layout]\nmin_scale = 2.0\n"},
		{"bad toml", "not toml at all ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDimensionsAppliesOverrides(t *testing.T) {
	cfg := Default()
	cfg.Layout.MatchHeight = 100

	dims := cfg.Dimensions(layout.Size{Width: 800, Height: 600})
	if dims.MatchHeight != 100 {
		t.Errorf("MatchHeight = %v, want 100", dims.MatchHeight)
	}
	if dims.ContainerWidth != 800 {
		t.Errorf("ContainerWidth = %v, want 800", dims.ContainerWidth)
	}
}
