package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/ubxwire/internal/testutil/testlog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ubxdump.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDumpConfigDefaultsAndOverrides(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
source = " /dev/ttyUSB1 "
strict = true
exclude = ["NAV-EOE", " "]
max_payload = 2048
`)
	cfg, err := LoadDumpConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Source != "/dev/ttyUSB1" {
		t.Fatalf("unexpected source: %q", cfg.Source)
	}
	if !cfg.Strict {
		t.Fatalf("expected strict")
	}
	if cfg.MaxPayload != 2048 {
		t.Fatalf("unexpected max payload: %d", cfg.MaxPayload)
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "NAV-EOE" {
		t.Fatalf("unexpected exclude: %+v", cfg.Exclude)
	}
	def := DefaultDumpConfig()
	if cfg.Mode != def.Mode || cfg.CaptureCodec != def.CaptureCodec || cfg.ReadSize != def.ReadSize {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
	if len(cfg.Include) != 1 || cfg.Include[0] != "*" {
		t.Fatalf("unexpected include: %+v", cfg.Include)
	}
}

func TestLoadDumpConfigExplicitZeroOverrides(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `include = []`)
	cfg, err := LoadDumpConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Include) != 0 {
		t.Fatalf("expected include cleared, got %+v", cfg.Include)
	}
	if !cfg.Selected("RXM-RAWX") {
		t.Fatalf("empty include should select everything")
	}
}

func TestLoadDumpConfigRejects(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"unknown key":  `colour = "blue"`,
		"bad mode":     `mode = "push"`,
		"bad codec":    `capture_codec = "zstd"`,
		"max payload":  `max_payload = 70000`,
		"read size":    `read_size = 0`,
		"empty source": `source = ""`,
		"replay stdin": `replay = true`,
		"syntax":       `source = `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadDumpConfig(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
	if _, err := LoadDumpConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSelected(t *testing.T) {
	testlog.Start(t)
	cfg := DefaultDumpConfig()
	cfg.Include = []string{"NAV-*", "ACK-?CK"}
	cfg.Exclude = []string{"NAV-EOE", "*-SAT"}
	cases := map[string]bool{
		"NAV-PVT": true,
		"NAV-EOE": false,
		"NAV-SAT": false,
		"ACK-ACK": true,
		"ACK-NAK": false,
		"MON-VER": false,
	}
	for name, want := range cases {
		if got := cfg.Selected(name); got != want {
			t.Fatalf("Selected(%s) = %v want %v", name, got, want)
		}
	}
}

func TestTemplatesLoad(t *testing.T) {
	testlog.Start(t)
	for _, kind := range []string{"dump", "replay"} {
		path := filepath.Join(t.TempDir(), kind+".toml")
		if err := WriteTemplate(path, kind, false); err != nil {
			t.Fatalf("write %s: %v", kind, err)
		}
		if _, err := LoadDumpConfig(path); err != nil {
			t.Fatalf("load %s template: %v", kind, err)
		}
		if err := WriteTemplate(path, kind, false); err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Fatalf("expected overwrite refusal, got %v", err)
		}
		if err := WriteTemplate(path, kind, true); err != nil {
			t.Fatalf("forced overwrite: %v", err)
		}
	}
	if _, err := Template("ghost"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
