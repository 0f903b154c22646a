package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/ubxwire/internal/capture"
	"github.com/danmuck/ubxwire/internal/protocol/frame"
	"github.com/danmuck/ubxwire/internal/protocol/schema"
	"github.com/tidwall/match"
)

// DumpConfig drives ubxdump.
type DumpConfig struct {
	// Source is a file, serial device or capture path; "-" reads stdin.
	Source string
	// Replay treats Source as a capture file.
	Replay       bool
	Capture      string
	CaptureCodec string
	Mode         string
	Strict       bool
	Include      []string
	Exclude      []string
	SurfaceNMEA  bool
	SurfaceRTCM  bool
	MetricsAddr  string
	MaxPayload   int
	ReadSize     int
	JSON         bool
}

type fileConfig struct {
	Source       string   `toml:"source"`
	Replay       bool     `toml:"replay"`
	Capture      string   `toml:"capture"`
	CaptureCodec string   `toml:"capture_codec"`
	Mode         string   `toml:"mode"`
	Strict       bool     `toml:"strict"`
	Include      []string `toml:"include"`
	Exclude      []string `toml:"exclude"`
	SurfaceNMEA  bool     `toml:"surface_nmea"`
	SurfaceRTCM  bool     `toml:"surface_rtcm"`
	MetricsAddr  string   `toml:"metrics_addr"`
	MaxPayload   int      `toml:"max_payload"`
	ReadSize     int      `toml:"read_size"`
	JSON         bool     `toml:"json"`
}

func DefaultDumpConfig() DumpConfig {
	return DumpConfig{
		Source:       "-",
		CaptureCodec: capture.LZ4.String(),
		Mode:         schema.Get.String(),
		Include:      []string{"*"},
		MaxPayload:   frame.MaxPayload,
		ReadSize:     4096,
	}
}

// LoadDumpConfig applies the keys present in the file at path on top of
// DefaultDumpConfig.
func LoadDumpConfig(path string) (DumpConfig, error) {
	cfg := DefaultDumpConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return DumpConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return DumpConfig{}, fmt.Errorf("config load failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("source") {
		cfg.Source = strings.TrimSpace(raw.Source)
	}
	if meta.IsDefined("replay") {
		cfg.Replay = raw.Replay
	}
	if meta.IsDefined("capture") {
		cfg.Capture = strings.TrimSpace(raw.Capture)
	}
	if meta.IsDefined("capture_codec") {
		cfg.CaptureCodec = strings.ToLower(strings.TrimSpace(raw.CaptureCodec))
	}
	if meta.IsDefined("mode") {
		cfg.Mode = strings.ToLower(strings.TrimSpace(raw.Mode))
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("include") {
		cfg.Include = normalizePatterns(raw.Include)
	}
	if meta.IsDefined("exclude") {
		cfg.Exclude = normalizePatterns(raw.Exclude)
	}
	if meta.IsDefined("surface_nmea") {
		cfg.SurfaceNMEA = raw.SurfaceNMEA
	}
	if meta.IsDefined("surface_rtcm") {
		cfg.SurfaceRTCM = raw.SurfaceRTCM
	}
	if meta.IsDefined("metrics_addr") {
		cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}
	if meta.IsDefined("max_payload") {
		cfg.MaxPayload = raw.MaxPayload
	}
	if meta.IsDefined("read_size") {
		cfg.ReadSize = raw.ReadSize
	}
	if meta.IsDefined("json") {
		cfg.JSON = raw.JSON
	}

	if err := ValidateDumpConfig(cfg); err != nil {
		return DumpConfig{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func ValidateDumpConfig(cfg DumpConfig) error {
	if strings.TrimSpace(cfg.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if cfg.Replay && cfg.Source == "-" {
		return fmt.Errorf("replay needs a capture file, not stdin")
	}
	if _, err := capture.ParseCodec(cfg.CaptureCodec); err != nil {
		return err
	}
	if _, err := schema.ParseMode(cfg.Mode); err != nil {
		return err
	}
	if cfg.MaxPayload <= 0 || cfg.MaxPayload > frame.MaxPayload {
		return fmt.Errorf("max_payload must be in 1..%d, got %d", frame.MaxPayload, cfg.MaxPayload)
	}
	if cfg.ReadSize <= 0 {
		return fmt.Errorf("read_size must be positive, got %d", cfg.ReadSize)
	}
	return nil
}

// Selected reports whether a message name passes the include and exclude
// glob patterns. An empty include list selects everything.
func (c DumpConfig) Selected(name string) bool {
	if len(c.Include) > 0 && !anyMatch(name, c.Include) {
		return false
	}
	return !anyMatch(name, c.Exclude)
}

func anyMatch(name string, patterns []string) bool {
	for _, p := range patterns {
		if match.Match(name, p) {
			return true
		}
	}
	return false
}

func normalizePatterns(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		v := strings.TrimSpace(p)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
