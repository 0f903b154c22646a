package main

import (
	"flag"

	"github.com/danmuck/ubxwire/internal/config"
	"github.com/danmuck/ubxwire/internal/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()

	kind := flag.String("kind", "dump", "config kind: dump|replay")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to the per-kind path)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if _, err := config.Template(*kind); err != nil {
		log.Fatal().Err(err).Msg("configgen")
	}

	if *validate {
		path := *input
		if path == "" {
			path = defaultPath(*kind)
		}
		cfg, err := config.LoadDumpConfig(path)
		if err != nil {
			log.Fatal().Err(err).Msg("config invalid")
		}
		log.Info().Str("kind", *kind).Str("path", path).Str("source", cfg.Source).Bool("replay", cfg.Replay).Msg("validated config")
		return
	}

	target := *output
	if target == "" {
		target = defaultPath(*kind)
	}
	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal().Err(err).Msg("configgen")
	}
	log.Info().Str("kind", *kind).Str("path", target).Msg("wrote config template")
}

func defaultPath(kind string) string {
	if kind == "replay" {
		return "cmd/ubxdump/replay.toml"
	}
	return "cmd/ubxdump/config.toml"
}
