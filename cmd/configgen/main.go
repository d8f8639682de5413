package main

import (
	"flag"

	"github.com/danmuck/modelwire/internal/config"
	"github.com/danmuck/modelwire/internal/logging"
	"github.com/rs/zerolog/log"
)

const defaultPath = "cmd/modelctl/config.toml"

func main() {
	logging.ConfigureRuntime()

	kind := flag.String("kind", "json", "config kind: json|tlv")
	output := flag.String("output", defaultPath, "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", defaultPath, "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		cfg, err := config.LoadCodecConfig(*input)
		if err != nil {
			log.Fatal().Err(err).Str("path", *input).Msg("invalid codec config")
		}
		log.Info().
			Str("path", *input).
			Str("content_type", cfg.ContentType).
			Str("output_content_type", cfg.OutputContentType).
			Msg("validated codec config")
		return
	}

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		log.Fatal().Err(err).Msg("write config template")
	}
	log.Info().Str("kind", *kind).Str("path", *output).Msg("wrote codec config template")
}
