package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/scramble/internal/config"
)

// setupLogging configures the global zerolog logger. The level comes from
// --log-level, then the config file, then SCRAMBLE_LOG_LEVEL, then fallback.
func setupLogging(cmd *cobra.Command, fileCfg config.FileConfig, fallback string) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	level := fallback
	if v := strings.TrimSpace(os.Getenv("SCRAMBLE_LOG_LEVEL")); v != "" {
		level = v
	}
	if fileCfg.Log.Level != nil {
		level = *fileCfg.Log.Level
	}
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level; using " + fallback)
		lvl, _ = zerolog.ParseLevel(fallback)
	}
	zerolog.SetGlobalLevel(lvl)
}
