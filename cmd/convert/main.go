package main

import (
	"context"
	"os"

	"github.com/woozymasta/licblocks/internal/config"
	"github.com/woozymasta/licblocks/internal/crs"
	"github.com/woozymasta/licblocks/internal/logger"
	"github.com/woozymasta/licblocks/internal/parser"
	"github.com/woozymasta/licblocks/internal/processor"
	"github.com/woozymasta/licblocks/internal/rfgf"
	"github.com/woozymasta/licblocks/internal/store"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string  `short:"c" long:"config"      env:"CONFIG_FILE"  description:"Path to configuration file" default:"config.yaml"`
	Input       string  `short:"i" long:"in"          env:"RFGF_RESULT"  description:"Registry export, overrides source.result"`
	Output      string  `short:"o" long:"out"         env:"GEOJSON_OUT"  description:"GeoJSON output, overrides output.geojson"`
	PostgresDSN string  `short:"d" long:"postgres"    env:"POSTGRES_DSN" description:"PostGIS DSN, overrides output.postgres_dsn"`
	Threshold   float64 `short:"t" long:"threshold"   env:"THRESHOLD"    description:"Minimum coordinate magnitude, overrides parser.threshold"`
	Concurrency int     `short:"p" long:"concurrency" env:"CONCURRENCY"  description:"Parser workers, overrides parser.concurrency"`
	Force       bool    `short:"f" long:"force"       description:"Force overwrite of existing files"`
}

func main() {
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		log.Warn().Str("path", opts.ConfigFile).Msg("Configuration file not found, using defaults")
		cfg = config.Default()
	}
	applyOverrides(cfg, opts)

	tbl, err := rfgf.Load(cfg.Source.Result)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Source.Result).Msg("Failed to read registry export")
	}

	gw, err := crs.NewProjGateway()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize CRS transforms")
	}

	log.Info().
		Str("input", cfg.Source.Result).
		Int("rows", tbl.Len()).
		Float64("threshold", cfg.Parser.Threshold).
		Int("concurrency", cfg.Parser.Concurrency).
		Msg("Starting conversion")

	blocks, summary := processor.Convert(tbl, newParser(gw, cfg), cfg.Parser.Concurrency)

	if err := processor.SaveGeoJSON(cfg.Output.GeoJSON, blocks, opts.Force); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Output.GeoJSON).Msg("Failed to write GeoJSON")
	}

	if cfg.Output.PostgresDSN != "" {
		if err := saveToPostgres(cfg, blocks); err != nil {
			log.Fatal().Err(err).Str("table", cfg.Output.Table).Msg("Failed to write PostGIS table")
		}
	}

	log.Info().
		Int("blocks", summary.Blocks).
		Int("empty", summary.Empty).
		Msg("Conversion finished successfully")
}

func newParser(gw crs.Gateway, cfg *config.Config) *parser.Parser {
	return parser.New(gw, cfg.Parser.Threshold)
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.Input != "" {
		cfg.Source.Result = opts.Input
	}
	if opts.Output != "" {
		cfg.Output.GeoJSON = opts.Output
	}
	if opts.PostgresDSN != "" {
		cfg.Output.PostgresDSN = opts.PostgresDSN
	}
	if opts.Threshold > 0 {
		cfg.Parser.Threshold = opts.Threshold
	}
	if opts.Concurrency > 0 {
		cfg.Parser.Concurrency = opts.Concurrency
	}
}

func saveToPostgres(cfg *config.Config, blocks []rfgf.Block) error {
	st, err := store.Open(cfg.Output.PostgresDSN, cfg.Output.Table)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	return st.SaveBlocks(ctx, blocks)
}
