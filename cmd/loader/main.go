package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/woozymasta/licblocks/internal/config"
	"github.com/woozymasta/licblocks/internal/logger"
	"github.com/woozymasta/licblocks/internal/rfgf"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string        `short:"c" long:"config"   env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Request    string        `short:"r" long:"request"  env:"RFGF_REQUEST"   description:"Saved registry query (JSON), overrides source.request"`
	Result     string        `short:"o" long:"out"      env:"RFGF_RESULT"    description:"Export output path, overrides source.result"`
	URL        string        `short:"u" long:"url"      env:"RFGF_URL"       description:"Registry query endpoint, overrides source.url"`
	Timeout    time.Duration `short:"t" long:"timeout"  env:"RFGF_TIMEOUT"   description:"Request timeout, overrides source.timeout"`
	Insecure   bool          `short:"k" long:"insecure" env:"RFGF_INSECURE"  description:"Skip TLS certificate verification"`
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

	if opts.Request != "" {
		cfg.Source.Request = opts.Request
	}
	if opts.Result != "" {
		cfg.Source.Result = opts.Result
	}
	if opts.URL != "" {
		cfg.Source.URL = opts.URL
	}
	if opts.Timeout > 0 {
		cfg.Source.Timeout = opts.Timeout
	}
	if opts.Insecure {
		cfg.Source.Insecure = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().
		Str("url", cfg.Source.URL).
		Str("request", cfg.Source.Request).
		Str("result", cfg.Source.Result).
		Bool("insecure", cfg.Source.Insecure).
		Msg("Starting loader")

	client := rfgf.NewClient(cfg.Source.URL, cfg.Source.Timeout, cfg.Source.Insecure)
	if err := client.Download(ctx, cfg.Source.Request, cfg.Source.Result); err != nil {
		log.Fatal().Err(err).Msg("Failed to download registry export")
	}

	log.Info().Msg("Loader finished successfully")
}
