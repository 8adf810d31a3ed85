package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/licblocks/internal/config"
	"github.com/woozymasta/licblocks/internal/crs"
	"github.com/woozymasta/licblocks/internal/logger"
	"github.com/woozymasta/licblocks/internal/parser"
	"github.com/woozymasta/licblocks/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Addr       string `short:"a" long:"addr"    env:"LISTEN_ADDRESS" description:"Address to listen on, overrides server.addr"`
	Port       int    `short:"p" long:"port"    env:"LISTEN_PORT"    description:"Port to listen on, overrides server.port"`
	GeoJSON    string `short:"g" long:"geojson" env:"GEOJSON_OUT"    description:"Block collection to serve, overrides output.geojson"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		log.Warn().Str("path", opts.ConfigFile).Msg("Configuration file not found, using defaults")
		cfg = config.Default()
	}

	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	if opts.Port > 0 {
		cfg.Server.Port = opts.Port
	}
	if opts.GeoJSON != "" {
		cfg.Output.GeoJSON = opts.GeoJSON
	}

	gw, err := crs.NewProjGateway()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize CRS transforms")
	}

	srvCtx := server.NewServerContext(cfg, newParser(gw, cfg))

	listenAddr := fmt.Sprintf("%s:%d", cfg.Server.Addr, cfg.Server.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("blocks_loaded", srvCtx.Index.Len()).
		Float64("threshold", cfg.Parser.Threshold).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, srvCtx.Routes()); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func newParser(gw crs.Gateway, cfg *config.Config) *parser.Parser {
	return parser.New(gw, cfg.Parser.Threshold)
}
