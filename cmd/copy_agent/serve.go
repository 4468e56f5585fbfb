package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/cardcopy/internal/config"
	"github.com/jonathan/cardcopy/internal/server"
	"github.com/jonathan/cardcopy/internal/server/ratelimit"
)

func newServeCmd(flags *globalFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server exposing GET /health and POST /api/generate.

The server runs until it receives SIGINT or SIGTERM, then drains in-flight
requests before exiting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config: 5001)")

	return cmd
}

func runServe(ctx context.Context, flags *globalFlags, port int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	generator, closeClient, err := newGenerator(ctx, cfg, false, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	srvCfg, err := serverConfig(cfg, generator)
	if err != nil {
		return err
	}
	srvCfg.Logger = logger

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info().
		Int("port", cfg.Server.Port).
		Str("provider", cfg.LLM.Provider).
		Str("model", generator.Model()).
		Bool("auth", cfg.Auth.Enabled()).
		Bool("rate_limit", cfg.RateLimit.Enabled).
		Msg("starting card copy service")

	return srv.Start(ctx)
}

// serverConfig maps application configuration onto the HTTP server.
func serverConfig(cfg *config.Config, generator server.CopyGenerator) (server.Config, error) {
	srvCfg := server.Config{
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		Generator:      generator,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}

	if cfg.RateLimit.Enabled {
		srvCfg.RateLimit = ratelimit.NewConfig(true, cfg.RateLimit.GenerateLimit, cfg.RateLimit.Window, cfg.RateLimit.Burst)
	}

	if cfg.Auth.Enabled() {
		jwtConfig, err := cfg.Auth.JWTConfig()
		if err != nil {
			return server.Config{}, fmt.Errorf("invalid auth config: %w", err)
		}
		srvCfg.JWT = jwtConfig
	}

	return srvCfg, nil
}
