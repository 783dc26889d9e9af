package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/config"
	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/server"
)

var (
	servePort int
	serveNoDB bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the scoring, optimization, parsing and history endpoints.
Token authentication is enabled when JWT_SECRET is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: config, PORT or 8080)")
	serveCmd.Flags().BoolVar(&serveNoDB, "no-history", false, "Disable the history endpoints")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, !serveNoDB)
	if err != nil {
		return err
	}
	defer a.Close()

	jwtCfg, err := config.NewJWTConfig()
	switch {
	case errors.Is(err, config.ErrJWTDisabled):
		a.logger.Warn("JWT_SECRET not set; API authentication is disabled")
		jwtCfg = nil
	case err != nil:
		return err
	}

	port := a.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	cfg := server.Config{
		Port:        port,
		CORSOrigins: a.cfg.CORSOrigins,
		Analyzer:    a.analyzer(),
		JWT:         jwtCfg,
		Health:      a.health,
		Logger:      logger.Component(a.logger, "server"),
	}
	if a.store != nil {
		cfg.Store = a.store
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	a.logger.Info("serving", zap.Int("port", port), zap.Bool("history", a.store != nil))
	return srv.Start(ctx)
}
