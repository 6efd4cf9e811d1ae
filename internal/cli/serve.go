package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okuznetsov/battleship-go/internal/config"
	"github.com/okuznetsov/battleship-go/internal/factory"
	"github.com/okuznetsov/battleship-go/internal/ws"
)

func newServeCmd() *cobra.Command {
	var (
		addr        string
		storageType string
		redisURL    string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// Flags override env
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("storage") {
				cfg.StorageType = storageType
			}
			if cmd.Flags().Changed("redis-url") {
				cfg.RedisURL = redisURL
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			return runServer(cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3000", "Listen address (env: ADDR)")
	cmd.Flags().StringVar(&storageType, "storage", config.StorageMemory, "Storage backend: memory, redis (env: STORAGE_TYPE)")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis connection URL (env: REDIS_URL)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error (env: LOG_LEVEL)")

	return cmd
}

func runServer(cfg config.Config) error {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	app, err := factory.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}

	serverConfig := ws.DefaultServerConfig()
	serverConfig.Addr = cfg.Addr
	server := ws.NewServer(app.Hub, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// The hub event loop owns all game state mutation
	go app.Hub.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
	)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return err
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
