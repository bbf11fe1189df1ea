package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/innerventory/server/internal/auth"
	"github.com/innerventory/server/internal/server"
)

var serverPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (and .env when present)
- Apply Postgres migrations when AUTO_MIGRATE is true
- Create the ADMIN_EMAIL account if it does not exist yet
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  server serve
  server serve --port 8080 --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverPort, "port", "", "server port (default: 5000)")
}

func runServer() error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if serverPort != "" {
		cfg.Port = serverPort
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	repo, err := openRepository(ctx, cfg.DatabaseURL, cfg.AutoMigrate)
	cancel()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer repo.Close()

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		admin, created, err := auth.EnsureAdmin(ctx, repo.Users(), cfg.Admin.Email, cfg.Admin.Password)
		cancel()
		switch {
		case err != nil:
			logger.Error().Err(err).Msg("admin bootstrap failed")
		case created:
			logger.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("admin user created")
		}
	}

	srv := server.New(cfg, repo, logger)
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Bool("strict_stock", cfg.StrictStock).Msg("server listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}
