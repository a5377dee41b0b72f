// ABOUTME: Development backend subcommand
// ABOUTME: Serves the storefront REST API with graceful shutdown, or approves wholesale accounts
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/flagshop/backend"
	"github.com/harperreed/flagshop/config"
)

// ServeCommand runs the development backend until interrupted.
func ServeCommand(cfg *config.Config, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	port := fs.String("port", cfg.Port, "Port to listen on")
	dbPath := fs.String("db", cfg.BackendDB, "Backend database path")
	uploads := fs.String("uploads", cfg.UploadDir, "Directory for uploaded logos")
	approve := fs.String("approve", "", "Approve the wholesale account with this email and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := backend.OpenStore(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open backend database: %w", err)
	}
	defer store.Close()

	if *approve != "" {
		if err := store.ApproveWholesale(context.Background(), *approve); err != nil {
			return err
		}
		fmt.Printf("✓ Wholesale pricing approved for %s\n", *approve)
		return nil
	}

	if err := os.MkdirAll(*uploads, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	if cfg.JWTSecret == config.DefaultJWTSecret && cfg.IsProduction() {
		logger.Warn("using the default JWT secret in production; set FLAGSHOP_JWT_SECRET")
	}

	server := backend.NewServer(store, backend.NewTokens(cfg.JWTSecret), *uploads, logger)
	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      server.Router(cfg.IsProduction()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	logger.Info("backend started", zap.String("address", srv.Addr), zap.String("db", *dbPath), zap.String("uploads", *uploads))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logger.Info("shutting down backend")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("backend exited")
	return nil
}
