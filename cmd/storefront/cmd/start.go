package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/indian-sparrow/storefront/internal/adapter/inbound/web"
	"github.com/indian-sparrow/storefront/internal/adapter/outbound/commerce"
	"github.com/indian-sparrow/storefront/internal/adapter/outbound/newsletter"
	"github.com/indian-sparrow/storefront/internal/adapter/outbound/sqlite"
	"github.com/indian-sparrow/storefront/internal/adapter/outbound/state"
	"github.com/indian-sparrow/storefront/internal/adapter/outbound/storage"
	"github.com/indian-sparrow/storefront/internal/config"
	"github.com/indian-sparrow/storefront/internal/domain/account"
	"github.com/indian-sparrow/storefront/internal/domain/cart"
	"github.com/indian-sparrow/storefront/internal/domain/checkout"
	"github.com/indian-sparrow/storefront/internal/port/outbound"
	"github.com/indian-sparrow/storefront/internal/service"
	"github.com/indian-sparrow/storefront/internal/telemetry"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the storefront server",
	Long: `Start the storefront HTTP server.

Examples:
  # Start with config file settings
  storefront start

  # Start with a specific config file
  storefront --config /path/to/config.yaml start

  # Start in development mode
  storefront start --dev`,
	RunE: runStart,
}

var devMode bool

func init() {
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable development mode (verbose logging)")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if devMode {
		cfg.DevMode = true
		cfg.Server.LogLevel = "debug"
	}

	// Signal context for graceful shutdown. stop() restores default signal
	// handling so a second Ctrl+C does a hard kill.
	ctx, stop := signal.NotifyContext(context.Background(), gracefulSignals()...)
	go func() {
		<-ctx.Done()
		stop()
	}()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	if configFile := config.ConfigFileUsed(); configFile != "" {
		logger.Info("loaded config", "file", configFile)
	}

	// Write PID file so "storefront stop" can find us.
	pidPath := pidFilePath()
	if err := writePIDFile(pidPath); err != nil {
		logger.Warn("failed to write PID file", "path", pidPath, "error", err)
	} else {
		defer os.Remove(pidPath)
	}

	if err := run(ctx, cfg, logger); err != nil {
		return err
	}

	logger.Info("storefront stopped")
	return nil
}

// run wires the stores, services, and HTTP surface together, then serves
// until the context is canceled.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing.Enabled, Version)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	// Persistence backend for cart and session state.
	kv, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}()
	logger.Info("storage ready", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	cartService := cart.NewService(ctx, storage.NewCartStore(kv, logger), logger)
	accountService := account.NewService(ctx, storage.NewUserStore(kv, logger), logger)

	if cfg.Commerce.ClientID == "" {
		logger.Warn("commerce.client_id is not set; catalog and checkout calls will fail")
	}
	commerceClient := commerce.NewHTTPClient(cfg.Commerce.BaseURL, cfg.Commerce.ClientID,
		commerce.WithTimeout(cfg.CommerceTimeout()))

	catalogService := service.NewCatalogService(commerceClient, logger)
	checkoutService := service.NewCheckoutService(cartService, commerceClient, checkout.Callbacks{
		PostFlowURL: cfg.Checkout.PostFlowURL,
		ThankYouURL: cfg.Checkout.ThankYouURL,
	}, logger)

	var newsletterClient outbound.NewsletterClient
	if cfg.Newsletter.URL != "" {
		newsletterClient = newsletter.NewClient(cfg.Newsletter.URL,
			newsletter.WithTimeout(cfg.NewsletterTimeout()))
	} else {
		logger.Info("newsletter.url is not set; the signup form is disabled")
	}

	registry := prometheus.NewRegistry()

	rateLimiter := web.NewRateLimiter(
		rate.Limit(float64(cfg.Newsletter.RatePerMinute)/60.0),
		cfg.Newsletter.Burst,
	)
	defer rateLimiter.Stop()

	healthChecker := web.NewHealthChecker(kv, rateLimiter, Version)

	handler, err := web.NewHandler(
		web.WithCartService(cartService),
		web.WithAccountService(accountService),
		web.WithCatalogService(catalogService),
		web.WithCheckoutService(checkoutService),
		web.WithNewsletterClient(newsletterClient),
		web.WithRateLimiter(rateLimiter),
		web.WithMetricsRegistry(registry),
		web.WithHealthChecker(healthChecker),
		web.WithLogger(logger),
		web.WithVersion(Version),
	)
	if err != nil {
		return fmt.Errorf("failed to create handler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening",
			"version", Version,
			"addr", cfg.Server.HTTPAddr,
			"base_url", cfg.Server.BaseURL,
			"dev_mode", cfg.DevMode,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// openStorage creates the key-value store named by the config.
func openStorage(cfg *config.Config, logger *slog.Logger) (outbound.KeyValueStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	switch cfg.Storage.Backend {
	case "sqlite":
		store, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil
	default:
		return state.NewFileStore(cfg.Storage.Path, logger), nil
	}
}

// parseLogLevel converts a string log level to slog.Level.
// Returns slog.LevelInfo for unrecognized values.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// pidFilePath returns the standard location for the server PID file.
func pidFilePath() string {
	if dir, err := config.ConfigDir(); err == nil {
		return filepath.Join(dir, "server.pid")
	}
	return filepath.Join(os.TempDir(), "storefront-server.pid")
}

// writePIDFile writes the current process PID to the given path, creating
// parent directories as needed.
func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
}
