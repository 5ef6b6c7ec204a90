package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"geothermal-load/internal/api"
	"geothermal-load/internal/data"
	"geothermal-load/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	port     string
	caseDir  string
	env      string
	logLevel string
	cacheTTL time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "geoload-api",
	Short: "Serve geothermal load summaries over HTTP",
	Long: `geoload-api evaluates hourly building loads for borefield sizing: monthly peaks and
baseloads, yearly imbalance and load-duration curves, for posted loads, uploaded tabular
profiles and load cases stored as YAML in the case directory.`,
	SilenceUsage: true,
	RunE:         serve,
}

func init() {
	rootCmd.Flags().StringVar(&port, "port", envOr("API_PORT", "8080"), "listen port")
	rootCmd.Flags().StringVar(&caseDir, "case-dir", envOr("CASE_DIR", "./examples/cases"), "directory of YAML load cases")
	rootCmd.Flags().StringVar(&env, "env", envOr("API_ENV", "development"), "environment (production enables JSON logs and gin release mode)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", os.Getenv("LOG_LEVEL"), "log level (debug, info, warn, error)")
	rootCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", envDuration("PROFILE_CACHE_TTL", 15*time.Minute), "lifetime of parsed uploads, 0 disables the cache")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(env, logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	cache := data.NewProfileCache(cacheTTL)
	defer cache.Close()

	router := api.NewRouter(api.Options{
		CaseDir:        caseDir,
		Cache:          cache,
		Logger:         logger,
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server", zap.String("addr", srv.Addr), zap.String("env", env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: %v\n", key, v, err)
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
