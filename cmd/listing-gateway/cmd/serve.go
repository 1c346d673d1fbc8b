package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebay-listing-gateway/internal/api"
	"github.com/donaldgifford/ebay-listing-gateway/internal/api/handlers"
	"github.com/donaldgifford/ebay-listing-gateway/internal/config"
	"github.com/donaldgifford/ebay-listing-gateway/internal/ebay"
	"github.com/donaldgifford/ebay-listing-gateway/internal/engine"
	"github.com/donaldgifford/ebay-listing-gateway/internal/notify"
	"github.com/donaldgifford/ebay-listing-gateway/pkg/extract"
	"github.com/donaldgifford/ebay-listing-gateway/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Ebay.AppID == "" || cfg.Ebay.ClientSecret == "" {
		log.Warn("eBay credentials are not set; marketplace calls will fail")
	}

	gw, err := buildGateway(cfg, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      gw.echo,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	gw.health.SetReady(true)

	if gw.scheduler != nil {
		gw.scheduler.Start()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down server")
	gw.health.SetReady(false)

	if gw.scheduler != nil {
		<-gw.scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// gateway is the wired application.
type gateway struct {
	echo   *echo.Echo
	health *handlers.HealthHandler
	engine *engine.Engine

	// scheduler is nil when the quota sync is disabled or credentials are
	// missing.
	scheduler *engine.Scheduler
}

// buildGateway wires every component from cfg. It performs no network I/O.
func buildGateway(cfg *config.Config, log *slog.Logger) (*gateway, error) {
	httpClient := &http.Client{Timeout: cfg.Ebay.Timeout}

	tokens := ebay.NewTokenCache(
		ebay.Credentials{AppID: cfg.Ebay.AppID, ClientSecret: cfg.Ebay.ClientSecret},
		ebay.WithTokenURL(cfg.Ebay.TokenURL),
		ebay.WithScope(cfg.Ebay.Scope),
		ebay.WithHTTPClient(httpClient),
		ebay.WithTokenLogger(log),
	)

	clientOpts := []ebay.ClientOption{
		ebay.WithSearchURL(cfg.Ebay.SearchURL),
		ebay.WithItemURL(cfg.Ebay.ItemURL),
		ebay.WithCategoryURL(cfg.Ebay.CategoryURL),
		ebay.WithMarketplace(cfg.Ebay.Marketplace),
		ebay.WithClientHTTPClient(httpClient),
		ebay.WithClientLogger(log),
	}

	var rl *ebay.RateLimiter
	if cfg.Ebay.RateLimit.Enabled() {
		rl = ebay.NewRateLimiter(
			cfg.Ebay.RateLimit.PerSecond,
			cfg.Ebay.RateLimit.Burst,
			cfg.Ebay.RateLimit.DailyLimit,
		)
		clientOpts = append(clientOpts, ebay.WithRateLimiter(rl))
	}

	marketplace := ebay.NewClient(tokens, clientOpts...)

	analytics := ebay.NewAnalyticsClient(
		tokens,
		ebay.WithAnalyticsURL(cfg.Ebay.AnalyticsURL),
		ebay.WithAnalyticsHTTPClient(httpClient),
	)

	extractor := extract.New(
		extract.WithUserAgent(cfg.Extractor.UserAgent),
		extract.WithHTTPClient(&http.Client{Timeout: cfg.Extractor.Timeout}),
		extract.WithAllowedHosts(cfg.Extractor.AllowedHosts...),
		extract.WithLogger(log),
	)

	health := handlers.NewHealthHandler()

	e := api.NewServer(api.Deps{
		Marketplace: marketplace,
		Extractor:   extractor,
		RateLimiter: rl,
		Quotas:      analytics,
		Health:      health,
	}, api.Options{
		Version:           Version,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
		Logger:            log,
	})

	var notifier notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Notifications.DiscordWebhookURL != "" {
		notifier = notify.NewDiscordNotifier(cfg.Notifications.DiscordWebhookURL)
	}

	eng := engine.NewEngine(analytics,
		engine.WithLogger(log),
		engine.WithRateLimiter(rl),
		engine.WithNotifier(notifier),
		engine.WithWarnRatio(cfg.QuotaSync.WarnRatio),
	)

	gw := &gateway{echo: e, health: health, engine: eng}

	if cfg.QuotaSync.Disabled || cfg.Ebay.AppID == "" || cfg.Ebay.ClientSecret == "" {
		return gw, nil
	}

	sched, err := engine.NewScheduler(eng, cfg.QuotaSync.Interval, log)
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	gw.scheduler = sched

	return gw, nil
}
