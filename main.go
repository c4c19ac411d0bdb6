package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sjsage522/propertymonitor/config"
	"sjsage522/propertymonitor/internal"
	"sjsage522/propertymonitor/internal/crawler"
	"sjsage522/propertymonitor/logger"
	"sjsage522/propertymonitor/services/cache"
	"sjsage522/propertymonitor/services/monitor"
	"sjsage522/propertymonitor/services/notifier"
	"sjsage522/propertymonitor/services/status"
	"sjsage522/propertymonitor/services/store"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Dur("crawl_interval", cfg.CrawlInterval).
		Int("price_min", cfg.Criteria.PriceRange.Min).
		Int("price_max", cfg.Criteria.PriceRange.Max).
		Strs("locations", cfg.Criteria.Locations).
		Strs("property_types", cfg.Criteria.PropertyTypes).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize services; a store that cannot be opened aborts startup
	services, err := initializeServices(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer services.Cleanup()

	fetcher, extractor := crawler.CreateCrawler(cfg, services.Cache)

	m := monitor.NewMonitor(services.Dependencies, fetcher, extractor, monitor.Options{
		SourceURL: cfg.SourceURL,
		Criteria:  cfg.Criteria,
		Interval:  cfg.CrawlInterval,
	})

	// Start monitor in a goroutine
	monitorDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting property monitor")
		monitorDone <- m.Start(ctx)
	}()

	// Start status server in a goroutine
	server := status.NewServer(cfg.Port)
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.ListenAndServe()
	}()

	// Wait for shutdown signal, monitor exit or server error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
	case err := <-monitorDone:
		if err != nil {
			log.Error().Err(err).Msg("Monitor exited with error")
		} else {
			log.Info().Msg("Monitor exited normally")
		}
	case err := <-serverDone:
		if err != nil {
			log.Error().Err(err).Msg("Status server exited with error")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Status server shutdown failed")
	}
}

// Services holds all the initialized services
type Services struct {
	internal.Dependencies
	closers []func() error
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Warn("Failed to close service: %v", err)
		}
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	services := &Services{}

	// Initialize cache service
	if cfg.MemcacheAddr != "" {
		services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr, "propertymonitor", time.Second)
		logger.Info("Using Memcache at %s for rate limit cooldowns", cfg.MemcacheAddr)
	}

	// Initialize dedup store
	st, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	services.Store = st
	services.closers = append(services.closers, st.Close)

	// Initialize notifiers
	var notifiers []notifier.Notifier
	for _, name := range cfg.Notifiers {
		switch name {
		case config.NotifierLog:
			notifiers = append(notifiers, notifier.NewLogNotifier(cfg.NotifyEmail, nil))
		case config.NotifierRedis:
			n := notifier.NewRedisStreamNotifier(cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMaxLength)
			services.closers = append(services.closers, n.Close)
			notifiers = append(notifiers, n)
			logger.Info("Publishing new listings to Redis stream %s at %s", cfg.RedisStream, cfg.RedisAddr)
		case config.NotifierWebhook:
			notifiers = append(notifiers, notifier.NewWebhookNotifier(cfg.WebhookURL, cfg.NotifyEmail, cfg.FetchTimeout))
		case config.NotifierEmail:
			notifiers = append(notifiers, notifier.NewEmailNotifier(
				cfg.SMTPAddr, cfg.SMTPFrom, cfg.NotifyEmail, cfg.SMTPUsername, cfg.SMTPPassword))
		}
	}
	services.Notifier = notifier.NewMultiNotifier(notifiers...)

	logger.Info("Notifying %s via %s", cfg.NotifyEmail, services.Notifier.Name())

	return services, nil
}

func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		st, err := store.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to Redis store at %s (DB: %d)", cfg.RedisAddr, cfg.RedisDB)
		return st, nil
	case config.StorePostgres:
		return store.NewPostgresStore(ctx, cfg.PostgresDSN, 2)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
