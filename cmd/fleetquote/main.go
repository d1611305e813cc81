package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"fleetquote/internal/app/dto"
	quotesapp "fleetquote/internal/app/handlers/quotes"
	"fleetquote/internal/app/policies"
	"fleetquote/internal/app/queries"
	domainquote "fleetquote/internal/domain/quote"
	"fleetquote/internal/infra/broker/kafka"
	"fleetquote/internal/infra/config"
	mongodb "fleetquote/internal/infra/db/mongo"
	ginserver "fleetquote/internal/infra/http/gin"
	"fleetquote/internal/infra/obs"
	"fleetquote/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "catalog_mode", cfg.CatalogMode, "tax_rate_bps", cfg.TaxRateBps)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var catalogs policies.CatalogPort
	ready := func() error { return nil }

	switch cfg.CatalogMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, cleanup, fmt.Errorf("mongo connect: %w", err)
		}
		cleanups = append(cleanups, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(disconnectCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		})
		catalogs = mongodb.NewCatalogRepository(client.DB)
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
	default:
		repo := memory.NewCatalogRepository()
		if err := loadCatalogFixtures(ctx, repo, cfg, logger); err != nil {
			logger.Warn("catalog fixtures load failed", "error", err)
		}
		catalogs = repo
	}

	var publisher policies.QuotePublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, cleanup, fmt.Errorf("kafka producer: %w", err)
		}
		cleanups = append(cleanups, func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close failed", "error", err)
			}
		})
		publisher = kafka.QuotePublisher{Producer: producer, TopicPrefix: cfg.KafkaTopicPrefix}
		logger.Info("quote events enabled", "brokers", len(cfg.KafkaBrokers))
	}

	calc := domainquote.NewCalculator(cfg.TaxRateBps)
	events := quotesapp.Publisher{Sink: publisher, Logger: logger}

	bus := queries.NewInMemoryBus()
	queries.RegisterHandler(bus, quotesapp.ComputeQuoteQuery{}.Key(), &quotesapp.ComputeQuoteHandler{
		Calc:            calc,
		Publisher:       events,
		DefaultCurrency: cfg.DefaultCurrency,
	})
	queries.RegisterHandler(bus, quotesapp.VehicleQuoteQuery{}.Key(), &quotesapp.VehicleQuoteHandler{
		Catalogs:  catalogs,
		Calc:      calc,
		Publisher: events,
	})
	queries.RegisterHandler(bus, quotesapp.GetCatalogQuery{}.Key(), &quotesapp.GetCatalogHandler{
		Catalogs: catalogs,
	})

	return application{
		handlers: ginserver.Handlers{
			Quote: ginserver.QuoteHandler{Queries: bus},
		},
		ready: ready,
	}, cleanup, nil
}

type catalogSaver interface {
	Save(ctx context.Context, catalog domainquote.Catalog) error
}

func loadCatalogFixtures(ctx context.Context, repo catalogSaver, cfg config.Config, logger *slog.Logger) error {
	path := cfg.CatalogFixtures
	if path == "" {
		path = defaultCatalogFixturesPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("catalog fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("catalog fixtures file empty", "path", path)
		return nil
	}

	var fixtures []dto.VehicleCatalog
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}
	for _, fx := range fixtures {
		if fx.Currency == "" {
			fx.Currency = cfg.DefaultCurrency
		}
		if err := repo.Save(ctx, fx.ToDomain()); err != nil {
			logger.Error("cannot store fixture catalog", "vehicle_id", fx.VehicleID, "error", err)
			continue
		}
		logger.Info("catalog fixture imported", "vehicle_id", fx.VehicleID, "rules", len(fx.Rules))
	}
	return nil
}

func defaultCatalogFixturesPath() string {
	return filepath.Join("data", "catalogs.json")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
