package main

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

	"storefront/cmd"
	httpapi "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/in/ws"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/notify"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/jobs"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	if err = run(config, logger); err != nil {
		logger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(config cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(config)
	if err != nil {
		return err
	}
	if err = postgres.AutoMigrate(gormDB); err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(config, gormDB, logger)

	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	publisher, closePublisher, err := invalidationPublisher(config, hub, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	jobManager, err := newJobManager(config, &app, publisher, logger)
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return serve(ctx, config, &app, hub, logger)
}

// openDatabase connects gorm through pgx by default or lib/pq when DB_DRIVER=postgres.
func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dialector := gormpostgres.New(gormpostgres.Config{
		DSN:        config.DSN(),
		DriverName: config.DBDriver,
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return gormDB, nil
}

// invalidationPublisher always pushes to websocket clients and, when brokers are
// configured, to Kafka. Without Kafka the notices are logged instead.
func invalidationPublisher(
	config cmd.Config,
	hub *ws.Hub,
	logger *slog.Logger,
) (*notify.FanOut, func(), error) {
	targets := []notify.Target{{Name: "websocket", Publisher: hub}}
	closeFn := func() {}

	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		producer, err := kafka.NewSyncProducer(brokers)
		if err != nil {
			return nil, nil, err
		}
		publisher, err := kafka.NewPublisher(producer, config.KafkaInvalidationTopic, logger)
		if err != nil {
			_ = producer.Close()
			return nil, nil, err
		}
		targets = append(targets, notify.Target{Name: "kafka", Publisher: publisher, Required: true})
		closeFn = func() {
			if err := publisher.Close(); err != nil {
				logger.Error("failed to close kafka producer", "error", err)
			}
		}
	} else {
		targets = append(targets, notify.Target{Name: "log", Publisher: notify.NewLogPublisher(logger)})
	}

	return notify.NewFanOut(logger, targets...), closeFn, nil
}

func newJobManager(
	config cmd.Config,
	app *cmd.CompositionRoot,
	publisher *notify.FanOut,
	logger *slog.Logger,
) (*jobs.JobManager, error) {
	relayCmd, err := commands.NewRelayInvalidationsCommand(config.OutboxBatchSize)
	if err != nil {
		return nil, fmt.Errorf("OUTBOX_BATCH_SIZE: %w", err)
	}
	purgeCmd, err := commands.NewPurgeSentInvalidationsCommand(config.OutboxRetention)
	if err != nil {
		return nil, fmt.Errorf("OUTBOX_RETENTION: %w", err)
	}

	return jobs.NewJobManager(
		app.CreateRelayInvalidationsCommandHandler(publisher),
		relayCmd,
		app.CreatePurgeSentInvalidationsCommandHandler(),
		purgeCmd,
		logger,
	), nil
}

func serve(ctx context.Context, config cmd.Config, app *cmd.CompositionRoot, hub *ws.Hub, logger *slog.Logger) error {
	resolver, err := app.CreateActorResolver()
	if err != nil {
		return err
	}

	server := httpapi.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateApplyPaymentStatusCommandHandler(),
		app.CreateApplyDeliveryStatusCommandHandler(),
		app.CreateListMyOrdersQueryHandler(),
		app.CreateListAllOrdersQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		hub,
	)

	e, err := httpapi.NewRouter(ctx, httpapi.RouterConfig{
		RequestTimeout: config.RequestTimeout,
		Debug:          config.LogLevel <= slog.LevelDebug,
	}, server, resolver, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", config.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
