package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"apartment-search-service/internal/adapters/background"
	"apartment-search-service/internal/adapters/leboncoin"
	logger_adapter "apartment-search-service/internal/adapters/logger"
	postgres_adapter "apartment-search-service/internal/adapters/postgres"
	rabbitmq_adapter "apartment-search-service/internal/adapters/rabbitmq"
	"apartment-search-service/internal/adapters/rest"
	"apartment-search-service/internal/adapters/sampledata"
	"apartment-search-service/internal/adapters/seloger"
	"apartment-search-service/internal/configs"
	"apartment-search-service/internal/constants"
	"apartment-search-service/internal/core/normalizer"
	"apartment-search-service/internal/core/port"
	"apartment-search-service/internal/core/usecase"
	"apartment-search-service/pkg/fluentlogger"
	"apartment-search-service/pkg/postgres"
	"apartment-search-service/pkg/rabbitmq/rabbitmq_common"
	"apartment-search-service/pkg/rabbitmq/rabbitmq_consumer"
	"apartment-search-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App - структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	rabbitConnManager    *rabbitmq_common.ConnectionManager
	refreshTasksProducer *rabbitmq_producer.Publisher
	refreshTasksListener *rabbitmq_adapter.RefreshTasksConsumerAdapter
}

// NewApp - composition root: здесь создаются и связываются все зависимости.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. Логгеры ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 2. Хранилище ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool", nil)

	listingStore, err := postgres_adapter.NewListingStoreAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create listing store adapter: %w", err)
	}
	favoriteStore, err := postgres_adapter.NewFavoriteStoreAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create favorite store adapter: %w", err)
	}
	appLogger.Info("Postgres adapters initialized", nil)

	// --- 3. Адаптеры источников ---
	selogerAdapter, err := seloger.NewSeLogerAdapter(appConfig.Sources.SeLogerURL)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create seloger adapter: %w", err)
	}
	leboncoinAdapter := leboncoin.NewLeBonCoinAdapter(appConfig.Sources.LeBonCoinURL)
	sourceAdapters := []port.SourceAdapterPort{leboncoinAdapter, selogerAdapter}
	appLogger.Info("Source adapters initialized", port.Fields{"sources_count": len(sourceAdapters)})

	// --- 4. Use cases ядра ---
	taskReporter := background.NewLogTaskReporter(baseLogger.WithFields(port.Fields{"component": "task_reporter"}))
	reconcileUC := usecase.NewReconcileListingUseCase(listingStore)
	refreshUC := usecase.NewRefreshListingsUseCase(sourceAdapters, normalizer.New(), reconcileUC, taskReporter)

	getDetailsUC := usecase.NewGetListingDetailsUseCase(listingStore)
	addFavoriteUC := usecase.NewAddFavoriteUseCase(favoriteStore, listingStore)
	removeFavoriteUC := usecase.NewRemoveFavoriteUseCase(favoriteStore)
	listFavoritesUC := usecase.NewListFavoritesUseCase(favoriteStore, listingStore)

	// --- 5. Диспетчер фоновых обновлений ---
	// RabbitMQ при включенной конфигурации, иначе внутрипроцессные горутины
	var dispatcher port.RefreshDispatcherPort
	var connManager *rabbitmq_common.ConnectionManager
	var refreshProducer *rabbitmq_producer.Publisher
	var refreshListener *rabbitmq_adapter.RefreshTasksConsumerAdapter

	if appConfig.RabbitMQ.Enabled {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(
			baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err = rabbitmq_common.NewManager(appConfig.RabbitMQ.URL, connManagerBridge)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create rabbitmq connection manager: %w", err)
		}

		producerBridge := rabbitmq_adapter.NewPkgLoggerBridge(
			baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"}))
		refreshProducer, err = rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.RefreshExchange,
			ExchangeType:             "direct",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   producerBridge,
		}, connManager)
		if err != nil {
			dbPool.Close()
			connManager.Close()
			return nil, fmt.Errorf("failed to create refresh tasks producer: %w", err)
		}

		dispatcher, err = rabbitmq_adapter.NewRefreshTaskProducerAdapter(refreshProducer)
		if err != nil {
			dbPool.Close()
			connManager.Close()
			return nil, err
		}

		consumerBridge := rabbitmq_adapter.NewPkgLoggerBridge(
			baseLogger.WithFields(port.Fields{"component": "rabbitmq_consumer"}))
		refreshConsumer, err := rabbitmq_consumer.NewConsumer(rabbitmq_consumer.ConsumerConfig{
			Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			QueueName:           constants.QueueRefreshTasks,
			DeclareQueue:        true,
			DurableQueue:        true,
			ExchangeNameForBind: constants.RefreshExchange,
			RoutingKeyForBind:   constants.RoutingKeyRefreshTask,
			PrefetchCount:       1,
			ConsumerTag:         "refresh-task-runner",
			Logger:              consumerBridge,
		}, connManager)
		if err != nil {
			dbPool.Close()
			connManager.Close()
			return nil, fmt.Errorf("failed to create refresh tasks consumer: %w", err)
		}

		refreshListener, err = rabbitmq_adapter.NewRefreshTasksConsumerAdapter(refreshConsumer, refreshUC, baseLogger)
		if err != nil {
			dbPool.Close()
			connManager.Close()
			return nil, err
		}
		appLogger.Info("RabbitMQ refresh pipeline initialized", nil)
	} else {
		dispatcher, err = background.NewDispatcher(refreshUC, baseLogger)
		if err != nil {
			dbPool.Close()
			return nil, err
		}
		appLogger.Info("In-process refresh dispatcher initialized", nil)
	}

	searchUC := usecase.NewSearchListingsUseCase(listingStore, dispatcher, sampledata.NewProvider())
	appLogger.Info("All use cases initialized", nil)

	// --- 6. REST API ---
	searchHandlers := rest.NewSearchHandler(searchUC)
	listingHandlers := rest.NewListingHandler(getDetailsUC)
	favoriteHandlers := rest.NewFavoriteHandler(addFavoriteUC, removeFavoriteUC, listFavoritesUC)

	apiServer := rest.NewServer(appConfig.HTTPPort, searchHandlers, listingHandlers, favoriteHandlers, baseLogger)
	appLogger.Info("REST API server configured", nil)

	return &App{
		config:               appConfig,
		dbPool:               dbPool,
		apiServer:            apiServer,
		fluentClient:         fluentClient,
		logger:               appLogger,
		rabbitConnManager:    connManager,
		refreshTasksProducer: refreshProducer,
		refreshTasksListener: refreshListener,
	}, nil
}

// Run запускает компоненты и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		wg.Wait()
		a.logger.Info("All background processes finished", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.refreshTasksListener != nil {
			if err := a.refreshTasksListener.Close(); err != nil {
				a.logger.Error("Error closing refresh tasks listener", err, nil)
			}
		}
		if a.refreshTasksProducer != nil {
			if err := a.refreshTasksProducer.Close(); err != nil {
				a.logger.Error("Error closing refresh tasks producer", err, nil)
			}
		}
		if a.rabbitConnManager != nil {
			if err := a.rabbitConnManager.Close(); err != nil {
				a.logger.Error("Error closing rabbitmq connection", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed", nil)
		}

		a.logger.Info("Application shut down gracefully", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// fluent может быть уже недоступен, пишем в stdout
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	if a.refreshTasksListener != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listenerLogger := a.logger.WithFields(port.Fields{"listener_name": "Refresh Tasks Listener"})
			listenerLogger.Info("Starting listener...", nil)

			if err := a.refreshTasksListener.Start(appCtx); err != nil && appCtx.Err() == nil {
				listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
				errorsCh <- fmt.Errorf("refresh tasks listener error: %w", err)
			} else {
				listenerLogger.Info("Listener stopped gracefully", nil)
			}
		}()
	}

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.HTTPPort})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	}

	cancelApp()
	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
