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

	blobstore_adapter "github.com/omriland/CasaTrack-sub000/internal/adapters/blobstore"
	"github.com/omriland/CasaTrack-sub000/internal/adapters/browser"
	"github.com/omriland/CasaTrack-sub000/internal/adapters/llm"
	logger_adapter "github.com/omriland/CasaTrack-sub000/internal/adapters/logger"
	"github.com/omriland/CasaTrack-sub000/internal/adapters/media"
	"github.com/omriland/CasaTrack-sub000/internal/adapters/notifier"
	postgres_adapter "github.com/omriland/CasaTrack-sub000/internal/adapters/postgres"
	rabbitmq_adapter "github.com/omriland/CasaTrack-sub000/internal/adapters/rabbitmq"
	"github.com/omriland/CasaTrack-sub000/internal/adapters/rest"
	"github.com/omriland/CasaTrack-sub000/internal/configs"
	"github.com/omriland/CasaTrack-sub000/internal/constants"
	"github.com/omriland/CasaTrack-sub000/internal/core/cache"
	"github.com/omriland/CasaTrack-sub000/internal/core/kanban"
	"github.com/omriland/CasaTrack-sub000/internal/core/notecount"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"
	"github.com/omriland/CasaTrack-sub000/internal/core/usecase"
	fluentlogger "github.com/omriland/CasaTrack-sub000/pkg/fluent_logger"
	"github.com/omriland/CasaTrack-sub000/pkg/postgres"
	"github.com/omriland/CasaTrack-sub000/pkg/rabbitmq/rabbitmq_common"
	"github.com/omriland/CasaTrack-sub000/pkg/rabbitmq/rabbitmq_consumer"
	"github.com/omriland/CasaTrack-sub000/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App wires every adapter and use case together.
type App struct {
	config        *configs.AppConfig
	dbPool        *pgxpool.Pool
	apiServer     *rest.Server
	deltaListener port.EventListenerPort // nil when RabbitMQ is disabled
	connManager   *rabbitmq_common.ConnectionManager
	fetcher       *browser.RenderedFetcher
	noteCountsUC  *usecase.NoteCountsUseCase

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// Loggers first, everything else reports through them.
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

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
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

	// Low-level dependencies.
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: appConfig.Database.URL,
		MaxConns:    int32(appConfig.Database.MaxConns),
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	propertyRepo, err := postgres_adapter.NewPostgresPropertyAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres property adapter: %w", err)
	}
	noteRepo, err := postgres_adapter.NewPostgresNoteAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres note adapter: %w", err)
	}
	attachmentRepo, err := postgres_adapter.NewPostgresAttachmentAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres attachment adapter: %w", err)
	}

	blobStore, err := blobstore_adapter.NewBucketClient(blobstore_adapter.Config{
		BaseURL: appConfig.BlobStore.BaseURL,
		Bucket:  appConfig.BlobStore.Bucket,
		Token:   appConfig.BlobStore.Token,
	})
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create blob store client: %w", err)
	}

	sseNotifier := notifier.NewSSENotifier(baseLogger)
	appLogger.Info("SSE Notifier initialized.", nil)

	propertyCache := cache.NewPropertyCache(propertyRepo.List)
	counters := notecount.NewCounters()

	// Note-count delta transport: broker when available, otherwise a
	// direct local path.
	var (
		deltaPublisher port.NoteEventPublisherPort
		deltaListener  port.EventListenerPort
		connManager    *rabbitmq_common.ConnectionManager
	)
	if appConfig.RabbitMQ.Enabled {
		rmqBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))
		connManager, err = rabbitmq_common.NewManager(appConfig.RabbitMQ.URL, rmqBridge)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.ExchangeDashboard,
			ExchangeType:             constants.ExchangeDashboardType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rmqBridge,
		}, connManager)
		if err != nil {
			connManager.Close()
			dbPool.Close()
			return nil, fmt.Errorf("failed to create rabbitmq publisher: %w", err)
		}

		deltaPublisher, err = rabbitmq_adapter.NewNoteDeltaPublisher(producer, constants.RoutingKeyNoteCountDelta)
		if err != nil {
			connManager.Close()
			dbPool.Close()
			return nil, fmt.Errorf("failed to create note delta publisher: %w", err)
		}

		consumer, err := rabbitmq_consumer.NewConsumer(rabbitmq_consumer.ConsumerConfig{
			Config:                 rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			QueueName:              constants.QueueNoteCountDeltas,
			DeclareQueue:           true,
			DurableQueue:           true,
			ExchangeNameForBind:    constants.ExchangeDashboard,
			DeclareExchangeForBind: true,
			ExchangeTypeForBind:    constants.ExchangeDashboardType,
			DurableExchangeForBind: true,
			RoutingKeyForBind:      constants.RoutingKeyNoteCountDelta,
			PrefetchCount:          5,
			ConsumerTag:            appConfig.AppName + "-note-delta-consumer",
			Logger:                 rmqBridge,
		}, connManager)
		if err != nil {
			connManager.Close()
			dbPool.Close()
			return nil, fmt.Errorf("failed to create rabbitmq consumer: %w", err)
		}

		deltaListener, err = rabbitmq_adapter.NewNoteDeltaListener(consumer, counters, sseNotifier, baseLogger)
		if err != nil {
			connManager.Close()
			dbPool.Close()
			return nil, fmt.Errorf("failed to create note delta listener: %w", err)
		}
		appLogger.Info("RabbitMQ note delta pipeline initialized.", nil)
	} else {
		deltaPublisher = notifier.NewLocalDeltaPublisher(sseNotifier)
		appLogger.Warn("RabbitMQ disabled, note count deltas stay process-local.", nil)
	}

	// Scraping stack.
	renderedFetcher := browser.NewRenderedFetcher(context.Background())
	staticFetcher := browser.NewStaticFetcher()

	var extractor port.ListingExtractorPort
	if appConfig.LLM.APIKey != "" {
		extractor, err = llm.NewOpenAIExtractor(llm.Config{
			APIKey:  appConfig.LLM.APIKey,
			BaseURL: appConfig.LLM.BaseURL,
			Model:   appConfig.LLM.Model,
		})
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to create LLM extractor: %w", err)
		}
	} else {
		extractor = llm.NewDisabledExtractor()
		appLogger.Warn("No LLM API key configured, listing extraction disabled.", nil)
	}

	mediaProcessor := media.NewProcessor()

	// Use cases.
	createPropertyUC := usecase.NewCreatePropertyUseCase(propertyRepo, propertyCache, sseNotifier)
	updatePropertyUC := usecase.NewUpdatePropertyUseCase(propertyRepo, propertyCache, sseNotifier)
	deletePropertyUC := usecase.NewDeletePropertyUseCase(propertyRepo, blobStore, propertyCache, sseNotifier)
	listPropertiesUC := usecase.NewListPropertiesUseCase(propertyCache)
	getPropertyUC := usecase.NewGetPropertyUseCase(propertyRepo)
	updateStatusUC := usecase.NewUpdateStatusUseCase(propertyRepo, propertyCache, sseNotifier)
	rateUC := usecase.NewRatePropertyUseCase(propertyRepo, propertyCache)
	flagUC := usecase.NewToggleFlagUseCase(propertyRepo, propertyCache)
	coordinatesUC := usecase.NewUpdateCoordinatesUseCase(propertyRepo, propertyCache)
	markersUC := usecase.NewMapMarkersUseCase(propertyCache)

	createNoteUC := usecase.NewCreateNoteUseCase(noteRepo, propertyRepo, deltaPublisher, counters, sseNotifier)
	updateNoteUC := usecase.NewUpdateNoteUseCase(noteRepo, sseNotifier)
	deleteNoteUC := usecase.NewDeleteNoteUseCase(noteRepo, deltaPublisher, counters, sseNotifier)
	listNotesUC := usecase.NewListNotesUseCase(noteRepo)
	noteCountsUC := usecase.NewNoteCountsUseCase(noteRepo, counters)

	uploadAttachmentUC := usecase.NewUploadAttachmentUseCase(attachmentRepo, propertyRepo, blobStore, mediaProcessor, sseNotifier)
	deleteAttachmentUC := usecase.NewDeleteAttachmentUseCase(attachmentRepo, blobStore, sseNotifier)
	listAttachmentsUC := usecase.NewListAttachmentsUseCase(attachmentRepo, blobStore)

	extractUC := usecase.NewExtractPropertyUseCase(renderedFetcher, extractor)
	fetchPageUC := usecase.NewFetchPageUseCase(staticFetcher)
	appLogger.Info("All use cases initialized.", nil)

	// The board's move callback is the status-update use case.
	board := kanban.NewBoard(updateStatusUC)

	// REST API server.
	authHandler := rest.NewAuthHandler(appConfig.DashboardPassword, appConfig.Rest.SecureCookie)
	propertyHandler := rest.NewPropertyHandler(
		createPropertyUC, updatePropertyUC, deletePropertyUC, listPropertiesUC, getPropertyUC,
		updateStatusUC, rateUC, flagUC, coordinatesUC, markersUC,
	)
	boardHandler := rest.NewBoardHandler(board, listPropertiesUC)
	noteHandler := rest.NewNoteHandler(createNoteUC, updateNoteUC, deleteNoteUC, listNotesUC, noteCountsUC)
	attachmentHandler := rest.NewAttachmentHandler(uploadAttachmentUC, deleteAttachmentUC, listAttachmentsUC)
	extractHandler := rest.NewExtractHandler(extractUC, fetchPageUC)
	eventsHandler := rest.NewEventsHandler(sseNotifier)

	apiServer := rest.NewServer(
		appConfig.Rest.Port,
		authHandler, propertyHandler, boardHandler, noteHandler, attachmentHandler, extractHandler, eventsHandler,
		appConfig.Rest.CORSOrigin,
		baseLogger,
	)
	appLogger.Info("REST API server configured.", nil)

	return &App{
		config:        appConfig,
		dbPool:        dbPool,
		apiServer:     apiServer,
		deltaListener: deltaListener,
		connManager:   connManager,
		fetcher:       renderedFetcher,
		noteCountsUC:  noteCountsUC,
		logger:        appLogger,
		fluentClient:  fluentClient,
	}, nil
}

func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.deltaListener != nil {
			if err := a.deltaListener.Close(); err != nil {
				a.logger.Error("Error closing note delta listener", err, nil)
			}
		}
		if a.connManager != nil {
			if err := a.connManager.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
			}
		}

		if a.fetcher != nil {
			a.fetcher.Close()
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)
		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	// Seed the note-count badges before serving traffic.
	if err := a.noteCountsUC.Seed(appCtx); err != nil {
		a.logger.Error("Failed to seed note counts", err, nil)
		cancelApp()
		return err
	}

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.Port})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("HTTP server start error: %w", err)
		}
	}()

	if a.deltaListener != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listenerLogger := a.logger.WithFields(port.Fields{"listener": "Note Delta Listener"})
			listenerLogger.Info("Starting listener...", nil)

			if err := a.deltaListener.Start(appCtx); err != nil {
				listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
				errorsCh <- fmt.Errorf("note delta listener error: %w", err)
			} else {
				listenerLogger.Info("Listener stopped gracefully.", nil)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
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
