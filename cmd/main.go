package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	cancelBookingHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/create_booking"
	executeCommandHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/execute_command"
	getBookingHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/get_booking"
	getCommandHistoryHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/get_command_history"
	getUserBookingsHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/get_user_bookings"
	undoCommandHandler "github.com/m04kA/SMC-BookingLifecycle/internal/api/handlers/undo_command"
	"github.com/m04kA/SMC-BookingLifecycle/internal/api/middleware"
	"github.com/m04kA/SMC-BookingLifecycle/internal/config"
	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingLifecycle/internal/infra/storage/memory"
	bookingsService "github.com/m04kA/SMC-BookingLifecycle/internal/service/bookings"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/commands"
	"github.com/m04kA/SMC-BookingLifecycle/internal/service/engine"
	createBookingUC "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/create_booking"
	executeCommandUC "github.com/m04kA/SMC-BookingLifecycle/internal/usecase/execute_command"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/logger"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/metrics"
	"github.com/m04kA/SMC-BookingLifecycle/pkg/tracing"
)

const configPath = "config.toml"

// bookingStore общий контракт драйверов хранилища
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByRequesterID(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Save(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// eventSink общий контракт отправителей событий
type eventSink interface {
	Emit(ctx context.Context, e domain.LifecycleEvent) error
	Close() error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BookingLifecycle...")
	log.Info("Configuration loaded (storage=%s, events=%s, history_size=%d)",
		cfg.Storage.Driver, cfg.Events.Driver, cfg.Commands.HistorySize)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Метрики создаются всегда; эндпоинт и middleware подключаются только если включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	// Трейсинг
	shutdownTracing := tracing.Noop()
	if cfg.Tracing.Enabled {
		shutdownTracing, err = tracing.Init(ctx, tracing.Config{
			ServiceName: cfg.Metrics.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			Environment: cfg.Tracing.Environment,
		})
		if err != nil {
			log.Fatal("Failed to initialize tracing: %v", err)
		}
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
	}

	// Хранилище
	store, closeStore, err := openStore(ctx, cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer closeStore()

	// Доменные события
	sink, err := openSink(cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to initialize event sink: %v", err)
	}
	defer sink.Close()

	// Движок команд и журнал
	commandEngine := engine.New(
		commands.Env{
			Repository: store,
			Events:     sink,
			Clock:      &createBookingUC.RealTimeProvider{},
			Logger:     log,
		},
		engine.Config{
			HistorySize:      cfg.Commands.HistorySize,
			OperationTimeout: time.Duration(cfg.Commands.OperationTimeout) * time.Second,
		},
		log,
		metricsCollector,
	)
	registry := commands.NewDefaultRegistry()
	log.Info("Command engine initialized (history_size=%d, commands=%v)",
		commandEngine.HistoryCapacity(), registry.Names())

	// Сервисы и use cases
	bookingSvc := bookingsService.NewService(store, log)
	createBookingUseCase := createBookingUC.NewUseCase(store, sink, log)
	executeCommandUseCase := executeCommandUC.NewUseCase(registry, commandEngine, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(executeCommandUseCase, log)
	executeCommand := executeCommandHandler.NewHandler(executeCommandUseCase, log)
	undoCommand := undoCommandHandler.NewHandler(commandEngine, log)
	getCommandHistory := getCommandHistoryHandler.NewHandler(commandEngine, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recovery(log), middleware.Actor, middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Команды жизненного цикла ---
	api.HandleFunc("/bookings/{bookingId}/commands", executeCommand.Handle).Methods(http.MethodPost)
	api.HandleFunc("/commands/undo", undoCommand.Handle).Methods(http.MethodPost)
	api.HandleFunc("/commands/history", getCommandHistory.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Graceful shutdown по сигналу или падению сервера
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("Failed to flush traces: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error: %v", err)
		return
	}

	log.Info("Server stopped gracefully")
}

// openStore выбирает драйвер хранилища бронирований
func openStore(
	ctx context.Context,
	cfg *config.Config,
	m *metrics.Metrics,
	stopCh <-chan struct{},
	log *logger.Logger,
) (bookingStore, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepository(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")
	}

	return bookingRepo.NewRepository(executor), func() { _ = db.Close() }, nil
}

// openSink выбирает отправителя доменных событий
func openSink(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (eventSink, error) {
	if cfg.Events.Driver == config.EventsDriverRabbitMQ {
		sink, err := events.NewRabbitMQSink(cfg.Events.URL, cfg.Events.Exchange, m, log)
		if err != nil {
			return nil, err
		}
		log.Info("Publishing domain events to RabbitMQ exchange %s", cfg.Events.Exchange)
		return sink, nil
	}

	log.Info("Domain events are written to the log")
	return events.NewLogSink(log, m), nil
}
