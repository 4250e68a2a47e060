package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/cancel_booking"
	checkSlotHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/check_slot"
	completeBookingHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/create_booking"
	createSlotHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/create_slot"
	createSlotsBulkHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/create_slots_bulk"
	deleteSlotHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/delete_slot"
	getBookingHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/get_booking_stats"
	getBookingsHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/get_bookings"
	getExperienceSlotsHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/get_experience_slots"
	getHostBookingsHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/get_host_bookings"
	getSlotHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/get_slot"
	getUserBookingsHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/get_user_bookings"
	listSlotsHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/list_slots"
	updateBookingHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/update_booking"
	updateSlotHandler "github.com/kar1timmins/DineLocal/internal/api/handlers/update_slot"
	"github.com/kar1timmins/DineLocal/internal/api/middleware"
	"github.com/kar1timmins/DineLocal/internal/config"
	statsCache "github.com/kar1timmins/DineLocal/internal/infra/cache/stats"
	"github.com/kar1timmins/DineLocal/internal/infra/events"
	bookingRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/booking"
	catalogRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/catalog"
	slotRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/slot"
	bookingsService "github.com/kar1timmins/DineLocal/internal/service/bookings"
	slotsService "github.com/kar1timmins/DineLocal/internal/service/slots"
	createBookingUC "github.com/kar1timmins/DineLocal/internal/usecase/create_booking"
	"github.com/kar1timmins/DineLocal/migrations"
	"github.com/kar1timmins/DineLocal/pkg/dbmetrics"
	"github.com/kar1timmins/DineLocal/pkg/logger"
	"github.com/kar1timmins/DineLocal/pkg/metrics"
	"github.com/kar1timmins/DineLocal/pkg/txmanager"
)

type eventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

func main() {
	// .env удобен локально, в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting DineLocal booking service...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Apply(startupCtx, db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// При выключенных метриках обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш статистики
	var cache bookingsService.StatsCache = statsCache.NoopCache{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		cache = statsCache.NewCache(redisClient, time.Duration(cfg.Redis.StatsTTL)*time.Second)
		log.Info("Stats cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.StatsTTL)
	}

	// Публикация событий
	var publisher eventPublisher = events.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbitPublisher, err := events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to rabbitmq: %v", err)
		}
		publisher = rabbitPublisher
		log.Info("Booking events enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)

	// Сервисы
	slotSvc := slotsService.NewService(slotRepository, catalogRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotSvc,
		catalogRepository,
		cache,
		publisher,
		txMgr,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		slotSvc,
		catalogRepository,
		cache,
		publisher,
		txMgr,
		log,
	)

	// Handlers
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	createSlotsBulk := createSlotsBulkHandler.NewHandler(slotSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	getExperienceSlots := getExperienceSlotsHandler.NewHandler(slotSvc, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	checkSlot := checkSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getHostBookings := getHostBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/availability", listSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/experience/{experienceId}", getExperienceSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{slotId}", getSlot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{slotId}/check/{guestCount}", checkSlot.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Слоты (для хостов) ---
	protected.HandleFunc("/availability", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/bulk", createSlotsBulk.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/{slotId}", updateSlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/availability/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)

	// stats регистрируется раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/user/{userId}", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/host/{hostId}", getHostBookings.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.HandleDelete).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
