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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/cancel_appointment"
	confirmBookingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/confirm_booking"
	createServiceHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_available_slots"
	getPublicPageHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_public_page"
	getReceiptHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_receipt"
	getScheduleHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_schedule"
	listAppointmentsHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/list_appointments"
	updateScheduleHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/update_schedule"
	updateServicePriceHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/update_service_price"
	"github.com/m04kA/SMC-SlotBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBooking/internal/config"
	"github.com/m04kA/SMC-SlotBooking/internal/infra/lock/redislock"
	appointmentRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/business"
	catalogRepo "github.com/m04kA/SMC-SlotBooking/internal/infra/storage/catalog"
	appointmentsService "github.com/m04kA/SMC-SlotBooking/internal/service/appointments"
	businessService "github.com/m04kA/SMC-SlotBooking/internal/service/business"
	catalogService "github.com/m04kA/SMC-SlotBooking/internal/service/catalog"
	confirmBookingUC "github.com/m04kA/SMC-SlotBooking/internal/usecase/confirm_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SlotBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/keylock"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/metrics"
	"github.com/m04kA/SMC-SlotBooking/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("SLOTBOOKING_CONFIG"); p != "" {
		configPath = p
	}

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

	log.Info("Starting SMC-SlotBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	// При выключенных метриках collector остается nil, все его методы nil-safe
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	businessRepository := businessRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Booking.SerializableRetries),
		txmanager.WithLockTimeout(cfg.Booking.LockTimeout()),
	)

	// Выбираем реализацию блокировки бизнеса
	var locker confirmBookingUC.Locker
	switch cfg.Booking.LockBackend {
	case config.LockBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		var lockOpts []redislock.Option
		if cfg.Redis.KeyPrefix != "" {
			lockOpts = append(lockOpts, redislock.WithKeyPrefix(cfg.Redis.KeyPrefix))
		}
		locker = redislock.New(redisClient, log, cfg.Booking.LockTimeout(), cfg.Booking.LockTTL(), lockOpts...)
		log.Info("Booking lock backend: redis (addr=%s, prefix=%q, timeout=%s, ttl=%s)",
			cfg.Redis.Addr, cfg.Redis.KeyPrefix, cfg.Booking.LockTimeout(), cfg.Booking.LockTTL())
	default:
		locker = keylock.New(cfg.Booking.LockTimeout())
		log.Info("Booking lock backend: memory (timeout=%s)", cfg.Booking.LockTimeout())
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, catalogRepository, log)
	businessSvc := businessService.NewService(businessRepository, catalogRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		businessRepository,
		catalogRepository,
		metricsCollector,
		log,
		getAvailableSlotsUC.WithSlotStep(cfg.Booking.SlotStep()),
		getAvailableSlotsUC.WithTransactionManager(txMgr),
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		appointmentRepository,
		businessRepository,
		catalogRepository,
		locker,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	getPublicPage := getPublicPageHandler.NewHandler(businessSvc, log)
	getSchedule := getScheduleHandler.NewHandler(businessSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(businessSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getReceipt := getReceiptHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateServicePrice := updateServicePriceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		public.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMinute))
		log.Info("Public rate limit: %d requests per minute per IP", cfg.RateLimit.RequestsPerMinute)
	}

	// Публичная страница бизнеса с каталогом услуг
	public.HandleFunc("/b/{slug}", getPublicPage.Handle).Methods(http.MethodGet)

	// Рабочие часы бизнеса
	public.HandleFunc("/businesses/{businessId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Свободные времена начала на дату
	public.HandleFunc("/businesses/{businessId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Подтверждение бронирования
	public.HandleFunc("/businesses/{businessId}/appointments", confirmBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// OWNER ROUTES (требуют Authorization: Bearer <jwt>)
	// ============================================================

	owner := api.PathPrefix("").Subrouter()
	owner.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log))

	// Панель владельца: бронирования и выручка
	owner.HandleFunc("/businesses/{businessId}/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Изменение рабочих часов
	owner.HandleFunc("/businesses/{businessId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// Квитанция и отмена бронирования
	owner.HandleFunc("/appointments/{appointmentId}", getReceipt.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/appointments/{appointmentId}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// Каталог услуг
	owner.HandleFunc("/businesses/{businessId}/services", createService.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/services/{serviceId}/price", updateServicePrice.Handle).Methods(http.MethodPatch)
	owner.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

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
