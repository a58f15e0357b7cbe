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
	_ "time/tzdata"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	cancelBookingHandler "github.com/m04kA/consultation-booking/internal/api/handlers/cancel_booking"
	clearDateOverrideHandler "github.com/m04kA/consultation-booking/internal/api/handlers/clear_date_override"
	completeCheckoutHandler "github.com/m04kA/consultation-booking/internal/api/handlers/complete_checkout"
	getAvailabilityHandler "github.com/m04kA/consultation-booking/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/consultation-booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/consultation-booking/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/consultation-booking/internal/api/handlers/get_bookings"
	getPricesHandler "github.com/m04kA/consultation-booking/internal/api/handlers/get_prices"
	getServicesHandler "github.com/m04kA/consultation-booking/internal/api/handlers/get_services"
	paymentWebhookHandler "github.com/m04kA/consultation-booking/internal/api/handlers/payment_webhook"
	resetPricesHandler "github.com/m04kA/consultation-booking/internal/api/handlers/reset_prices"
	startCheckoutHandler "github.com/m04kA/consultation-booking/internal/api/handlers/start_checkout"
	toggleDateSlotHandler "github.com/m04kA/consultation-booking/internal/api/handlers/toggle_date_slot"
	toggleRecurringSlotHandler "github.com/m04kA/consultation-booking/internal/api/handlers/toggle_recurring_slot"
	updatePricesHandler "github.com/m04kA/consultation-booking/internal/api/handlers/update_prices"
	welcomeTipsHandler "github.com/m04kA/consultation-booking/internal/api/handlers/welcome_tips"
	"github.com/m04kA/consultation-booking/internal/api/middleware"
	"github.com/m04kA/consultation-booking/internal/config"
	availabilityRepo "github.com/m04kA/consultation-booking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/consultation-booking/internal/infra/storage/booking"
	checkoutRepo "github.com/m04kA/consultation-booking/internal/infra/storage/checkout"
	"github.com/m04kA/consultation-booking/internal/infra/storage/documents"
	"github.com/m04kA/consultation-booking/internal/infra/storage/postgres"
	pricesRepo "github.com/m04kA/consultation-booking/internal/infra/storage/prices"
	"github.com/m04kA/consultation-booking/internal/infra/storage/redisstore"
	"github.com/m04kA/consultation-booking/internal/integrations/gemini"
	"github.com/m04kA/consultation-booking/internal/integrations/stripecheckout"
	availabilityService "github.com/m04kA/consultation-booking/internal/service/availability"
	bookingsService "github.com/m04kA/consultation-booking/internal/service/bookings"
	pricesService "github.com/m04kA/consultation-booking/internal/service/prices"
	tipsService "github.com/m04kA/consultation-booking/internal/service/tips"
	completeCheckoutUC "github.com/m04kA/consultation-booking/internal/usecase/complete_checkout"
	createBookingUC "github.com/m04kA/consultation-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/consultation-booking/internal/usecase/get_available_slots"
	processPaymentEventUC "github.com/m04kA/consultation-booking/internal/usecase/process_payment_event"
	startCheckoutUC "github.com/m04kA/consultation-booking/internal/usecase/start_checkout"
	"github.com/m04kA/consultation-booking/pkg/logger"
	"github.com/m04kA/consultation-booking/pkg/metrics"
)

func main() {
	// .env необязателен, переменные окружения могут прийти из оркестратора
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

	log.Info("Starting consultation-booking...")
	log.Info("Configuration loaded from config.toml (storage=%s)", cfg.Storage.Driver)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Счетчики нужны use cases всегда, наружу отдаются только если метрики включены
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	if cfg.Metrics.Enabled {
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	loc, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Schedule.Timezone, err)
	}

	// Подключаемся к хранилищу документов
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open %s store: %v", cfg.Storage.Driver, err)
	}
	defer closeStore()

	if cfg.Metrics.Enabled {
		store = documents.NewInstrumentedStore(store, metricsCollector)
		log.Info("Document store metrics collection started")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(store, log)
	availabilityRepository := availabilityRepo.NewRepository(store, log)
	pricesRepository := pricesRepo.NewRepository(store, log)
	checkoutRepository := checkoutRepo.NewRepository(store)

	// Инициализируем интеграционных клиентов
	stripeClient := stripecheckout.NewClient(cfg.Payments.SecretKey, cfg.Payments.WebhookSecret, nil, log)
	if cfg.Payments.SecretKey == "" {
		log.Warn("Stripe secret key is not set, paid checkout is disabled")
	}

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatal("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()
	if cfg.Gemini.APIKey == "" {
		log.Warn("Gemini API key is not set, welcome tips are disabled")
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(availabilityRepository, cfg.Schedule.SaveNoticeDelay(), log)
	defer availabilitySvc.Close()
	if err := availabilitySvc.Init(ctx); err != nil {
		// сервис поднимется на пустом расписании и перечитает его при первом обращении
		log.Error("Failed to load availability settings: %v", err)
	}
	go func() {
		if err := availabilitySvc.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Availability watch stopped: %v", err)
		}
	}()

	bookingSvc := bookingsService.NewService(bookingRepository, log)
	pricesSvc := pricesService.NewService(pricesRepository, log)
	tipsSvc := tipsService.NewService(bookingRepository, geminiClient, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		metricsCollector,
		cfg.Consultant.WhatsAppNumber,
		loc,
		log,
	)

	// Свободные слоты считаются по тому же состоянию, что видит администратор
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilitySvc,
		bookingRepository,
		log,
	)

	startCheckoutUseCase := startCheckoutUC.NewUseCase(
		getAvailableSlotsUseCase,
		pricesSvc,
		checkoutRepository,
		stripeClient,
		createBookingUseCase,
		metricsCollector,
		startCheckoutUC.Options{
			Currency:  cfg.Payments.Currency,
			ReturnURL: cfg.Payments.ReturnURL,
		},
		log,
	)

	completeCheckoutUseCase := completeCheckoutUC.NewUseCase(
		checkoutRepository,
		stripeClient,
		createBookingUseCase,
		completeCheckoutUC.Options{
			VerifyPayment: cfg.Payments.VerifyOnReturn,
			HandoffTTL:    cfg.Payments.HandoffTTL(),
		},
		log,
	)

	processPaymentEventUseCase := processPaymentEventUC.NewUseCase(
		stripeClient,
		checkoutRepository,
		createBookingUseCase,
		log,
	)

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(pricesSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	startCheckout := startCheckoutHandler.NewHandler(startCheckoutUseCase, log)
	completeCheckout := completeCheckoutHandler.NewHandler(completeCheckoutUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(processPaymentEventUseCase, log)

	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	toggleRecurringSlot := toggleRecurringSlotHandler.NewHandler(availabilitySvc, log)
	toggleDateSlot := toggleDateSlotHandler.NewHandler(availabilitySvc, log)
	clearDateOverride := clearDateOverrideHandler.NewHandler(availabilitySvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	welcomeTips := welcomeTipsHandler.NewHandler(tipsSvc, log)
	getPrices := getPricesHandler.NewHandler(pricesSvc, log)
	updatePrices := updatePricesHandler.NewHandler(pricesSvc, log)
	resetPrices := resetPricesHandler.NewHandler(pricesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// WEBHOOKS (подпись проверяется в use case, без лимита)
	// ============================================================

	api.HandleFunc("/webhooks/stripe", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	proxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatal("Invalid trusted proxies: %v", err)
	}

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTLMinutes)*time.Minute,
			proxies,
			log,
		)
		public.Use(limiter.Middleware)
		log.Info("Rate limit enabled (%d req/min, burst %d)", cfg.RateLimit.RequestsPerMin, cfg.RateLimit.Burst)
	}

	// Каталог консультаций с ценами
	public.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату
	public.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Запуск оплаты и возврат с нее
	public.HandleFunc("/checkout", startCheckout.Handle).Methods(http.MethodPost)
	public.HandleFunc("/checkout/return", completeCheckout.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Secret header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Secret, proxies, log))
	if cfg.Admin.Secret == "" {
		log.Warn("Admin secret is not set, admin routes reject every request")
	}

	// --- Расписание ---
	admin.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/availability/recurring/{day}/slots/{slot}/toggle", toggleRecurringSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/availability/dates/{date}/slots/{slot}/toggle", toggleDateSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/availability/dates/{date}", clearDateOverride.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{date}/{slot}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{date}/{slot}", cancelBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{date}/{slot}/welcome-tips", welcomeTips.Handle).Methods(http.MethodPost)

	// --- Цены ---
	admin.HandleFunc("/prices", getPrices.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/prices", updatePrices.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/prices/reset", resetPrices.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер. CORS снаружи роутера, чтобы preflight не упирался в Methods.
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS(cfg.Server.AllowedOrigins)(r),
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

	// Останавливаем подписку на изменения расписания
	stop()

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

// openStore открывает хранилище документов по storage.driver.
// Возвращаемая функция освобождает соединения.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (documents.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
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

		store := postgres.NewStore(db, cfg.Database.DSN(), log)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
		return redisstore.NewStore(client, cfg.Redis.KeyPrefix, log), func() { _ = client.Close() }, nil

	default:
		log.Warn("Using in-memory store, data is lost on restart")
		return documents.NewMemoryStore(), func() {}, nil
	}
}
