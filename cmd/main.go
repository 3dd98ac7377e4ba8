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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	availabilityHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/availability"
	breaksHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/breaks"
	getBannersHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_banners"
	getCalendarHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_calendar"
	getFreeSlotsHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/get_free_slots"
	rescheduleHandler "github.com/m04kA/SMC-CalendarService/internal/api/handlers/reschedule_appointment"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/calendar"
	"github.com/m04kA/SMC-CalendarService/internal/config"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/internal/infra/cache"
	appointmentRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/appointment"
	teamRepo "github.com/m04kA/SMC-CalendarService/internal/infra/storage/team"
	bookingServiceClient "github.com/m04kA/SMC-CalendarService/internal/integrations/bookingservice"
	availabilityService "github.com/m04kA/SMC-CalendarService/internal/service/availability"
	"github.com/m04kA/SMC-CalendarService/internal/service/banners"
	"github.com/m04kA/SMC-CalendarService/internal/service/notifications"
	getCalendarViewUC "github.com/m04kA/SMC-CalendarService/internal/usecase/get_calendar_view"
	getFreeSlotsUC "github.com/m04kA/SMC-CalendarService/internal/usecase/get_free_slots"
	rescheduleUC "github.com/m04kA/SMC-CalendarService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-CalendarService/pkg/logger"
	"github.com/m04kA/SMC-CalendarService/pkg/metrics"
	"github.com/m04kA/SMC-CalendarService/pkg/txmanager"
)

// appointmentStore внешнее хранилище записей
type appointmentStore interface {
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) error
}

// rosterStore источник списка мастеров
type rosterStore interface {
	ListTeamMembers(ctx context.Context) ([]domain.TeamMember, error)
}

func main() {
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

	log.Info("Starting SMC-CalendarService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище записей
	var (
		appointments appointmentStore
		roster       rosterStore
	)

	switch cfg.Store.Backend {
	case config.StoreBackendHTTP:
		client := bookingServiceClient.NewClient(cfg.Store.BaseURL, cfg.Store.Timeout(), log)
		appointments = client
		roster = client
		log.Info("Integration client initialized (BookingService=%s timeout=%s)", cfg.Store.BaseURL, cfg.Store.Timeout())

	default:
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

		txMgr := txmanager.New(db)
		appointments = appointmentRepo.NewRepository(db, txMgr)
		roster = teamRepo.NewRepository(db)
	}

	// Кэш ленты записей (если включен)
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable at %s, cache will fall back to store: %v", cfg.Cache.Addr, err)
		} else {
			log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Cache.Addr, cfg.Cache.DB)
		}
		cancelPing()

		feed := cache.NewFeed(redisClient, appointments, roster, cfg.Cache.TTL(), log)
		appointments = feed
		roster = feed
		log.Info("Feed cache enabled (ttl=%s)", cfg.Cache.TTL())
	}

	// Инициализируем сервисы
	openAt, closeAt, closedDays, err := cfg.Availability.Resolve()
	if err != nil {
		log.Fatal("Invalid availability config: %v", err)
	}
	registry := availabilityService.NewRegistry(availabilityService.Defaults{
		Start:      openAt,
		End:        closeAt,
		ClosedDays: closedDays,
	}, log)

	board := banners.NewBoard(banners.RealTimeProvider{}, metricsCollector)
	augmenter := calendar.NewAugmenter(calendar.RealTimeProvider{})

	simulator := notifications.NewSimulator(notifications.Config{
		Interval:    cfg.Simulator.Interval(),
		Probability: cfg.Simulator.Probability,
	}, appointments, board, nil, nil, log)

	// Окно видимых дней: симулятор выбирает записи последнего построенного вида
	viewWindow := notifications.NewViewWindow(calendar.RealTimeProvider{})
	simulator.WatchVisible(viewWindow, augmenter)

	// Инициализируем use cases
	rescheduleUseCase := rescheduleUC.NewUseCase(
		appointments,
		appointments,
		registry,
		augmenter,
		board,
		metricsCollector,
		rescheduleUC.Config{
			PixelsPerMinute: cfg.Calendar.PixelsPerMinute,
			SnapMinutes:     cfg.Calendar.SnapMinutes,
		},
		log,
	)

	getCalendarViewUseCase := getCalendarViewUC.NewUseCase(
		appointments,
		roster,
		registry,
		augmenter,
		log,
	)
	getCalendarViewUseCase.SetObserver(viewWindow)

	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		appointments,
		roster,
		registry,
		augmenter,
		cfg.Calendar.SnapMinutes,
		log,
	)

	// Инициализируем handlers
	getCalendar := getCalendarHandler.NewHandler(getCalendarViewUseCase, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, log)
	reschedule := rescheduleHandler.NewHandler(rescheduleUseCase, log)
	availabilityH := availabilityHandler.NewHandler(registry, log)
	breaks := breaksHandler.NewHandler(registry, log)
	getBanners := getBannersHandler.NewHandler(board)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Календарь ---
	api.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/free-slots", getFreeSlots.Handle).Methods(http.MethodGet)

	// Перенос записи
	api.HandleFunc("/appointments/{appointmentId}/reschedule", reschedule.Handle).Methods(http.MethodPost)

	// --- Доступность ---
	api.HandleFunc("/availability", availabilityH.List).Methods(http.MethodGet)
	api.HandleFunc("/availability/quick-edit", availabilityH.QuickEdit).Methods(http.MethodPost)
	api.HandleFunc("/availability/{weekday}", availabilityH.UpdateDay).Methods(http.MethodPut)

	// --- Перерывы ---
	api.HandleFunc("/breaks", breaks.List).Methods(http.MethodGet)
	api.HandleFunc("/breaks", breaks.Create).Methods(http.MethodPost)
	api.HandleFunc("/breaks/{breakId}", breaks.Update).Methods(http.MethodPut)
	api.HandleFunc("/breaks/{breakId}", breaks.Delete).Methods(http.MethodDelete)

	// --- Уведомления ---
	api.HandleFunc("/banners", getBanners.Handle).Methods(http.MethodGet)

	// Запускаем симулятор уведомлений
	simCtx, stopSim := context.WithCancel(context.Background())
	defer stopSim()
	if cfg.Simulator.Enabled {
		if err := simulator.Start(simCtx); err != nil {
			log.Error("Failed to start notification simulator: %v", err)
		} else {
			log.Info("Notification simulator started (interval=%s, probability=%.2f)",
				cfg.Simulator.Interval(), cfg.Simulator.Probability)
		}
	}

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

	// Останавливаем симулятор
	simulator.Stop()
	log.Info("Notification simulator stopped")

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
