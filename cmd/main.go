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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/focus-space/FS-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/focus-space/FS-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/focus-space/FS-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/focus-space/FS-BookingService/internal/api/handlers/get_booking"
	getCourseHandler "github.com/focus-space/FS-BookingService/internal/api/handlers/get_course"
	listCoursesHandler "github.com/focus-space/FS-BookingService/internal/api/handlers/list_courses"
	wizardSessionsHandler "github.com/focus-space/FS-BookingService/internal/api/handlers/wizard_sessions"
	"github.com/focus-space/FS-BookingService/internal/api/middleware"
	"github.com/focus-space/FS-BookingService/internal/config"
	bookingRepo "github.com/focus-space/FS-BookingService/internal/infra/storage/booking"
	courseRepo "github.com/focus-space/FS-BookingService/internal/infra/storage/course"
	"github.com/focus-space/FS-BookingService/internal/infra/sessionstore"
	"github.com/focus-space/FS-BookingService/internal/notify"
	bookingsService "github.com/focus-space/FS-BookingService/internal/service/bookings"
	coursesService "github.com/focus-space/FS-BookingService/internal/service/courses"
	wizardSessionsService "github.com/focus-space/FS-BookingService/internal/service/wizardsessions"
	createBookingUC "github.com/focus-space/FS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/focus-space/FS-BookingService/internal/usecase/get_available_slots"
	"github.com/focus-space/FS-BookingService/pkg/logger"
	"github.com/focus-space/FS-BookingService/pkg/metrics"
	"github.com/focus-space/FS-BookingService/pkg/txmanager"
	"github.com/focus-space/FS-BookingService/pkg/types"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting FS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Repositories and transaction manager
	bookingRepository := bookingRepo.NewRepository(db)
	courseRepository := courseRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Wizard session store: Redis when configured, in-memory otherwise.
	sessionTTL := time.Duration(cfg.Booking.SessionTTLMinutes) * time.Minute
	var sessionStore wizardSessionsService.Store
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping Redis: %v", err)
		}
		sessionStore = sessionstore.NewRedisStore(redisClient, sessionTTL)
		log.Info("Wizard sessions stored in Redis (addr=%s, ttl=%s)", cfg.Redis.Addr, sessionTTL)
	} else {
		sessionStore = sessionstore.NewMemoryStore(sessionTTL)
		log.Info("Wizard sessions stored in memory (ttl=%s)", sessionTTL)
	}

	// Notifications
	var mailer notify.Mailer = notify.NoopMailer{}
	if cfg.SMTP.Enabled {
		mailer = notify.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port,
			cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
		log.Info("SMTP notifications enabled (host=%s, operator=%s)", cfg.SMTP.Host, cfg.SMTP.OperatorEmail)
	}
	notifier := notify.NewNotifier(mailer, cfg.SMTP.OperatorEmail, log)

	// Trial slot palette comes from configuration, validated at startup.
	openTime, err := types.NewTimeStringFromString(cfg.Booking.TrialOpenTime)
	if err != nil {
		log.Fatal("Invalid trial_open_time: %v", err)
	}
	closeTime, err := types.NewTimeStringFromString(cfg.Booking.TrialCloseTime)
	if err != nil {
		log.Fatal("Invalid trial_close_time: %v", err)
	}
	palette := getAvailableSlotsUC.TrialPalette{
		OpenTime:    openTime,
		CloseTime:   closeTime,
		SlotMinutes: cfg.Booking.TrialSlotMinutes,
	}

	// Services
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	courseSvc := coursesService.NewService(courseRepository, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		courseRepository,
		txMgr,
		notifier,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		courseRepository,
		palette,
		log,
	)

	wizardSvc := wizardSessionsService.NewService(
		sessionStore,
		courseRepository,
		createBookingUseCase,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listCourses := listCoursesHandler.NewHandler(courseSvc, log)
	getCourse := getCourseHandler.NewHandler(courseSvc, log)
	wizardSessions := wizardSessionsHandler.NewHandler(wizardSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Courses
	api.HandleFunc("/courses", listCourses.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courses/{courseId}", getCourse.Handle).Methods(http.MethodGet)

	// Availability
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Bookings
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingNumber}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingNumber}", cancelBooking.Handle).Methods(http.MethodDelete)

	// Wizard sessions
	api.HandleFunc("/wizard/sessions", wizardSessions.HandleStart).Methods(http.MethodPost)
	api.HandleFunc("/wizard/sessions/{sessionId}", wizardSessions.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/wizard/sessions/{sessionId}/events", wizardSessions.HandleEvent).Methods(http.MethodPost)
	api.HandleFunc("/wizard/sessions/{sessionId}/confirm", wizardSessions.HandleConfirm).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
