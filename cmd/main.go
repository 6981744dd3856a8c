package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	addVehicleHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/add_vehicle"
	cancelReservationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_reservation"
	createPaymentHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_payment"
	createReservationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_reservation"
	createSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_slot"
	deleteVehicleHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_vehicle"
	getActiveReservationsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_active_reservations"
	getPaymentsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_payments"
	getReportHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_report"
	getSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_slots"
	getTicketHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_ticket"
	getUserReservationsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_reservations"
	getUserVehiclesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_vehicles"
	listAvailableSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_available_slots"
	updateSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_slot"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/redislock"
	paymentsService "github.com/m04kA/SMC-ParkingService/internal/service/payments"
	reservationsService "github.com/m04kA/SMC-ParkingService/internal/service/reservations"
	slotsService "github.com/m04kA/SMC-ParkingService/internal/service/slots"
	"github.com/m04kA/SMC-ParkingService/internal/service/slotstate"
	vehiclesService "github.com/m04kA/SMC-ParkingService/internal/service/vehicles"
	cancelReservationUC "github.com/m04kA/SMC-ParkingService/internal/usecase/cancel_reservation"
	createReservationUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_reservation"
	listAvailableSlotsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/list_available_slots"
	"github.com/m04kA/SMC-ParkingService/internal/worker/sweeper"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: PostgreSQL или память процесса
	store, err := openStorage(cfg, log, metricsCollector)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Пересчет статуса слота, общий для всех мутаций
	slotState := slotstate.NewService(store.slots, store.reservations, store.txManager, metricsCollector)

	// Инициализируем сервисы
	vehicleSvc := vehiclesService.NewService(store.vehicles, store.reservations, store.txManager, log)
	reservationSvc := reservationsService.NewService(store.reservations, log)
	paymentSvc := paymentsService.NewService(store.payments, store.reservations, store.txManager, log)
	slotSvc := slotsService.NewService(store.slots, store.reservations, store.payments, slotState, store.txManager, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		store.slots,
		store.vehicles,
		store.reservations,
		slotState,
		store.txManager,
		log,
		createReservationUC.WithConflictRecorder(metricsCollector),
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		store.slots,
		store.reservations,
		slotState,
		store.txManager,
		log,
	)
	listAvailableSlotsUseCase := listAvailableSlotsUC.NewUseCase(
		store.slots,
		store.reservations,
		store.txManager,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	listAvailableSlots := listAvailableSlotsHandler.NewHandler(listAvailableSlotsUseCase, log)
	addVehicle := addVehicleHandler.NewHandler(vehicleSvc, log)
	getUserVehicles := getUserVehiclesHandler.NewHandler(vehicleSvc, log)
	deleteVehicle := deleteVehicleHandler.NewHandler(vehicleSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	createPayment := createPaymentHandler.NewHandler(paymentSvc, log)
	getSlots := getSlotsHandler.NewHandler(slotSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	getReport := getReportHandler.NewHandler(slotSvc, log)
	getTicket := getTicketHandler.NewHandler(reservationSvc, log)
	getPayments := getPaymentsHandler.NewHandler(paymentSvc, log)
	getActiveReservations := getActiveReservationsHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Auth)

	// ============================================================
	// ADMIN ROUTES (роль admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/report", getReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/tickets/{reservationId}", getTicket.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/payments", getPayments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations", getActiveReservations.Handle).Methods(http.MethodGet)

	// ============================================================
	// DRIVER ROUTES (роль driver)
	// ============================================================

	driver := api.PathPrefix("").Subrouter()
	driver.Use(middleware.RequireRole(domain.RoleDriver))

	// --- Автомобили ---
	driver.HandleFunc("/vehicles", addVehicle.Handle).Methods(http.MethodPost)
	driver.HandleFunc("/vehicles", getUserVehicles.Handle).Methods(http.MethodGet)
	driver.HandleFunc("/vehicles/{vehicleId}", deleteVehicle.Handle).Methods(http.MethodDelete)

	// --- Слоты и бронирования ---
	driver.HandleFunc("/slots", listAvailableSlots.Handle).Methods(http.MethodGet)
	driver.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	driver.HandleFunc("/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	driver.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// --- Оплата ---
	driver.HandleFunc("/payments", createPayment.Handle).Methods(http.MethodPost)

	// Фоновый обработчик завершения бронирований
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	if cfg.Sweeper.Enabled {
		opts := []sweeper.Option{sweeper.WithInterval(cfg.Sweeper.Interval())}
		if metricsCollector != nil {
			opts = append(opts, sweeper.WithMetrics(metricsCollector))
		}

		if cfg.Redis.Enabled {
			redisClient, err := redislock.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				log.Fatal("Failed to connect to redis: %v", err)
			}
			defer redisClient.Close()

			opts = append(opts, sweeper.WithLocker(redislock.New(redisClient, cfg.Sweeper.LockKey)))
			log.Info("Sweeper cross-replica lock enabled (redis=%s, key=%s)", cfg.Redis.Addr, cfg.Sweeper.LockKey)
		}

		sw := sweeper.New(store.slots, store.reservations, slotState, store.txManager, log, opts...)

		workers.Add(1)
		go func() {
			defer workers.Done()
			sw.Run(workerCtx)
		}()
		log.Info("Sweeper started (interval=%s)", sw.Interval())
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopWorkers()
	workers.Wait()

	log.Info("Server stopped gracefully")
}
