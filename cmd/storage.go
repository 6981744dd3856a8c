package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// Общие контракты PostgreSQL и in-memory хранилищ, нужные для сборки приложения

type slotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	GetByNumber(ctx context.Context, number string) (*domain.Slot, error)
	LockByID(ctx context.Context, id int64) (*domain.Slot, error)
	List(ctx context.Context) ([]*domain.Slot, error)
	ListIDs(ctx context.Context) ([]int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
	UpdateNumber(ctx context.Context, id int64, number string) (*domain.Slot, error)
	Count(ctx context.Context, status *domain.SlotStatus) (int64, error)
}

type reservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	LockByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error)
	ListDetails(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationDetails, error)
	ListActiveBySlot(ctx context.Context, slotID int64) ([]*domain.Reservation, error)
	ListActiveOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error)
	ListEndedActive(ctx context.Context, now time.Time) ([]*domain.Reservation, error)
	Complete(ctx context.Context, id int64, at time.Time) error
	Cancel(ctx context.Context, id int64, at time.Time) error
	MarkPaid(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int64, error)
	HasActiveForVehicle(ctx context.Context, vehicleID int64) (bool, error)
}

type vehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	LockByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type paymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	List(ctx context.Context) ([]*domain.Payment, error)
	Stats(ctx context.Context) (count int64, revenue float64, err error)
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type storage struct {
	slots        slotRepository
	reservations reservationRepository
	vehicles     vehicleRepository
	payments     paymentRepository
	txManager    transactionManager

	close func()
}

// openStorage поднимает хранилище по storage.driver
func openStorage(cfg *config.Config, log *logger.Logger, metricsCollector *metrics.Metrics) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data will be lost on restart")
		store := memory.NewStore()
		return &storage{
			slots:        store.Slots(),
			reservations: store.Reservations(),
			vehicles:     store.Vehicles(),
			payments:     store.Payments(),
			txManager:    store.TxManager(),
			close:        func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopMetricsCh := make(chan struct{})
	var wrappedDB *dbmetrics.DB
	if metricsCollector != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	return &storage{
		slots:        slotRepo.NewRepository(wrappedDB),
		reservations: reservationRepo.NewRepository(wrappedDB),
		vehicles:     vehicleRepo.NewRepository(wrappedDB),
		payments:     paymentRepo.NewRepository(wrappedDB),
		txManager:    txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			close(stopMetricsCh)
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}
