package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

// Service администрирование слотов и сводка
type Service struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	slotState       SlotStateRefresher
	txManager       TransactionManager
	now             func() time.Time
	logger          Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	slotState SlotStateRefresher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		slotState:       slotState,
		txManager:       txManager,
		now:             time.Now,
		logger:          logger,
	}
}

func normalizeNumber(number string) (string, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return "", fmt.Errorf("%w: slot number is required", ErrInvalidInput)
	}
	if len(number) > domain.MaxSlotNumberLength {
		return "", fmt.Errorf("%w: slot number is longer than %d", ErrInvalidInput, domain.MaxSlotNumberLength)
	}
	return number, nil
}

// List возвращает все слоты с сохраненным статусом
func (s *Service) List(ctx context.Context) ([]*models.SlotResponse, error) {
	slots, err := s.slotRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSlots(slots), nil
}

// Create создает слот в статусе Available
func (s *Service) Create(ctx context.Context, req *models.SlotRequest) (*models.SlotResponse, error) {
	number, err := normalizeNumber(req.SlotNumber)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: slot %s", number)

	created, err := s.slotRepo.Create(ctx, &domain.Slot{SlotNumber: number})
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotAlreadyExists) {
			s.logger.Warn("Create: slot %s already exists", number)
			return nil, ErrSlotAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: slot id=%d created", created.ID)
	return models.FromDomainSlot(created), nil
}

// Rename меняет номер слота. Статус клиентом не задается:
// после изменения он пересчитывается под блокировкой слота
func (s *Service) Rename(ctx context.Context, id int64, req *models.SlotRequest) (*models.SlotResponse, error) {
	number, err := normalizeNumber(req.SlotNumber)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Rename: slot id=%d -> %s", id, number)

	var updated *domain.Slot
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.LockByID(txCtx, id); err != nil {
			return err
		}

		slot, err := s.slotRepo.UpdateNumber(txCtx, id, number)
		if err != nil {
			return err
		}

		state, err := s.slotState.Refresh(txCtx, id, s.now())
		if err != nil {
			return err
		}
		slot.Status = state.Status
		updated = slot
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("Rename: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotAlreadyExists):
			s.logger.Warn("Rename: slot number %s already exists", number)
			return nil, ErrSlotAlreadyExists
		default:
			s.logger.Error("Rename: slot id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Rename - %w", ErrInternal, err)
		}
	}

	return models.FromDomainSlot(updated), nil
}

// Report сводка по слотам, бронированиям и платежам из одного снимка
func (s *Service) Report(ctx context.Context) (*models.ReportResponse, error) {
	var report domain.Report
	occupied := domain.SlotOccupied

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if report.TotalSlots, err = s.slotRepo.Count(txCtx, nil); err != nil {
			return err
		}
		if report.OccupiedSlots, err = s.slotRepo.Count(txCtx, &occupied); err != nil {
			return err
		}
		if report.ActiveReservations, err = s.reservationRepo.CountActive(txCtx); err != nil {
			return err
		}
		report.TotalPayments, report.TotalRevenue, err = s.paymentRepo.Stats(txCtx)
		return err
	})
	if err != nil {
		s.logger.Error("Report: %v", err)
		return nil, fmt.Errorf("%w: Report - %w", ErrInternal, err)
	}

	return models.FromDomainReport(&report), nil
}
