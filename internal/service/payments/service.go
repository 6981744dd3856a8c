package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
)

// Service платежи
type Service struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Pay записывает платеж и отмечает бронирование оплаченным в одной транзакции
func (s *Service) Pay(ctx context.Context, userID int64, req *models.PaymentRequest) (*models.PaymentResponse, error) {
	method := strings.TrimSpace(req.Method)
	s.logger.Info("Pay: user=%d, reservation=%d, amount=%.2f, method=%s", userID, req.ReservationID, req.Amount, method)

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if len(method) < domain.MinPaymentMethodLen || len(method) > domain.MaxPaymentMethodLen {
		return nil, fmt.Errorf("%w: method must be %d-%d characters", ErrInvalidInput, domain.MinPaymentMethodLen, domain.MaxPaymentMethodLen)
	}

	var created *domain.Payment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.LockByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Pay - lock reservation: %w", ErrInternal, err)
		}
		if res.UserID != userID {
			return ErrReservationNotFound
		}

		created, err = s.paymentRepo.Create(txCtx, &domain.Payment{
			UserID:        userID,
			ReservationID: res.ID,
			Amount:        req.Amount,
			Method:        method,
		})
		if err != nil {
			return fmt.Errorf("%w: Pay - create payment: %w", ErrInternal, err)
		}

		if err := s.reservationRepo.MarkPaid(txCtx, res.ID); err != nil {
			return fmt.Errorf("%w: Pay - mark paid: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			s.logger.Warn("Pay: reservation=%d not found for user=%d", req.ReservationID, userID)
			return nil, err
		}
		s.logger.Error("Pay: reservation=%d: %v", req.ReservationID, err)
		if !errors.Is(err, ErrInternal) {
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	s.logger.Info("Pay: payment id=%d recorded", created.ID)
	return models.FromDomainPayment(created), nil
}

// List возвращает все платежи, сначала новые
func (s *Service) List(ctx context.Context) ([]*models.PaymentResponse, error) {
	list, err := s.paymentRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPayments(list), nil
}
