package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"user_id",
	"vehicle_id",
	"slot_id",
	"start_at",
	"end_at",
	"duration_hours",
	"total_amount",
	"payment_status",
	"status",
	"cancelled_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований парковочных мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Ограничения исключения в схеме не дают записать два пересекающихся активных
// бронирования одного слота или одного автомобиля; такое нарушение
// возвращается как ErrSlotOverlap / ErrVehicleOverlap
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"vehicle_id",
			"slot_id",
			"start_at",
			"end_at",
			"duration_hours",
			"total_amount",
			"payment_status",
			"status",
		).
		Values(
			res.UserID,
			res.VehicleID,
			res.SlotID,
			res.StartAt,
			res.EndAt,
			res.DurationHours,
			res.TotalAmount,
			res.PaymentStatus,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		if pgerrors.IsExclusionViolation(err) {
			switch pgerrors.Constraint(err) {
			case ConstraintVehicleNoOverlap:
				return nil, fmt.Errorf("%w: %w", ErrVehicleOverlap, err)
			default:
				return nil, fmt.Errorf("%w: %w", ErrSlotOverlap, err)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getOne(ctx, "GetByID", id, false)
}

// LockByID получает бронирование и блокирует строку до конца транзакции
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getOne(ctx, "LockByID", id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getOne(ctx context.Context, method string, id int64, forUpdate bool) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %w", ErrScanRow, method, err)
	}

	return res, nil
}

// ListActiveBySlot возвращает все активные бронирования слота
func (r *Repository) ListActiveBySlot(ctx context.Context, slotID int64) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListActiveBySlot", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"slot_id": slotID, "status": domain.ReservationActive}).
		OrderBy("start_at ASC"))
}

// ListActiveOverlapping возвращает активные бронирования, пересекающиеся с [StartAt, EndAt):
// start_at < EndAt AND StartAt < end_at
func (r *Repository) ListActiveOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.ReservationActive}).
		Where(squirrel.Lt{"start_at": filter.EndAt}).
		Where(squirrel.Gt{"end_at": filter.StartAt})

	if filter.SlotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_id": *filter.SlotID})
	}
	if filter.VehicleID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vehicle_id": *filter.VehicleID})
	}

	return r.list(ctx, "ListActiveOverlapping", selectBuilder.OrderBy("start_at ASC"))
}

// ListEndedActive возвращает активные бронирования, чей конец наступил к моменту now
func (r *Repository) ListEndedActive(ctx context.Context, now time.Time) ([]*domain.Reservation, error) {
	return r.list(ctx, "ListEndedActive", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.ReservationActive}).
		Where(squirrel.LtOrEq{"end_at": now}).
		OrderBy("slot_id ASC", "end_at ASC"))
}

func (r *Repository) list(ctx context.Context, method string, selectBuilder squirrel.SelectBuilder) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %w", ErrScanRow, method, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return reservations, nil
}

// Complete переводит активное бронирование в Completed
func (r *Repository) Complete(ctx context.Context, id int64, at time.Time) error {
	return r.finish(ctx, "Complete", id, domain.ReservationCompleted, "completed_at", at)
}

// Cancel переводит активное бронирование в Cancelled
func (r *Repository) Cancel(ctx context.Context, id int64, at time.Time) error {
	return r.finish(ctx, "Cancel", id, domain.ReservationCancelled, "cancelled_at", at)
}

// finish переводит бронирование в конечный статус только из Active
func (r *Repository) finish(ctx context.Context, method string, id int64, status domain.ReservationStatus, column string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set(column, at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ReservationActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotActive
	}

	return nil
}

// MarkPaid отмечает бронирование оплаченным
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("payment_status", domain.PaymentPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// CountActive возвращает количество активных бронирований
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"status": domain.ReservationActive}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %w", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// HasActiveForVehicle проверяет, есть ли у автомобиля активные бронирования
func (r *Repository) HasActiveForVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"vehicle_id": vehicleID, "status": domain.ReservationActive}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveForVehicle - build select query: %w", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasActiveForVehicle - scan exists: %w", ErrScanRow, err)
	}

	return exists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var slotID sql.NullInt64
	var cancelledAt, completedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.VehicleID,
		&slotID,
		&res.StartAt,
		&res.EndAt,
		&res.DurationHours,
		&res.TotalAmount,
		&res.PaymentStatus,
		&res.Status,
		&cancelledAt,
		&completedAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if slotID.Valid {
		res.SlotID = &slotID.Int64
	}
	if cancelledAt.Valid {
		res.CancelledAt = &cancelledAt.Time
	}
	if completedAt.Valid {
		res.CompletedAt = &completedAt.Time
	}

	return &res, nil
}
