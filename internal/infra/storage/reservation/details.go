package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

// detailsColumns бронирование + номер слота + номер и модель автомобиля.
// Слот и автомобиль присоединяются LEFT JOIN: автомобиль мог быть удален
var detailsColumns = []string{
	"r.id",
	"r.user_id",
	"r.vehicle_id",
	"r.slot_id",
	"r.start_at",
	"r.end_at",
	"r.duration_hours",
	"r.total_amount",
	"r.payment_status",
	"r.status",
	"r.cancelled_at",
	"r.completed_at",
	"r.created_at",
	"r.updated_at",
	"s.slot_number",
	"v.vehicle_number",
	"v.model",
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From("reservations r").
		LeftJoin("parking_slots s ON s.id = r.slot_id").
		LeftJoin("vehicles v ON v.id = r.vehicle_id")
}

// GetDetails получает бронирование вместе с номером слота и автомобиля (проверка билета)
func (r *Repository) GetDetails(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - build select query: %w", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - scan reservation: %w", ErrScanRow, err)
	}

	return details, nil
}

// ListDetails возвращает бронирования с деталями
// Фильтр по пользователю возвращает сначала новые, фильтр по статусу - по времени начала
func (r *Repository) ListDetails(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := detailsSelect()

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": *filter.Status})
	}

	if filter.UserID != nil {
		selectBuilder = selectBuilder.OrderBy("r.created_at DESC", "r.id DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("r.start_at ASC", "r.id ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetails - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetails - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ReservationDetails, 0)
	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDetails - scan reservation: %w", ErrScanRow, err)
		}
		result = append(result, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDetails - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

func scanDetails(row rowScanner) (*domain.ReservationDetails, error) {
	var d domain.ReservationDetails
	var slotID sql.NullInt64
	var cancelledAt, completedAt sql.NullTime
	var slotNumber, vehicleNumber, vehicleModel sql.NullString

	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.VehicleID,
		&slotID,
		&d.StartAt,
		&d.EndAt,
		&d.DurationHours,
		&d.TotalAmount,
		&d.PaymentStatus,
		&d.Status,
		&cancelledAt,
		&completedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
		&slotNumber,
		&vehicleNumber,
		&vehicleModel,
	)
	if err != nil {
		return nil, err
	}

	if slotID.Valid {
		d.SlotID = &slotID.Int64
	}
	if cancelledAt.Valid {
		d.CancelledAt = &cancelledAt.Time
	}
	if completedAt.Valid {
		d.CompletedAt = &completedAt.Time
	}
	if slotNumber.Valid {
		d.SlotNumber = &slotNumber.String
	}
	if vehicleNumber.Valid {
		d.VehicleNumber = &vehicleNumber.String
	}
	if vehicleModel.Valid {
		d.VehicleModel = &vehicleModel.String
	}

	return &d, nil
}
