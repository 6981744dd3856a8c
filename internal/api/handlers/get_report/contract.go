package get_report

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

type ReportService interface {
	Report(ctx context.Context) (*models.ReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
