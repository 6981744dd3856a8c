package get_ticket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) GetTicket(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*models.ReservationResponse)
	return resp, args.Error(1)
}

func TestHandler_Handle(t *testing.T) {
	number := "A-1"
	svc := new(serviceMock)
	svc.On("GetTicket", mock.Anything, int64(5)).Return(&models.ReservationResponse{ID: 5, SlotNumber: &number, Status: "Active"}, nil)
	svc.On("GetTicket", mock.Anything, int64(6)).Return(nil, reservations.ErrReservationNotFound)
	svc.On("GetTicket", mock.Anything, int64(7)).Return(nil, reservations.ErrInternal)

	router := mux.NewRouter()
	router.HandleFunc("/admin/tickets/{reservationId}", NewHandler(svc, logger.NewNop()).Handle)

	get := func(id string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/tickets/"+id, nil))
		return rec
	}

	rec := get("5")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slotNumber":"A-1"`)
	assert.Equal(t, http.StatusNotFound, get("6").Code)
	assert.Equal(t, http.StatusInternalServerError, get("7").Code)
	assert.Equal(t, http.StatusBadRequest, get("-1").Code)
}
