package cancel_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	cancelReservation "github.com/m04kA/SMC-ParkingService/internal/usecase/cancel_reservation"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *cancelReservation.Request) (*cancelReservation.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*cancelReservation.Response)
	return resp, args.Error(1)
}

func serve(uc CancelReservationUseCase, id string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/reservations/{reservationId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodDelete)

	r := httptest.NewRequest(http.MethodDelete, "/reservations/"+id, nil)
	r = r.WithContext(middleware.WithPrincipal(r.Context(), domain.Principal{UserID: 7, Role: domain.RoleDriver}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandler_Cancelled(t *testing.T) {
	uc := new(useCaseMock)
	now := time.Now()
	status := domain.SlotAvailable
	uc.On("Execute", mock.Anything, &cancelReservation.Request{UserID: 7, ReservationID: 12}).Return(&cancelReservation.Response{
		Reservation: &domain.Reservation{ID: 12, UserID: 7, Status: domain.ReservationCancelled, CancelledAt: &now},
		SlotStatus:  &status,
	}, nil)

	rec := serve(uc, "12")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CancelReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Cancelled", resp.Reservation.Status)
	assert.Equal(t, "Available", *resp.SlotStatus)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		ucErr      error
		wantStatus int
	}{
		{name: "bad id", id: "abc", wantStatus: http.StatusBadRequest},
		{name: "not found", id: "12", ucErr: cancelReservation.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "already cancelled", id: "12", ucErr: fmt.Errorf("%w: status Cancelled", cancelReservation.ErrInvalidState), wantStatus: http.StatusBadRequest},
		{name: "internal", id: "12", ucErr: cancelReservation.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(useCaseMock)
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}
			assert.Equal(t, tt.wantStatus, serve(uc, tt.id).Code)
		})
	}
}
