package list_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	listAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/list_available_slots"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *listAvailableSlots.Request) (*listAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*listAvailableSlots.Response)
	return resp, args.Error(1)
}

func TestHandler_PassesWindow(t *testing.T) {
	uc := new(useCaseMock)
	start := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *listAvailableSlots.Request) bool {
		return req.StartAt != nil && req.StartAt.Equal(start) && req.DurationHours != nil && *req.DurationHours == 2.5
	})).Return(&listAvailableSlots.Response{
		StartAt: start,
		EndAt:   start.Add(150 * time.Minute),
		Slots: []domain.SlotAvailability{
			{Slot: domain.Slot{ID: 1, SlotNumber: "A-1", Status: domain.SlotOccupied}, Status: domain.SlotAvailable},
			{Slot: domain.Slot{ID: 2, SlotNumber: "A-2"}, Status: domain.SlotReserved},
		},
	}, nil)

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/slots?startAt=2030-05-01T09:00:00Z&duration=2.5", nil)
	NewHandler(uc, logger.NewNop()).Handle(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "Available", resp.Slots[0].Status)
	assert.Equal(t, "Reserved", resp.Slots[1].Status)
}

func TestHandler_DefaultsAndErrors(t *testing.T) {
	t.Run("no params", func(t *testing.T) {
		uc := new(useCaseMock)
		uc.On("Execute", mock.Anything, &listAvailableSlots.Request{}).Return(&listAvailableSlots.Response{}, nil)

		rec := httptest.NewRecorder()
		NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		uc.AssertExpectations(t)
	})

	t.Run("bad startAt", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(new(useCaseMock), logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?startAt=now", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid window", func(t *testing.T) {
		uc := new(useCaseMock)
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, listAvailableSlots.ErrInvalidInput)

		rec := httptest.NewRecorder()
		NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots?duration=-1", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
