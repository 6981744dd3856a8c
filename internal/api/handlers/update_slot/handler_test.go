package update_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
	"github.com/m04kA/SMC-ParkingService/internal/service/slotstate"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

func TestHandler_Handle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	refresher := slotstate.NewService(store.Slots(), store.Reservations(), store.TxManager(), nil)
	svc := slots.NewService(store.Slots(), store.Reservations(), store.Payments(), refresher, store.TxManager(), logger.NewNop())

	a, err := store.Slots().Create(ctx, &domain.Slot{SlotNumber: "A-1"})
	require.NoError(t, err)
	_, err = store.Slots().Create(ctx, &domain.Slot{SlotNumber: "A-2"})
	require.NoError(t, err)

	// сохраненный статус устарел, переименование его пересчитывает
	start := time.Now().Add(time.Hour)
	_, err = store.Reservations().Create(ctx, &domain.Reservation{
		UserID: 1, VehicleID: 1, SlotID: &a.ID, StartAt: start, EndAt: start.Add(time.Hour),
		Status: domain.ReservationActive, PaymentStatus: domain.PaymentPending,
	})
	require.NoError(t, err)

	router := mux.NewRouter()
	router.HandleFunc("/admin/slots/{slotId}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)

	put := func(id, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/slots/"+id, strings.NewReader(body)))
		return rec
	}

	rec := put("1", `{"slotNumber":"B-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "B-1", resp.SlotNumber)
	assert.Equal(t, "Reserved", resp.Status)

	assert.Equal(t, http.StatusConflict, put("1", `{"slotNumber":"A-2"}`).Code)
	assert.Equal(t, http.StatusNotFound, put("42", `{"slotNumber":"C-1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, put("1", `{"slotNumber":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, put("1", `{"status":"Available"}`).Code)
}
