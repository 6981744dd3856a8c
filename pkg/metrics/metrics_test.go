package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/api/v1/slots", "200", time.Millisecond)
		m.ObserveDBQuery("query", nil, time.Millisecond)
		m.SetDBConnections(1, 1, 0)
		m.ObserveSweeperTick(TickResultOK, time.Second)
		m.AddReservationsCompleted(3)
		m.IncSlotStatusChange("Occupied")
		m.IncReservationConflict("slot")
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := New("parking-test")

	m.ObserveSweeperTick(TickResultOK, time.Second)
	m.ObserveSweeperTick(TickResultSkipped, 0)
	m.ObserveSweeperTick(TickResultSkipped, 0)
	m.AddReservationsCompleted(2)
	m.ObserveDBQuery("exec", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SweeperTicksTotal.WithLabelValues("parking-test", TickResultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SweeperTicksTotal.WithLabelValues("parking-test", TickResultSkipped)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsCompleted.WithLabelValues("parking-test")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("parking-test", "exec", "error")))
}
