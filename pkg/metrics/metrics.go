package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты тика фонового обработчика
const (
	TickResultOK      = "ok"
	TickResultFailed  = "failed"
	TickResultSkipped = "skipped"
)

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	registry *prometheus.Registry
	service  string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec

	SweeperTicksTotal     *prometheus.CounterVec
	SweeperTickDuration   *prometheus.HistogramVec
	ReservationsCompleted *prometheus.CounterVec
	SlotStatusChanges     *prometheus.CounterVec
	ReservationConflicts  *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса в собственном реестре
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		service:  serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		SweeperTicksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sweeper_ticks_total",
			Help: "Total number of slot sweeper ticks by result",
		}, []string{"service", "result"}),

		SweeperTickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sweeper_tick_duration_seconds",
			Help:    "Slot sweeper tick duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service"}),

		ReservationsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservations_completed_total",
			Help: "Total number of reservations transitioned to Completed",
		}, []string{"service"}),

		SlotStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_status_changes_total",
			Help: "Total number of persisted slot status changes by new status",
		}, []string{"service", "status"}),

		ReservationConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_conflicts_total",
			Help: "Total number of rejected reservations by conflict kind",
		}, []string{"service", "kind"}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBConnections,
		m.SweeperTicksTotal,
		m.SweeperTickDuration,
		m.ReservationsCompleted,
		m.SlotStatusChanges,
		m.ReservationConflicts,
	)

	return m
}

// Handler возвращает HTTP handler для экспорта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.service, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(m.service, operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBConnections.WithLabelValues(m.service, "open").Set(float64(open))
	m.DBConnections.WithLabelValues(m.service, "in_use").Set(float64(inUse))
	m.DBConnections.WithLabelValues(m.service, "idle").Set(float64(idle))
}

// ObserveSweeperTick фиксирует результат тика фонового обработчика
func (m *Metrics) ObserveSweeperTick(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SweeperTicksTotal.WithLabelValues(m.service, result).Inc()
	if result != TickResultSkipped {
		m.SweeperTickDuration.WithLabelValues(m.service).Observe(duration.Seconds())
	}
}

// AddReservationsCompleted увеличивает счетчик завершенных бронирований
func (m *Metrics) AddReservationsCompleted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ReservationsCompleted.WithLabelValues(m.service).Add(float64(n))
}

// IncSlotStatusChange фиксирует смену статуса слота
func (m *Metrics) IncSlotStatusChange(status string) {
	if m == nil {
		return
	}
	m.SlotStatusChanges.WithLabelValues(m.service, status).Inc()
}

// IncReservationConflict фиксирует отклоненное из-за пересечения бронирование
func (m *Metrics) IncReservationConflict(kind string) {
	if m == nil {
		return
	}
	m.ReservationConflicts.WithLabelValues(m.service, kind).Inc()
}
