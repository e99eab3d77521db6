package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты попыток бронирования
const (
	BookingResultConfirmed   = "confirmed"
	BookingResultConflict    = "conflict"
	BookingResultLockTimeout = "lock_timeout"
	BookingResultValidation  = "validation"
	BookingResultError       = "error"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec

	bookingAttempts  *prometheus.CounterVec
	lockWaitDuration *prometheus.HistogramVec
	slotsReturned    *prometheus.HistogramVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		service: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		dbInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		bookingAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_attempts_total",
			Help: "Booking confirmation attempts by result",
		}, []string{"service", "result"}),
		lockWaitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booking_lock_wait_seconds",
			Help:    "Time spent waiting for the per-business booking lock",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2, 5},
		}, []string{"service", "backend"}),
		slotsReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "available_slots_returned",
			Help:    "Number of free slots returned per availability request",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 24, 32, 48},
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.bookingAttempts,
		m.lockWaitDuration,
		m.slotsReturned,
	)

	return m
}

// RecordHTTPRequest учитывает HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.service, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

// RecordDBQuery учитывает запрос к БД
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(m.service, operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(m.service).Set(float64(stats.OpenConnections))
	m.dbInUseConns.WithLabelValues(m.service).Set(float64(stats.InUse))
	m.dbIdleConns.WithLabelValues(m.service).Set(float64(stats.Idle))
}

// RecordBookingResult учитывает результат попытки бронирования
func (m *Metrics) RecordBookingResult(result string) {
	if m == nil {
		return
	}
	m.bookingAttempts.WithLabelValues(m.service, result).Inc()
}

// ObserveLockWait учитывает время ожидания блокировки бизнеса
func (m *Metrics) ObserveLockWait(backend string, wait time.Duration) {
	if m == nil {
		return
	}
	m.lockWaitDuration.WithLabelValues(m.service, backend).Observe(wait.Seconds())
}

// ObserveSlotsReturned учитывает количество свободных слотов в ответе
func (m *Metrics) ObserveSlotsReturned(count int) {
	if m == nil {
		return
	}
	m.slotsReturned.WithLabelValues(m.service).Observe(float64(count))
}
