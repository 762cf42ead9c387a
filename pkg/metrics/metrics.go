package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-метрик сервиса
// Каждый экземпляр использует собственный registry, поэтому New можно вызывать в тестах многократно
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec

	// Движок команд
	CommandsTotal *prometheus.CounterVec
	UndoTotal     *prometheus.CounterVec
	HistorySize   *prometheus.GaugeVec

	// События
	EventsEmittedTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		registry:    prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation", "status"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_commands_total",
			Help: "Executed booking lifecycle commands by result",
		}, []string{"service", "command", "result"}),

		UndoTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_command_undo_total",
			Help: "Undo attempts by result",
		}, []string{"service", "command", "result"}),

		HistorySize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "booking_command_history_size",
			Help: "Current number of commands in the undo history",
		}, []string{"service"}),

		EventsEmittedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_events_emitted_total",
			Help: "Domain events handed to the event sink by result",
		}, []string{"service", "event", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.CommandsTotal,
		m.UndoTotal,
		m.HistorySize,
		m.EventsEmittedTotal,
	)

	return m
}

// Registry возвращает registry с метриками сервиса
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler возвращает http.Handler для endpoint'а метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest фиксирует завершённый HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполнение запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(duration.Seconds())
}

// ObserveCommand фиксирует результат выполнения команды
func (m *Metrics) ObserveCommand(command, result string) {
	m.CommandsTotal.WithLabelValues(m.serviceName, command, result).Inc()
}

// ObserveUndo фиксирует результат отмены команды
func (m *Metrics) ObserveUndo(command, result string) {
	m.UndoTotal.WithLabelValues(m.serviceName, command, result).Inc()
}

// SetHistorySize обновляет размер истории команд
func (m *Metrics) SetHistorySize(size int) {
	m.HistorySize.WithLabelValues(m.serviceName).Set(float64(size))
}

// ObserveEvent фиксирует отправку доменного события
func (m *Metrics) ObserveEvent(event string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.EventsEmittedTotal.WithLabelValues(m.serviceName, event, result).Inc()
}
