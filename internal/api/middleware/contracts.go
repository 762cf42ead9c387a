package middleware

import "time"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPObserver принимает метрики HTTP запросов (реализуется pkg/metrics)
type HTTPObserver interface {
	ObserveHTTPRequest(method, route, status string, duration time.Duration)
}
