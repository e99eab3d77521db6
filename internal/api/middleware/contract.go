package middleware

import "time"

type Logger interface {
	Warn(format string, v ...interface{})
}

// HTTPMetrics интерфейс сборщика HTTP метрик
type HTTPMetrics interface {
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
}
