package redislock

// Logger интерфейс для логирования
type Logger interface {
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
