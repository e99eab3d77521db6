package redislock

import (
	"errors"

	"github.com/m04kA/SMC-SlotBooking/pkg/keylock"
)

var (
	// ErrLockTimeout возвращается, когда блокировка не получена за отведенное время
	// Совпадает с keylock.ErrLockTimeout, чтобы вызывающему коду не было важно, какой бэкенд используется
	ErrLockTimeout = keylock.ErrLockTimeout

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("redislock: redis error")
)
