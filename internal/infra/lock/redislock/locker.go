// Package redislock межпроцессная блокировка по ключу поверх Redis
// Нужна, когда несколько экземпляров API работают с одной базой
package redislock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix    = "slotbooking:lock:"
	defaultRetryBackoff = 10 * time.Millisecond
	maxRetryBackoff     = 100 * time.Millisecond
	releaseTimeout      = time.Second
)

// Удаляем ключ, только если он все еще принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker блокировка SET NX PX с уникальным токеном владельца
type Locker struct {
	client  redis.UniversalClient
	log     Logger
	prefix  string
	timeout time.Duration
	ttl     time.Duration
	backoff time.Duration
}

// Option настройка Locker
type Option func(*Locker)

// WithKeyPrefix задает префикс ключей в Redis
func WithKeyPrefix(prefix string) Option {
	return func(l *Locker) {
		l.prefix = prefix
	}
}

// WithRetryBackoff задает начальную паузу между попытками захвата
func WithRetryBackoff(d time.Duration) Option {
	return func(l *Locker) {
		if d > 0 {
			l.backoff = d
		}
	}
}

// New создает Locker
// timeout ограничивает ожидание захвата, ttl - время жизни ключа на случай падения владельца
func New(client redis.UniversalClient, log Logger, timeout, ttl time.Duration, opts ...Option) *Locker {
	l := &Locker{
		client:  client,
		log:     log,
		prefix:  defaultKeyPrefix,
		timeout: timeout,
		ttl:     ttl,
		backoff: defaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Backend имя реализации для метрик
func (l *Locker) Backend() string {
	return "redis"
}

// Acquire захватывает блокировку ключа и возвращает функцию освобождения
// Пока ключ занят, попытки повторяются с растущей паузой до истечения timeout
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	backoff := l.backoff
	for {
		acquired, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() == nil {
				return nil, fmt.Errorf("%w: SetNX key=%s: %w", ErrRedis, redisKey, err)
			}
			// Ответ на SetNX потерян, но Redis мог успеть записать ключ с нашим токеном
			l.releaseFunc(redisKey, token)()
			return nil, l.waitError(ctx, key)
		}
		if acquired {
			return l.releaseFunc(redisKey, token), nil
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, l.waitError(ctx, key)
		case <-timer.C:
		}

		backoff *= 2
		if backoff > maxRetryBackoff {
			backoff = maxRetryBackoff
		}
	}
}

func (l *Locker) waitError(ctx context.Context, key string) error {
	if ctx.Err() == context.DeadlineExceeded && l.timeout > 0 {
		return fmt.Errorf("%w: key=%s after %s", ErrLockTimeout, key, l.timeout)
	}
	return ctx.Err()
}

func (l *Locker) releaseFunc(redisKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// Контекст запроса к этому моменту может быть уже отменен
			ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()

			deleted, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int()
			if err != nil {
				l.log.Error("redislock: failed to release key=%s: %v", redisKey, err)
				return
			}
			if deleted == 0 {
				l.log.Warn("redislock: key=%s expired before release, ttl=%s", redisKey, l.ttl)
			}
		})
	}
}
