package keylock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrLockTimeout возвращается, когда блокировка не получена за отведенное время
var ErrLockTimeout = errors.New("keylock: lock acquisition timed out")

// Locker взаимное исключение по строковому ключу внутри процесса
// Блокировки разных ключей независимы, ожидание ограничено timeout
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
	timeout time.Duration
}

type entry struct {
	sem  chan struct{}
	refs int
}

// New создает Locker; timeout <= 0 означает ожидание до отмены контекста
func New(timeout time.Duration) *Locker {
	return &Locker{
		entries: make(map[string]*entry),
		timeout: timeout,
	}
}

// Backend имя реализации для метрик
func (l *Locker) Backend() string {
	return "memory"
}

// Acquire захватывает блокировку ключа и возвращает функцию освобождения
func (l *Locker) Acquire(ctx context.Context, key string) (func(), error) {
	e := l.ref(key)

	var timeoutCh <-chan time.Time
	if l.timeout > 0 {
		timer := time.NewTimer(l.timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				l.unref(key, e)
			})
		}, nil
	case <-timeoutCh:
		l.unref(key, e)
		return nil, fmt.Errorf("%w: key=%s after %s", ErrLockTimeout, key, l.timeout)
	case <-ctx.Done():
		l.unref(key, e)
		return nil, ctx.Err()
	}
}

// Len количество ключей, по которым сейчас есть захват или ожидание
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Locker) ref(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) unref(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
