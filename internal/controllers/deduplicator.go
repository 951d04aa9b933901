package controllers

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RequestDeduplicator отсекает повторные тяжёлые запросы одного пользователя
// (двойной клик по "Синхронизировать").
type RequestDeduplicator struct {
	locks sync.Map
}

func NewRequestDeduplicator() *RequestDeduplicator {
	return &RequestDeduplicator{}
}

// TryAcquire занимает ключ userID+keySuffix на ttl. false - ключ ещё занят.
func (d *RequestDeduplicator) TryAcquire(userID uint64, keySuffix string, ttl time.Duration) bool {
	key := fmt.Sprintf("%d_%s", userID, keySuffix)
	now := time.Now()
	expiry := now.Add(ttl)

	for {
		val, loaded := d.locks.LoadOrStore(key, expiry)
		if !loaded {
			return true
		}
		if now.Before(val.(time.Time)) {
			return false
		}
		if d.locks.CompareAndSwap(key, val, expiry) {
			return true
		}
	}
}

// Release освобождает ключ досрочно.
func (d *RequestDeduplicator) Release(userID uint64, keySuffix string) {
	d.locks.Delete(fmt.Sprintf("%d_%s", userID, keySuffix))
}

// Cleanup периодически удаляет истёкшие ключи, пока жив ctx.
func (d *RequestDeduplicator) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.prune(time.Now())
		}
	}
}

func (d *RequestDeduplicator) prune(now time.Time) {
	d.locks.Range(func(key, value interface{}) bool {
		if now.After(value.(time.Time)) {
			d.locks.Delete(key)
		}
		return true
	})
}
