// Package lock serialises booking writes per contested resource.
package lock

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Locker acquires every key or none. The returned release func must be
// called exactly once.
type Locker interface {
	Acquire(ctx context.Context, keys []string) (release func(), err error)
}

func CourtKey(id int64) string { return fmt.Sprintf("court:%d", id) }
func CoachKey(id int64) string { return fmt.Sprintf("coach:%d", id) }
func EquipmentKey(id int64) string { return fmt.Sprintf("equipment:%d", id) }

func ReservationKey(id int64) string { return fmt.Sprintf("reservation:%d", id) }

// normalize sorts and de-duplicates keys so every caller acquires in the
// same order.
func normalize(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MemoryLocker is an in-process keyed mutex. It only serialises callers that
// share the same MemoryLocker.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[string]*slot)}
}

func (l *MemoryLocker) Acquire(ctx context.Context, keys []string) (func(), error) {
	keys = normalize(keys)
	held := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := l.lock(ctx, key); err != nil {
			l.unlockAll(held)
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		held = append(held, key)
	}

	var once sync.Once
	return func() { once.Do(func() { l.unlockAll(held) }) }, nil
}

func (l *MemoryLocker) lock(ctx context.Context, key string) error {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.drop(key, s)
		return ctx.Err()
	}
}

func (l *MemoryLocker) unlockAll(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.mu.Lock()
		s := l.slots[keys[i]]
		l.mu.Unlock()
		<-s.ch
		l.drop(keys[i], s)
	}
}

func (l *MemoryLocker) drop(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
