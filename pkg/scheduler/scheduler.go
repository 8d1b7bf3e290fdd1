package scheduler

import (
	"sync"
	"time"
)

// Scheduler откладывает выполнение функций по ключу.
// На один ключ живет не больше одного таймера: повторный Schedule
// заменяет предыдущий. Отмена best-effort, вызывающая сторона
// должна перепроверять состояние в fn.
type Scheduler[K comparable] struct {
	mu     sync.Mutex
	seq    uint64
	timers map[K]entry
}

type entry struct {
	timer *time.Timer
	seq   uint64
}

func New[K comparable]() *Scheduler[K] {
	return &Scheduler[K]{
		timers: make(map[K]entry),
	}
}

func (s *Scheduler[K]) Schedule(key K, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[key]; ok {
		prev.timer.Stop()
	}

	s.seq++
	seq := s.seq
	timer := time.AfterFunc(delay, func() {
		if !s.release(key, seq) {
			return
		}
		fn()
	})
	s.timers[key] = entry{timer: timer, seq: seq}
}

// Cancel останавливает таймер ключа. Возвращает false, если таймера нет.
func (s *Scheduler[K]) Cancel(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.timers[key]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.timers, key)
	return true
}

func (s *Scheduler[K]) Pending(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.timers[key]
	return ok
}

func (s *Scheduler[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.timers)
}

// Stop останавливает все таймеры.
func (s *Scheduler[K]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.timers {
		e.timer.Stop()
		delete(s.timers, key)
	}
}

// release снимает таймер с учета. false означает, что таймер был заменен
// или отменен после того, как уже сработал.
func (s *Scheduler[K]) release(key K, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.timers[key]
	if !ok || e.seq != seq {
		return false
	}
	delete(s.timers, key)
	return true
}
