package dispatch

import (
	"cmp"
	"slices"

	"taxi-dispatch/internal/entities"
)

// Queue упорядоченный список водителей на линии, без повторов.
// Значение неизменяемое: With* возвращают новую очередь, и диспетчер
// подменяет свою копию только после того, как позиции записаны в хранилище.
type Queue struct {
	ids []int64
}

func NewQueue(ids ...int64) *Queue {
	q := &Queue{ids: make([]int64, 0, len(ids))}
	for _, id := range ids {
		if !slices.Contains(q.ids, id) {
			q.ids = append(q.ids, id)
		}
	}
	return q
}

func (q *Queue) IDs() []int64 {
	return slices.Clone(q.ids)
}

func (q *Queue) Len() int {
	return len(q.ids)
}

func (q *Queue) Contains(id int64) bool {
	return slices.Contains(q.ids, id)
}

// Position возвращает позицию с единицы, 0 если водителя нет в очереди.
func (q *Queue) Position(id int64) int {
	return slices.Index(q.ids, id) + 1
}

func (q *Queue) WithEnqueued(id int64) (*Queue, bool) {
	if q.Contains(id) {
		return q, false
	}
	ids := make([]int64, len(q.ids), len(q.ids)+1)
	copy(ids, q.ids)
	return &Queue{ids: append(ids, id)}, true
}

func (q *Queue) WithDequeued(id int64) (*Queue, bool) {
	idx := slices.Index(q.ids, id)
	if idx < 0 {
		return q, false
	}
	return &Queue{ids: slices.Delete(slices.Clone(q.ids), idx, idx+1)}, true
}

func (q *Queue) Entries() []entities.QueueEntry {
	entries := make([]entities.QueueEntry, len(q.ids))
	for i, id := range q.ids {
		entries[i] = entities.QueueEntry{DriverID: id, Position: i + 1}
	}
	return entries
}

// queueOrder восстанавливает порядок по сохраненным позициям:
// водители без позиции в конце, при равенстве порядок по id.
func queueOrder(drivers []entities.Driver) []int64 {
	sorted := slices.Clone(drivers)
	slices.SortStableFunc(sorted, func(a, b entities.Driver) int {
		switch {
		case a.QueuePosition == nil && b.QueuePosition == nil:
			return cmp.Compare(a.ID, b.ID)
		case a.QueuePosition == nil:
			return 1
		case b.QueuePosition == nil:
			return -1
		}
		if c := cmp.Compare(*a.QueuePosition, *b.QueuePosition); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	ids := make([]int64, len(sorted))
	for i, driver := range sorted {
		ids[i] = driver.ID
	}
	return ids
}
