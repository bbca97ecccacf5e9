package scheduler

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback. IDs are never reused within a
// Queue, so a stale ID can never cancel a newer timer.
type TimerID uint64

type timer struct {
	id       TimerID
	due      time.Time
	interval time.Duration
	seq      uint64
	fn       func()
	index    int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if !h[i].due.Equal(h[j].due) {
		return h[i].due.Before(h[j].due)
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Queue is a virtual clock plus an ordered timer queue. Callbacks run
// synchronously inside AdvanceTo, in due order, with Now() reporting the
// callback's due time. It is not safe for concurrent use; the Runner
// serializes access.
type Queue struct {
	now    time.Time
	nextID TimerID
	seq    uint64
	timers timerHeap
	byID   map[TimerID]*timer
}

// NewQueue creates a Queue whose clock starts at start.
func NewQueue(start time.Time) *Queue {
	return &Queue{now: start, byID: make(map[TimerID]*timer)}
}

// Now implements Clock.
func (q *Queue) Now() time.Time { return q.now }

// After schedules fn to run once, d from now.
func (q *Queue) After(d time.Duration, fn func()) TimerID {
	return q.schedule(d, 0, fn)
}

// Every schedules fn to run every interval, first at now+interval.
// Non-positive intervals are rejected with a zero ID.
func (q *Queue) Every(interval time.Duration, fn func()) TimerID {
	if interval <= 0 {
		return 0
	}
	return q.schedule(interval, interval, fn)
}

func (q *Queue) schedule(d, interval time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	q.nextID++
	q.seq++
	t := &timer{id: q.nextID, due: q.now.Add(d), interval: interval, seq: q.seq, fn: fn}
	heap.Push(&q.timers, t)
	q.byID[t.id] = t
	return t.id
}

// Cancel removes a pending timer. It reports whether the timer existed.
func (q *Queue) Cancel(id TimerID) bool {
	t, ok := q.byID[id]
	if !ok {
		return false
	}
	delete(q.byID, id)
	if t.index >= 0 {
		heap.Remove(&q.timers, t.index)
	}
	return true
}

// CancelAll drops every pending timer.
func (q *Queue) CancelAll() {
	q.timers = nil
	q.byID = make(map[TimerID]*timer)
}

// Pending returns the number of scheduled timers.
func (q *Queue) Pending() int { return len(q.byID) }

// Scheduled reports whether id is still pending.
func (q *Queue) Scheduled(id TimerID) bool {
	_, ok := q.byID[id]
	return ok
}

// NextDue returns the due time of the earliest timer.
func (q *Queue) NextDue() (time.Time, bool) {
	if len(q.timers) == 0 {
		return time.Time{}, false
	}
	return q.timers[0].due, true
}

// AdvanceTo fires every timer due at or before target, then sets the clock
// to target. Timers scheduled by callbacks fire in the same call when they
// fall inside the window. Moving backwards is a no-op.
func (q *Queue) AdvanceTo(target time.Time) int {
	fired := 0
	for len(q.timers) > 0 {
		t := q.timers[0]
		if t.due.After(target) {
			break
		}
		heap.Pop(&q.timers)
		if t.due.After(q.now) {
			q.now = t.due
		}
		if t.interval > 0 {
			q.seq++
			t.due = t.due.Add(t.interval)
			t.seq = q.seq
			heap.Push(&q.timers, t)
		} else {
			delete(q.byID, t.id)
		}
		fired++
		t.fn()
	}
	if target.After(q.now) {
		q.now = target
	}
	return fired
}

// Advance moves the clock forward by d.
func (q *Queue) Advance(d time.Duration) int {
	return q.AdvanceTo(q.now.Add(d))
}
