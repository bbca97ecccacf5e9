// Package tasks holds the ordered to-do list of one simulation session.
package tasks

import (
	"fmt"

	"github.com/alexanderramin/focussim/internal/domain"
)

// MaxDuplicateSuffix bounds the " (n)" suffix used by InjectUnique.
const MaxDuplicateSuffix = 9

// List is an ordered task collection with one active task. The active
// index is always valid, or 0 when the list is empty.
type List struct {
	items  []domain.Task
	active int
}

// NewList returns a list seeded with copies of tmpl.
func NewList(tmpl []domain.Task) *List {
	l := &List{}
	l.Reset(tmpl)
	return l
}

// Reset replaces the contents with copies of tmpl and activates the first task.
func (l *List) Reset(tmpl []domain.Task) {
	l.items = append([]domain.Task(nil), tmpl...)
	l.active = 0
}

func (l *List) Len() int { return len(l.items) }

// All returns a copy of the tasks.
func (l *List) All() []domain.Task {
	return append([]domain.Task(nil), l.items...)
}

// At returns a pointer to the task at i, or nil when out of range.
func (l *List) At(i int) *domain.Task {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return &l.items[i]
}

func (l *List) ActiveIndex() int { return l.active }

// Active returns the active task, or nil when the list is empty.
func (l *List) Active() *domain.Task {
	return l.At(l.active)
}

// SetActive moves the active marker. Out-of-range indices are ignored.
func (l *List) SetActive(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.active = i
	return true
}

// Add appends a task and returns its index.
func (l *List) Add(text string, kind domain.TaskKind) int {
	l.items = append(l.items, domain.Task{Text: text, Kind: kind})
	return len(l.items) - 1
}

// Toggle flips the completion flag of the task at i.
func (l *List) Toggle(i int) (completed bool, ok bool) {
	t := l.At(i)
	if t == nil {
		return false, false
	}
	return t.Toggle(), true
}

// Remove deletes the task at i and keeps the active index in range.
func (l *List) Remove(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	if l.active >= len(l.items) {
		l.active = max(0, len(l.items)-1)
	}
	return true
}

// AdvanceToNextIncomplete moves the active marker to the next incomplete
// task after the current one, wrapping around. When every task is done the
// marker stays where it is.
func (l *List) AdvanceToNextIncomplete() int {
	n := len(l.items)
	if n == 0 {
		l.active = 0
		return 0
	}
	start := domain.ClampInt(l.active, 0, n-1)
	next := start
	for step := 1; step <= n; step++ {
		cand := (start + step) % n
		if !l.items[cand].Completed {
			next = cand
			break
		}
	}
	l.active = next
	return next
}

// FirstIncomplete returns the index of the first incomplete task of kind.
func (l *List) FirstIncomplete(kind domain.TaskKind) (int, bool) {
	for i, t := range l.items {
		if t.Kind == kind && t.Progress < 1 && !t.Completed {
			return i, true
		}
	}
	return 0, false
}

// AccrueBackground adds inc(task) to every incomplete non-active task and
// returns the indices of tasks completed by this call.
func (l *List) AccrueBackground(inc func(domain.Task) float64) []int {
	var done []int
	for i := range l.items {
		if i == l.active || l.items[i].Completed {
			continue
		}
		if l.items[i].Advance(inc(l.items[i])) {
			done = append(done, i)
		}
	}
	return done
}

// Contains reports whether a task with exactly this text exists.
func (l *List) Contains(text string) bool {
	for _, t := range l.items {
		if t.Text == text {
			return true
		}
	}
	return false
}

// InjectUnique adds base, or "base (n)" for the first free n in 2..9 when
// base already exists. It returns the inserted text.
func (l *List) InjectUnique(base string, kind domain.TaskKind) (string, bool) {
	if base == "" {
		return "", false
	}
	if !l.Contains(base) {
		l.Add(base, kind)
		return base, true
	}
	for n := 2; n <= MaxDuplicateSuffix; n++ {
		alt := fmt.Sprintf("%s (%d)", base, n)
		if !l.Contains(alt) {
			l.Add(alt, kind)
			return alt, true
		}
	}
	return "", false
}

// CompletedCount returns how many tasks have reached full progress.
func (l *List) CompletedCount() int {
	n := 0
	for _, t := range l.items {
		if t.Completed {
			n++
		}
	}
	return n
}
