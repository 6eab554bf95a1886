package task

import (
	"iter"
	"slices"
	"strings"
)

// Op is an operation addressed to one task by position.
type Op int

// Positional operations.
const (
	OpMark Op = iota
	OpUnmark
	OpDelete
)

func (op Op) String() string {
	switch op {
	case OpMark:
		return "mark"
	case OpUnmark:
		return "unmark"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// List is the ordered collection of tasks. Insertion order is display order.
// All indices taken by List are 0-based; the numbers it yields are 1-based.
//
// A List is not safe for concurrent use.
type List struct {
	tasks []Task
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Add appends t and returns the new count. Panics if t is nil.
func (l *List) Add(t Task) int {
	if t == nil {
		panic("task is nil")
	}

	l.tasks = append(l.tasks, t)

	return len(l.tasks)
}

// Get returns the task at 0-based index.
func (l *List) Get(index int) (Task, error) {
	if index < 0 || index >= len(l.tasks) {
		return nil, &IndexError{Index: index, Len: len(l.tasks)}
	}

	return l.tasks[index], nil
}

// Mark sets the task at index done.
func (l *List) Mark(index int) (Task, error) {
	t, err := l.Get(index)
	if err != nil {
		return nil, err
	}

	t.MarkAsDone()

	return t, nil
}

// Unmark sets the task at index not done.
func (l *List) Unmark(index int) (Task, error) {
	t, err := l.Get(index)
	if err != nil {
		return nil, err
	}

	t.MarkAsUndone()

	return t, nil
}

// Delete removes the task at index and returns it. Later tasks move down by
// one position.
func (l *List) Delete(index int) (Task, error) {
	t, err := l.Get(index)
	if err != nil {
		return nil, err
	}

	l.tasks = slices.Delete(l.tasks, index, index+1)

	return t, nil
}

// Apply runs op on the task at index.
func (l *List) Apply(index int, op Op) (Task, error) {
	switch op {
	case OpMark:
		return l.Mark(index)
	case OpUnmark:
		return l.Unmark(index)
	case OpDelete:
		return l.Delete(index)
	default:
		panic("unknown op: " + op.String())
	}
}

// All yields every task with its 1-based number.
func (l *List) All() iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		for i, t := range l.tasks {
			if !yield(i+1, t) {
				return
			}
		}
	}
}

// Find yields the tasks whose description contains keyword, case-sensitive,
// with their 1-based number in the list. An empty keyword matches all.
func (l *List) Find(keyword string) iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		for n, t := range l.All() {
			if !strings.Contains(t.Description(), keyword) {
				continue
			}

			if !yield(n, t) {
				return
			}
		}
	}
}
