// Package task holds the task model, the command parser that builds tasks
// from input lines, and the ordered list that owns them.
package task

// Kind is the one-letter type tag shown in rendered tasks.
type Kind byte

// Kind tags.
const (
	KindTodo     Kind = 'T'
	KindDeadline Kind = 'D'
	KindEvent    Kind = 'E'
)

func (k Kind) String() string {
	return string(k)
}

// Markers separating the parts of deadline and event lines.
const (
	markerBy   = "/by"
	markerFrom = "/from"
	markerTo   = "/to"
)

// Task is a single entry in the list.
//
// Implementations are created by the parser only; String renders the fixed
// list format and Command returns a line that parses back to an equal task.
type Task interface {
	Kind() Kind
	Description() string
	Done() bool
	MarkAsDone()
	MarkAsUndone()
	Command() string
	String() string
}

type base struct {
	description string
	done        bool
}

func (b *base) Description() string { return b.description }
func (b *base) Done() bool          { return b.done }
func (b *base) MarkAsDone()         { b.done = true }
func (b *base) MarkAsUndone()       { b.done = false }

func (b *base) prefix(kind Kind) string {
	glyph := " "
	if b.done {
		glyph = "X"
	}

	return "[" + kind.String() + "][" + glyph + "] "
}

// Todo is a plain task.
type Todo struct {
	base
}

func (t *Todo) Kind() Kind { return KindTodo }

func (t *Todo) Command() string {
	return KeywordTodo + " " + t.description
}

func (t *Todo) String() string {
	return t.prefix(KindTodo) + t.description
}

// Deadline is a task due by a free-form date.
type Deadline struct {
	base
	Summary string
	By      string
}

func (d *Deadline) Kind() Kind { return KindDeadline }

// Command keeps the description verbatim so inner spacing survives a reload.
func (d *Deadline) Command() string {
	return KeywordDeadline + " " + d.description
}

func (d *Deadline) String() string {
	return d.prefix(KindDeadline) + d.Summary + " (by: " + d.By + ")"
}

// Event is a task spanning a free-form time range.
type Event struct {
	base
	Summary string
	From    string
	To      string
}

func (e *Event) Kind() Kind { return KindEvent }

func (e *Event) Command() string {
	return KeywordEvent + " " + e.description
}

func (e *Event) String() string {
	return e.prefix(KindEvent) + e.Summary + " (from: " + e.From + " to: " + e.To + ")"
}
