package cli

import (
	"iter"

	"github.com/calvinalkan/bobbot/internal/task"
)

// Event is one outcome of a session command, handed to a Presenter.
type Event interface {
	isEvent()
}

// Presenter renders events. It must not change the task list.
type Presenter interface {
	Present(ev Event)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(ev Event)

// Present calls f(ev).
func (f PresenterFunc) Present(ev Event) { f(ev) }

// SessionStarted is sent once before the first line is read.
type SessionStarted struct{}

// SessionEnded is sent once after the last line.
type SessionEnded struct{}

// HelpRequested is sent for "help".
type HelpRequested struct{}

// TaskAdded reports a task appended to the list.
type TaskAdded struct {
	Task  task.Task
	Count int
}

// TaskMarked reports a task set done.
type TaskMarked struct {
	Task task.Task
}

// TaskUnmarked reports a task set not done.
type TaskUnmarked struct {
	Task task.Task
}

// TaskDeleted reports a removed task and the count left.
type TaskDeleted struct {
	Task  task.Task
	Count int
}

// IndexOutOfRange reports a task number the list does not have.
// Number is 1-based, as typed.
type IndexOutOfRange struct {
	Number int
	Count  int
}

// ParseError reports a line that could not become a task or a task number.
// Err matches one of the task.Err* sentinels with errors.Is.
type ParseError struct {
	Err   error
	Count int
}

// UnrecognizedCommand reports a line with an unknown keyword.
type UnrecognizedCommand struct {
	Line string
}

// ListRequested carries the whole list with 1-based numbers.
type ListRequested struct {
	Tasks iter.Seq2[int, task.Task]
	Count int
}

// FindResults carries the tasks matching Keyword with their list numbers.
type FindResults struct {
	Keyword string
	Tasks   iter.Seq2[int, task.Task]
}

// SaveFailed reports a save file write that did not go through.
type SaveFailed struct {
	Err error
}

func (SessionStarted) isEvent()      {}
func (SessionEnded) isEvent()        {}
func (HelpRequested) isEvent()       {}
func (TaskAdded) isEvent()           {}
func (TaskMarked) isEvent()          {}
func (TaskUnmarked) isEvent()        {}
func (TaskDeleted) isEvent()         {}
func (IndexOutOfRange) isEvent()     {}
func (ParseError) isEvent()          {}
func (UnrecognizedCommand) isEvent() {}
func (ListRequested) isEvent()       {}
func (FindResults) isEvent()         {}
func (SaveFailed) isEvent()          {}
