package task

import (
	"errors"
	"fmt"
)

// Error variables for parsing and list operations.
var (
	ErrEmptyTodoDescription = errors.New("todo description cannot be empty")
	ErrInvalidDeadline      = errors.New("deadline needs a description and a /by date")
	ErrInvalidEvent         = errors.New("event needs a description, a /from time and a /to time")
	ErrUnrecognizedCommand  = errors.New("unrecognized command")
	ErrMissingTaskNumber    = errors.New("missing or invalid task number")
	ErrIndexOutOfRange      = errors.New("task index out of range")
)

// IndexError reports a lookup at a position the list does not have.
// Index is 0-based; Error renders it 1-based the way the user typed it.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("task index %d does not exist (list has %d tasks)", e.Index+1, e.Len)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) hold for every IndexError.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
