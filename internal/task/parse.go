package task

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Command keywords that create tasks.
const (
	KeywordTodo     = "todo"
	KeywordDeadline = "deadline"
	KeywordEvent    = "event"
)

// SplitKeyword returns the first whitespace-delimited word of line, lower
// cased, and everything after it untouched.
func SplitKeyword(line string) (string, string) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)

	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		return strings.ToLower(line), ""
	}

	return strings.ToLower(line[:end]), line[end:]
}

// ParseTask builds a task from a todo, deadline or event line.
// Any other keyword returns ErrUnrecognizedCommand.
func ParseTask(line string) (Task, error) {
	keyword, rest := SplitKeyword(line)

	var (
		t   Task
		err error
	)

	switch keyword {
	case KeywordTodo:
		t, err = ParseTodo(rest)
	case KeywordDeadline:
		t, err = ParseDeadline(rest)
	case KeywordEvent:
		t, err = ParseEvent(rest)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedCommand, keyword)
	}

	// Keep a typed nil out of the interface.
	if err != nil {
		return nil, err
	}

	return t, nil
}

// ParseTodo builds a Todo from the text after the keyword.
func ParseTodo(rest string) (*Todo, error) {
	description := strings.TrimSpace(rest)
	if description == "" {
		return nil, ErrEmptyTodoDescription
	}

	return &Todo{base: base{description: description}}, nil
}

// ParseDeadline builds a Deadline from "<summary> /by <by>".
// The first /by wins; later occurrences stay part of the date text.
func ParseDeadline(rest string) (*Deadline, error) {
	at := strings.Index(rest, markerBy)
	if at < 0 {
		return nil, ErrInvalidDeadline
	}

	summary := strings.TrimSpace(rest[:at])
	by := strings.TrimSpace(rest[at+len(markerBy):])

	if summary == "" || by == "" {
		return nil, ErrInvalidDeadline
	}

	return &Deadline{
		base:    base{description: strings.TrimSpace(rest)},
		Summary: summary,
		By:      by,
	}, nil
}

// ParseEvent builds an Event from "<summary> /from <from> /to <to>".
// Both markers use their first occurrence and /from must come first.
func ParseEvent(rest string) (*Event, error) {
	fromAt := strings.Index(rest, markerFrom)
	toAt := strings.Index(rest, markerTo)

	if fromAt < 0 || toAt < 0 || toAt < fromAt {
		return nil, ErrInvalidEvent
	}

	summary := strings.TrimSpace(rest[:fromAt])
	from := strings.TrimSpace(rest[fromAt+len(markerFrom) : toAt])
	to := strings.TrimSpace(rest[toAt+len(markerTo):])

	if summary == "" || from == "" || to == "" {
		return nil, ErrInvalidEvent
	}

	return &Event{
		base:    base{description: strings.TrimSpace(rest)},
		Summary: summary,
		From:    from,
		To:      to,
	}, nil
}

// ParseTaskNumber extracts the task number from a mark, unmark or delete
// line by dropping every non-digit and returns it as a 0-based index.
// "mark 0" yields -1, which the list rejects as out of range.
func ParseTaskNumber(line string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, line)

	if digits == "" {
		return 0, ErrMissingTaskNumber
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingTaskNumber, digits)
	}

	return n - 1, nil
}
