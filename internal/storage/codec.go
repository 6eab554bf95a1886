package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/calvinalkan/bobbot/internal/task"
)

// Line prefixes recording the done state.
const (
	prefixDone    = "[X] "
	prefixNotDone = "[ ] "
)

// ErrCorruptLine is returned by Decode for a line it cannot turn back into a task.
var ErrCorruptLine = errors.New("corrupt save file line")

// Encode writes one line per task: the done box followed by the command that
// re-creates the task.
func Encode(list *task.List) []byte {
	var buf bytes.Buffer

	for _, t := range list.All() {
		if t.Done() {
			buf.WriteString(prefixDone)
		} else {
			buf.WriteString(prefixNotDone)
		}

		buf.WriteString(t.Command())
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// Decode replays the lines written by Encode through the task parser.
// Blank lines are skipped.
func Decode(r io.Reader) (*task.List, error) {
	list := task.NewList()
	br := bufio.NewReader(r)
	lineNum := 0

	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("reading save file: %w", readErr)
		}

		if readErr != nil && line == "" {
			break
		}

		lineNum++

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		var done bool

		switch {
		case strings.HasPrefix(line, prefixDone):
			done = true
		case strings.HasPrefix(line, prefixNotDone):
			done = false
		default:
			return nil, fmt.Errorf("%w %d: missing status box", ErrCorruptLine, lineNum)
		}

		t, err := task.ParseTask(line[len(prefixDone):])
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrCorruptLine, lineNum, err)
		}

		if done {
			t.MarkAsDone()
		}

		list.Add(t)
	}

	return list, nil
}
