package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
)

const prompt = "> "

// bufReader reads lines from a plain reader (pipes, files, tests).
// Lines have no length limit.
type bufReader struct {
	r *bufio.Reader
}

func newBufReader(r io.Reader) *bufReader {
	if r == nil {
		r = strings.NewReader("")
	}

	return &bufReader{r: bufio.NewReader(r)}
}

func (r *bufReader) ReadLine() (string, error) {
	line, err := r.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (r *bufReader) Close() error {
	return nil
}

// promptState is the part of *liner.State used by linerReader.
type promptState interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	WriteHistory(w io.Writer) (int, error)
	Close() error
}

// linerReader reads from a terminal with line editing, completion and history.
//
// Close may run while a Prompt is still blocked on another goroutine (a
// signal ended the session). The state is then left alone and only the
// saved terminal mode is restored; history from that session is not written.
type linerReader struct {
	state       promptState
	restore     func() error
	historyPath string
	logger      *log.Logger

	mu      sync.Mutex
	closed  bool
	reading bool
}

func newLinerReader(f *os.File, historyPath string, commands []*Command, logger *log.Logger) *linerReader {
	restore := func() error { return nil }

	saved, err := term.GetState(f.Fd())
	if err == nil {
		restore = func() error { return term.Restore(f.Fd(), saved) }
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetCompleter(func(line string) []string {
		var completions []string

		lower := strings.ToLower(line)
		for _, cmd := range commands {
			if strings.HasPrefix(cmd.Name, lower) {
				completions = append(completions, cmd.Name)
			}
		}

		return completions
	})

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, readErr := state.ReadHistory(f)
			if readErr != nil {
				logger.Warn("reading history", "path", historyPath, "err", readErr)
			}

			_ = f.Close()
		}
	}

	return &linerReader{state: state, restore: restore, historyPath: historyPath, logger: logger}
}

func (r *linerReader) ReadLine() (string, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()

		return "", io.EOF
	}

	r.reading = true
	r.mu.Unlock()

	line, err := r.state.Prompt(prompt)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.reading = false

	if r.closed {
		return "", io.EOF
	}

	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}

		return "", err
	}

	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}

	return line, nil
}

// Close saves history and restores the terminal.
func (r *linerReader) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()

		return nil
	}

	r.closed = true
	reading := r.reading
	r.mu.Unlock()

	if reading {
		r.logger.Debug("prompt still active, skipping history")

		return r.restore()
	}

	defer func() { _ = r.state.Close() }()

	if r.historyPath == "" {
		return nil
	}

	var buf bytes.Buffer

	_, err := r.state.WriteHistory(&buf)
	if err != nil {
		return fmt.Errorf("collecting history: %w", err)
	}

	err = atomic.WriteFile(r.historyPath, &buf)
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}

	r.logger.Debug("saved history", "path", r.historyPath)

	return nil
}

// lineReaderCloser is a LineReader owned by Run.
type lineReaderCloser interface {
	LineReader
	Close() error
}

// newLineReader picks liner for an interactive terminal on stdin and a plain
// scanner for everything else.
func newLineReader(in io.Reader, historyPath string, logger *log.Logger) lineReaderCloser {
	if f, ok := in.(*os.File); ok && f == os.Stdin && term.IsTerminal(f.Fd()) && liner.TerminalSupported() {
		return newLinerReader(f, historyPath, Commands(), logger)
	}

	return newBufReader(in)
}
