package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/bobbot/internal/task"
)

// Saver persists the list after each change.
type Saver interface {
	Save(list *task.List) error
}

// LineReader yields input lines. io.EOF ends the session.
type LineReader interface {
	ReadLine() (string, error)
}

// Session is the command loop over one task list. It owns the list.
//
// A Session is single-threaded: each line is parsed, applied and presented
// before the next one is read.
type Session struct {
	list      *task.List
	saver     Saver
	presenter Presenter
	logger    *log.Logger
	commands  map[string]*Command
}

// NewSession creates a session. saver may be nil to keep tasks in memory;
// logger may be nil to discard diagnostics.
func NewSession(list *task.List, saver Saver, presenter Presenter, logger *log.Logger) *Session {
	if list == nil {
		panic("list is nil")
	}

	if presenter == nil {
		panic("presenter is nil")
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	commands := make(map[string]*Command)
	for _, cmd := range Commands() {
		commands[cmd.Name] = cmd
	}

	return &Session{
		list:      list,
		saver:     saver,
		presenter: presenter,
		logger:    logger,
		commands:  commands,
	}
}

// List returns the session's task list.
func (s *Session) List() *task.List {
	return s.list
}

// Run presents the greeting, handles lines until "bye", end of input or a
// signal, then presents the farewell.
//
// Lines are read one at a time on request by a helper goroutine so a signal
// can end the session while a read is blocked. Handling stays on the calling
// goroutine.
func (s *Session) Run(input LineReader, sigCh <-chan os.Signal) {
	s.presenter.Present(SessionStarted{})

	next := make(chan struct{})
	results := make(chan readResult, 1)

	defer close(next)

	go func() {
		for range next {
			line, err := input.ReadLine()
			results <- readResult{line: line, err: err}
		}
	}()

loop:
	for {
		// A pending signal wins over more input.
		select {
		case sig := <-sigCh:
			s.logger.Debug("stopping on signal", "signal", sig)

			break loop
		default:
		}

		next <- struct{}{}

		select {
		case sig := <-sigCh:
			s.logger.Debug("stopping on signal", "signal", sig)

			break loop
		case res := <-results:
			if res.err != nil {
				if !errors.Is(res.err, io.EOF) {
					s.logger.Error("reading input", "err", res.err)
				}

				break loop
			}

			if s.Handle(res.line) {
				break loop
			}
		}
	}

	s.presenter.Present(SessionEnded{})
}

type readResult struct {
	line string
	err  error
}

// Handle runs one input line. Returns true when the session should end.
func (s *Session) Handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	keyword, rest := task.SplitKeyword(line)

	cmd, ok := s.commands[keyword]
	if !ok || (cmd.Bare && strings.TrimSpace(rest) != "") {
		s.presenter.Present(UnrecognizedCommand{Line: line})

		return false
	}

	return cmd.Exec(s, line)
}

func (s *Session) help(string) bool {
	s.presenter.Present(HelpRequested{})

	return false
}

func (s *Session) listTasks(string) bool {
	s.presenter.Present(ListRequested{Tasks: s.list.All(), Count: s.list.Len()})

	return false
}

func (s *Session) findTasks(line string) bool {
	_, rest := task.SplitKeyword(line)
	keyword := strings.TrimSpace(rest)

	s.presenter.Present(FindResults{Keyword: keyword, Tasks: s.list.Find(keyword)})

	return false
}

func (s *Session) addTask(line string) bool {
	t, err := task.ParseTask(line)
	if err != nil {
		s.presenter.Present(ParseError{Err: err, Count: s.list.Len()})

		return false
	}

	count := s.list.Add(t)
	s.presenter.Present(TaskAdded{Task: t, Count: count})
	s.save()

	return false
}

func (s *Session) perform(line string, op task.Op) bool {
	index, err := task.ParseTaskNumber(line)
	if err != nil {
		s.presenter.Present(ParseError{Err: err, Count: s.list.Len()})

		return false
	}

	t, err := s.list.Apply(index, op)
	if err != nil {
		var indexErr *task.IndexError
		if errors.As(err, &indexErr) {
			s.presenter.Present(IndexOutOfRange{Number: indexErr.Index + 1, Count: indexErr.Len})
		} else {
			s.presenter.Present(ParseError{Err: err, Count: s.list.Len()})
		}

		return false
	}

	switch op {
	case task.OpMark:
		s.presenter.Present(TaskMarked{Task: t})
	case task.OpUnmark:
		s.presenter.Present(TaskUnmarked{Task: t})
	case task.OpDelete:
		s.presenter.Present(TaskDeleted{Task: t, Count: s.list.Len()})
	}

	s.save()

	return false
}

func (s *Session) save() {
	if s.saver == nil {
		return
	}

	err := s.saver.Save(s.list)
	if err != nil {
		s.logger.Error("save failed", "err", err)
		s.presenter.Present(SaveFailed{Err: fmt.Errorf("saving tasks: %w", err)})
	}
}
