package cli

import (
	"fmt"

	"github.com/calvinalkan/bobbot/internal/task"
)

// Command is one keyword the session understands.
type Command struct {
	// Name is the keyword, matched case-insensitively against the first word.
	Name string

	// Usage is shown in help, e.g. "mark <n>".
	Usage string

	// Short is a one-line description for help.
	Short string

	// Bare commands take no arguments; "list all" is not "list".
	Bare bool

	// Exec handles the whole trimmed line. Returns true to end the session.
	Exec func(s *Session, line string) bool
}

// HelpLine returns the help listing line.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-42s %s", c.Usage, c.Short)
}

// Commands returns the session commands in help order.
func Commands() []*Command {
	return []*Command{
		{Name: "help", Usage: "help", Short: "Display this help menu", Bare: true, Exec: (*Session).help},
		{Name: "list", Usage: "list", Short: "Show every task", Bare: true, Exec: (*Session).listTasks},
		{Name: task.KeywordTodo, Usage: "todo <description>", Short: "Add something you want to do", Exec: (*Session).addTask},
		{Name: task.KeywordDeadline, Usage: "deadline <description> /by <date>", Short: "Add a deadline you need to meet", Exec: (*Session).addTask},
		{Name: task.KeywordEvent, Usage: "event <description> /from <start> /to <end>", Short: "Add an event you have coming up", Exec: (*Session).addTask},
		{Name: "mark", Usage: "mark <n>", Short: "Mark task n as done", Exec: opExec(task.OpMark)},
		{Name: "unmark", Usage: "unmark <n>", Short: "Mark task n as not done", Exec: opExec(task.OpUnmark)},
		{Name: "delete", Usage: "delete <n>", Short: "Remove task n", Exec: opExec(task.OpDelete)},
		{Name: "find", Usage: "find <keyword>", Short: "Show tasks whose description contains keyword", Exec: (*Session).findTasks},
		{Name: "bye", Usage: "bye", Short: "End the session", Bare: true, Exec: func(*Session, string) bool { return true }},
	}
}

func opExec(op task.Op) func(s *Session, line string) bool {
	return func(s *Session, line string) bool {
		return s.perform(line, op)
	}
}
