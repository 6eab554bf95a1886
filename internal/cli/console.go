package cli

import (
	"errors"
	"iter"
	"strconv"

	"github.com/calvinalkan/bobbot/internal/task"
)

const (
	ruleBody  = "______________________________________________________________________________"
	ruleError = "\t********************************ERROR*****************************************"
)

// ConsolePresenter renders events as the indented, ruled text of the
// interactive session.
type ConsolePresenter struct {
	io       *IO
	commands []*Command
}

// NewConsolePresenter creates a presenter writing through o.
func NewConsolePresenter(o *IO) *ConsolePresenter {
	return &ConsolePresenter{io: o, commands: Commands()}
}

// Present renders ev.
func (p *ConsolePresenter) Present(ev Event) {
	switch e := ev.(type) {
	case SessionStarted:
		p.io.Println("________" + ruleBody)
		p.io.Println("Hello! I'm Bob, your TODO list keeper")
		p.io.Println("Add a todo, deadline or event and I will store it for you!")
		p.io.Println("Type 'help' to see everything I can do.")
		p.io.Println("________" + ruleBody)
	case SessionEnded:
		p.box("Bye. Hope to see you again soon!")
	case HelpRequested:
		p.rule()
		p.printHelp()
		p.rule()
	case TaskAdded:
		p.box("Got it! I've added this task:", "  "+e.Task.String(), countLine(e.Count))
		p.io.Println()
	case TaskMarked:
		p.box("Got it! Marking this task as done:", "  "+e.Task.String())
	case TaskUnmarked:
		p.box("Got it! Unmarking this task:", "  "+e.Task.String())
	case TaskDeleted:
		p.box("Got it! Deleting this task:", "  "+e.Task.String(), countLine(e.Count))
	case IndexOutOfRange:
		p.errorBox(
			"Operation failed.",
			"Task index "+strconv.Itoa(e.Number)+" does not exist! Try another number instead.",
			"Your task list currently has "+strconv.Itoa(e.Count)+" items!",
		)
	case ParseError:
		p.errorBox(parseErrorLines(e)...)
	case UnrecognizedCommand:
		p.io.Println(ruleError)
		p.io.Println("\tI did not understand that. Refer to the help manual for information on")
		p.io.Println("\tkeying in the right commands!")
		p.rule()
		p.printHelp()
		p.rule()
		p.io.Println(ruleError)
	case ListRequested:
		p.printTasks("Here are the tasks in your list:", "Your list is empty. Add a todo to get started!", e.Tasks)
	case FindResults:
		p.printTasks("Here are the matching tasks in your list:", "No tasks contain \""+e.Keyword+"\".", e.Tasks)
	case SaveFailed:
		p.io.Warn(e.Err.Error(), "changes are kept for this session only")
	}
}

func (p *ConsolePresenter) printTasks(header, empty string, tasks iter.Seq2[int, task.Task]) {
	p.rule()

	found := false

	for n, t := range tasks {
		if !found {
			p.io.Println("\t" + header)

			found = true
		}

		p.io.Printf("\t%d. %s\n", n, t)
	}

	if !found {
		p.io.Println("\t" + empty)
	}

	p.rule()
}

func (p *ConsolePresenter) printHelp() {
	p.io.Println("\tHere are the options available to you:")

	for _, cmd := range p.commands {
		p.io.Println("\t" + cmd.HelpLine())
	}
}

func (p *ConsolePresenter) rule() {
	p.io.Println("\t" + ruleBody)
}

func (p *ConsolePresenter) box(lines ...string) {
	p.rule()

	for _, line := range lines {
		p.io.Println("\t" + line)
	}

	p.rule()
}

func (p *ConsolePresenter) errorBox(lines ...string) {
	p.io.Println(ruleError)

	for _, line := range lines {
		p.io.Println("\t" + line)
	}

	p.io.Println(ruleError)
}

func parseErrorLines(e ParseError) []string {
	switch {
	case errors.Is(e.Err, task.ErrEmptyTodoDescription):
		return []string{"The description of a todo cannot be empty.", "Usage: todo <description>"}
	case errors.Is(e.Err, task.ErrInvalidDeadline):
		return []string{"A deadline needs a description and a date.", "Usage: deadline <description> /by <date>"}
	case errors.Is(e.Err, task.ErrInvalidEvent):
		return []string{
			"An event needs a description, a start and an end, with /from before /to.",
			"Usage: event <description> /from <start> /to <end>",
		}
	case errors.Is(e.Err, task.ErrMissingTaskNumber):
		return []string{
			"Missing task number!",
			"Your task list currently has " + strconv.Itoa(e.Count) + " items!",
			"",
			"Usage: mark {task number}",
			"Usage: unmark {task number}",
			"Usage: delete {task number}",
			"Please enter a valid number within the range of your list.",
		}
	default:
		return []string{"There was an error: " + e.Err.Error()}
	}
}

func countLine(n int) string {
	if n == 1 {
		return "Now you have 1 task in the list"
	}

	return "Now you have " + strconv.Itoa(n) + " tasks in the list"
}
