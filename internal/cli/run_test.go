package cli_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/bobbot/internal/cli"
	"github.com/calvinalkan/bobbot/internal/storage"
)

// lastList returns the task lines printed by the final "list" command.
func lastList(t *testing.T, stdout string) []string {
	t.Helper()

	idx := strings.LastIndex(stdout, "Here are the tasks in your list:")
	require.GreaterOrEqual(t, idx, 0, "no list in output:\n%s", stdout)

	var tasks []string

	for _, line := range strings.Split(stdout[idx:], "\n")[1:] {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "___") {
			break
		}

		tasks = append(tasks, line)
	}

	return tasks
}

func Test_Session_Scenario_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun([]string{
		"todo read book",
		"deadline return book /by Sunday",
		"list",
		"mark 1",
		"list",
		"delete 2",
		"list",
		"bye",
	})

	assert.Equal(t, []string{"1. [T][X] read book"}, lastList(t, stdout))

	cli.AssertContains(t, stdout, "Hello! I'm Bob")
	cli.AssertContains(t, stdout, "Got it! I've added this task:\n\t  [T][ ] read book\n\tNow you have 1 task in the list")
	cli.AssertContains(t, stdout, "Now you have 2 tasks in the list")
	cli.AssertContains(t, stdout, "Got it! Marking this task as done:\n\t  [T][X] read book")
	cli.AssertContains(t, stdout, "Got it! Deleting this task:\n\t  [D][ ] return book (by: Sunday)")
	cli.AssertContains(t, stdout, "Bye. Hope to see you again soon!")
}

func Test_Invalid_Deadline_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.RunWithInput([]string{"deadline submit report", "list", "bye"})

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	cli.AssertContains(t, stdout, "ERROR")
	cli.AssertContains(t, stdout, "Usage: deadline <description> /by <date>")
	cli.AssertContains(t, stdout, "Your list is empty.")
	assert.NoFileExists(t, c.DataFile())
}

func Test_Error_Messages_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun([]string{"todo a", "mark 3", "delete", "sing", "find zzz", "bye"})

	cli.AssertContains(t, stdout, "Task index 3 does not exist! Try another number instead.")
	cli.AssertContains(t, stdout, "Missing task number!")
	cli.AssertContains(t, stdout, "Your task list currently has 1 items!")
	cli.AssertContains(t, stdout, "I did not understand that.")
	cli.AssertContains(t, stdout, "mark <n>")
	cli.AssertContains(t, stdout, `No tasks contain "zzz".`)
}

func Test_Tasks_Persist_Across_Sessions_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun([]string{"todo read book", "event party /from 2pm /to 4pm", "mark 2", "bye"})

	assert.Equal(t, "[ ] todo read book\n[X] event party /from 2pm /to 4pm\n", c.ReadDataFile())

	stdout := c.MustRun([]string{"list"})
	assert.Equal(t, []string{"1. [T][ ] read book", "2. [E][X] party (from: 2pm to: 4pm)"}, lastList(t, stdout))
}

func Test_No_Save_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun([]string{"todo read book"}, "--no-save")

	assert.NoFileExists(t, c.DataFile())
}

func Test_Data_File_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun([]string{"todo read book"}, "--data-file", "mine.txt")

	assert.FileExists(t, filepath.Join(c.Dir, "mine.txt"))
	assert.NoFileExists(t, c.DataFile())
}

func Test_Data_File_From_Config_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".bob.json", `{
		// shared with the laptop
		"data_file": "sync/tasks.txt",
	}`)
	c.MustRun([]string{"todo read book"})

	assert.FileExists(t, filepath.Join(c.Dir, "sync", "tasks.txt"))
}

func Test_Corrupt_Data_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(filepath.Join(".bob", "tasks.txt"), "[ ] deadline no date\n")

	stdout, stderr, code := c.RunWithInput([]string{"list"})

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	cli.AssertContains(t, stderr, "corrupt save file line 1")
}

func Test_Locked_Data_File_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	held, err := storage.Open(c.DataFile(), nil)
	require.NoError(t, err)

	defer func() { _ = held.Close() }()

	stdout, stderr, code := c.RunWithInput([]string{"list"})

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	cli.AssertContains(t, stderr, "in use by another session")
}

func Test_Print_Config_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	stdout := c.MustRun(nil, "print-config")
	cli.AssertContains(t, stdout, "effective_cwd="+c.Dir)
	cli.AssertContains(t, stdout, "data_file="+c.DataFile())
	cli.AssertContains(t, stdout, "save=true")
	cli.AssertContains(t, stdout, "(defaults only)")

	c.WriteFile(".bob.json", `{"history_file": ".hist", "log_level": "debug"}`)

	stdout = c.MustRun(nil, "print-config")
	cli.AssertContains(t, stdout, "history_file="+filepath.Join(c.Dir, ".hist"))
	cli.AssertContains(t, stdout, "log_level=debug")
	cli.AssertContains(t, stdout, "project_config="+filepath.Join(c.Dir, ".bob.json"))
}

func Test_Invalid_Global_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.Run("--invalid-flag")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	cli.AssertContains(t, stderr, "unknown flag")
	cli.AssertContains(t, stderr, "--invalid-flag")
	cli.AssertContains(t, stderr, "Global flags:")
	cli.AssertContains(t, stderr, "--data-file")
}

func Test_Unknown_Subcommand_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	_, stderr, code := c.Run("frobnicate")

	assert.Equal(t, 1, code)
	cli.AssertContains(t, stderr, "unknown command: frobnicate")
}

func Test_Invalid_Config_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	_, stderr, code := c.Run("--log-level", "shouty")

	assert.Equal(t, 1, code)
	cli.AssertContains(t, stderr, "invalid log level")
}

func Test_Help_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.Run("--help")

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	cli.AssertContains(t, stdout, "bob - a personal task tracker")
	cli.AssertContains(t, stdout, "--cwd")
	cli.AssertContains(t, stdout, "event <description> /from <start> /to <end>")
}

func Test_Debug_Log_Goes_To_Stderr_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.RunWithInput([]string{"todo a"}, "--log-level", "debug")

	assert.Equal(t, 0, code)
	cli.AssertContains(t, stderr, "saved tasks")
	cli.AssertNotContains(t, stdout, "saved tasks")
}

func Test_Empty_Input_Ends_Session_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun(nil)

	cli.AssertContains(t, stdout, "Hello! I'm Bob")
	cli.AssertContains(t, stdout, "Bye. Hope to see you again soon!")
}

func Test_Long_Input_Line_Does_Not_End_Session_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout, stderr, code := c.RunWithInput([]string{
		"todo " + strings.Repeat("a", 70000),
		"todo short",
		"list",
	})

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	cli.AssertContains(t, stdout, "Now you have 2 tasks in the list")
	assert.Equal(t, "2. [T][ ] short", lastList(t, stdout)[1])

	reloaded := c.MustRun([]string{"list"})
	assert.Len(t, lastList(t, reloaded), 2)
}

func Test_Find_Matches_Inner_Spacing_After_Restart_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun([]string{"deadline a   b /by c", "bye"})

	assert.Equal(t, "[ ] deadline a   b /by c\n", c.ReadDataFile())

	stdout := c.MustRun([]string{"find a   b", "bye"})
	cli.AssertContains(t, stdout, "Here are the matching tasks in your list:")
	cli.AssertNotContains(t, stdout, "No tasks contain")
}
