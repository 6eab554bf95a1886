package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/calvinalkan/bobbot/internal/config"
	"github.com/calvinalkan/bobbot/internal/storage"
	"github.com/calvinalkan/bobbot/internal/task"

	flag "github.com/spf13/pflag"
)

// ErrUnknownCommand is returned for a positional argument that is not a
// known subcommand.
var ErrUnknownCommand = errors.New("unknown command")

type globalFlags struct {
	flags    *flag.FlagSet
	help     bool
	cwd      string
	config   string
	dataFile string
	noSave   bool
	logLevel string
}

func newGlobalFlags() *globalFlags {
	g := &globalFlags{flags: flag.NewFlagSet("bob", flag.ContinueOnError)}

	g.flags.SetOutput(&strings.Builder{}) // discard pflag output
	g.flags.SetInterspersed(false)
	g.flags.BoolVarP(&g.help, "help", "h", false, "Show help")
	g.flags.StringVarP(&g.cwd, "cwd", "C", "", "Run as if started in `dir`")
	g.flags.StringVarP(&g.config, "config", "c", "", "Use specified config `file`")
	g.flags.StringVar(&g.dataFile, "data-file", "", "Save tasks to `file`")
	g.flags.BoolVar(&g.noSave, "no-save", false, "Keep tasks in memory only")
	g.flags.StringVar(&g.logLevel, "log-level", "", "Diagnostic log `level` (debug, info, warn, error)")

	return g
}

func (g *globalFlags) input(env map[string]string) config.Input {
	input := config.Input{
		WorkDirOverride:  g.cwd,
		ConfigPath:       g.config,
		NoSave:           g.noSave,
		LogLevelOverride: g.logLevel,
		Env:              env,
	}

	if g.flags.Changed("data-file") {
		input.DataFileOverride = &g.dataFile
	}

	return input
}

// Run is the main entry point. Returns exit code.
//
// Without a subcommand it runs an interactive session over in until "bye",
// end of input, or a signal on sigCh. The session itself always exits 0;
// only startup failures return 1.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	g := newGlobalFlags()

	if len(args) > 0 {
		args = args[1:]
	}

	err := g.flags.Parse(args)
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, g.flags)

		return 1
	}

	if g.help {
		printUsage(out, g.flags)

		return 0
	}

	cfg, err := config.Load(g.input(env))
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut, g.flags)

		return 1
	}

	o := NewIO(out, errOut)

	if rest := g.flags.Args(); len(rest) > 0 {
		if rest[0] == "print-config" {
			execPrintConfig(o, &cfg)

			return 0
		}

		fprintln(errOut, "error:", fmt.Errorf("%w: %s", ErrUnknownCommand, rest[0]))
		fprintln(errOut)
		printUsage(errOut, g.flags)

		return 1
	}

	logger := log.NewWithOptions(errOut, log.Options{
		Level:  cfg.Level(),
		Prefix: "bob",
	})

	list := task.NewList()

	var saver Saver

	if cfg.Save {
		file, openErr := storage.Open(cfg.DataFileAbs, logger)
		if openErr != nil {
			fprintln(errOut, "error:", openErr)

			return 1
		}

		defer func() {
			closeErr := file.Close()
			if closeErr != nil {
				logger.Error("releasing save file", "err", closeErr)
			}
		}()

		list, err = file.Load()
		if err != nil {
			fprintln(errOut, "error:", err)

			return 1
		}

		saver = file
	}

	input := newLineReader(in, cfg.HistoryFileAbs, logger)

	defer func() {
		closeErr := input.Close()
		if closeErr != nil {
			logger.Warn("closing input", "err", closeErr)
		}
	}()

	NewSession(list, saver, NewConsolePresenter(o), logger).Run(input, sigCh)

	return 0
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, flags *flag.FlagSet) {
	fprintln(w, `bob - a personal task tracker

Usage: bob [flags] [print-config]

Reads one command per line from stdin until "bye".

Global flags:`)
	fprintln(w, strings.TrimRight(flags.FlagUsages(), "\n"))
	fprintln(w)
	fprintln(w, "Session commands:")

	for _, cmd := range Commands() {
		fprintln(w, cmd.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Subcommands:")
	fprintln(w, `  print-config                               Show resolved configuration`)
}
