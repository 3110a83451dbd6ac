// Package main is the entry point for the vimode replay tool.
//
// vimode loads a text, feeds it a key sequence and prints the resulting
// mode, selections and buffer:
//
//	vimode -file poem.txt -caret 15 -keys 'vedx1v'
//
// With -tty it then reads keys from the terminal until Ctrl-C.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/vimode/internal/config"
	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/logger"
	"github.com/dshills/vimode/internal/plugin/lua"
	"github.com/dshills/vimode/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// errUsage reports bad flags; the message has already been printed.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// caretList collects repeated -caret flags.
type caretList []buffer.ByteOffset

func (c *caretList) String() string {
	parts := make([]string, len(*c))
	for i, off := range *c {
		parts[i] = strconv.Itoa(int(off))
	}
	return strings.Join(parts, ",")
}

func (c *caretList) Set(v string) error {
	for _, f := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 0 {
			return fmt.Errorf("invalid caret offset %q", f)
		}
		*c = append(*c, buffer.ByteOffset(n))
	}
	return nil
}

type options struct {
	configPath  string
	file        string
	text        string
	keys        string
	script      string
	set         string
	logLevel    string
	logFile     string
	debug       bool
	showVersion bool
	tty         bool
	watch       bool
	carets      caretList
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("vimode", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "Path to an options file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to an options file (shorthand)")
	fs.StringVar(&opts.file, "file", "", "File to edit")
	fs.StringVar(&opts.file, "f", "", "File to edit (shorthand)")
	fs.StringVar(&opts.text, "text", "", "Text to edit when no file is given")
	fs.StringVar(&opts.keys, "keys", "", "Keys to replay in Vim notation")
	fs.StringVar(&opts.keys, "k", "", "Keys to replay (shorthand)")
	fs.Var(&opts.carets, "caret", "Caret byte offset (repeatable or comma separated)")
	fs.StringVar(&opts.script, "script", "", "Lua script run after the keys")
	fs.StringVar(&opts.set, "set", "", "Options in :set syntax, e.g. 'selectmode=cmd'")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "Log file (default stderr)")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.tty, "tty", false, "Read keys from the terminal after the replay")
	fs.BoolVar(&opts.watch, "watch", false, "Reload the -config file when it changes (with -tty)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "vimode - replay Vim mode transitions\n\n")
		fmt.Fprintf(stderr, "Usage: vimode [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  vimode -text 'I found it' -caret 2 -keys 've'\n")
		fmt.Fprintf(stderr, "  vimode -f poem.txt -caret 15 -caret 58 -keys 'vedx1v'\n")
		fmt.Fprintf(stderr, "  vimode -f poem.txt -set selectmode=cmd -keys 'v'\n")
		fmt.Fprintf(stderr, "  vimode -f poem.txt -c opts.toml -watch -tty\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, err
		}
		return opts, errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments %q\n", fs.Args())
		return opts, errUsage
	}
	if opts.watch && (opts.configPath == "" || !opts.tty) {
		fmt.Fprintf(stderr, "Error: -watch needs -config and -tty\n")
		return opts, errUsage
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "vimode %s (%s)\n", version, commit)
		return 0
	}

	values, err := loadOptions(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level := values.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	if opts.debug {
		level = "debug"
	}
	if err := logger.Init(level, opts.logFile); err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize logging: %v\n", err)
		return 1
	}
	defer logger.Close()

	text := opts.text
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		text = string(data)
	}

	store := config.NewStore(values)
	sess := session.New(text,
		session.WithOptions(store),
		session.WithLogger(logger.L()),
		session.WithCarets(opts.carets...),
	)
	defer sess.Close()

	logger.L().Info("replaying keys",
		zap.String("file", opts.file),
		zap.String("keys", opts.keys),
		zap.Int("carets", len(opts.carets)))

	if err := sess.Type(opts.keys); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.script != "" {
		if err := runScript(opts.script, sess); err != nil {
			fmt.Fprintf(stderr, "Error: script %s: %v\n", opts.script, err)
			return 1
		}
	}

	if opts.tty {
		if opts.watch {
			w, err := watchOptions(opts.configPath, store)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return 1
			}
			defer w.Close()
		}
		screen, err := tcell.NewScreen()
		if err == nil {
			err = screen.Init()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: terminal: %v\n", err)
			return 1
		}
		interact(screen, sess)
		screen.Fini()
	}

	report(stdout, sess)
	return 0
}

// watchOptions reloads path into store on every change. Reloads layer the
// file over the defaults; failures keep the current options.
func watchOptions(path string, store *config.Store) (*config.Watcher, error) {
	log := logger.L().With(zap.String("config", path))
	w, err := config.Watch(path, config.Default(), store, func(err error) {
		log.Warn("options reload failed", zap.Error(err))
	})
	if err != nil {
		return nil, err
	}
	log.Info("watching options file")
	return w, nil
}

// loadOptions layers defaults, the options file, the environment and
// -set, in that order.
func loadOptions(opts options) (config.Options, error) {
	values := config.Default()
	var err error
	if opts.configPath != "" {
		if values, err = config.Load(opts.configPath, values); err != nil {
			return values, err
		}
	}
	if values, err = config.LoadEnv(values); err != nil {
		return values, err
	}
	if opts.set != "" {
		if values, err = config.ParseSet(values, opts.set); err != nil {
			return values, err
		}
	}
	return values, nil
}

func runScript(path string, sess *session.Session) error {
	state := lua.NewState(lua.WithStateLogger(logger.L()))
	defer state.Close()

	if err := state.Register(lua.NewModeModule(sess)); err != nil {
		return err
	}
	return state.DoFile(path)
}

// report prints the mode, one line per selection and the buffer.
func report(w io.Writer, sess *session.Session) {
	m := sess.CurrentMode()
	fmt.Fprintf(w, "mode: %s %q\n", m, m.DisplayText())

	texts := sess.SelectedText()
	for i, sel := range sess.CurrentSelections() {
		fmt.Fprintf(w, "caret %d: anchor=%d head=%d range=[%d,%d)",
			sel.Caret, sel.Anchor, sel.Head, sel.Range.Start, sel.Range.End)
		if i < len(texts) {
			fmt.Fprintf(w, " text=%q", texts[i])
		}
		fmt.Fprintln(w)
	}
	if reg, ok := sess.Register(0); ok {
		fmt.Fprintf(w, "register: %q\n", reg.Text())
	}
	fmt.Fprintf(w, "text: %q\n", sess.Text())
}
