// Package app runs a command grammar as a program: it parses the command
// line, performs built-in directives (help, wizard, completions, scripts)
// and hands the parsed value to the program handler.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/shlex"

	"github.com/reeflective/grammar/builtin"
	"github.com/reeflective/grammar/command"
	"github.com/reeflective/grammar/completion"
	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/validation"
)

// Exit codes returned by runners.
const (
	ExitOK    = 0
	ExitError = 1
)

// ErrUnexpectedArgs is returned when the command line has tokens left
// over after parsing, and the runner does not allow it.
var ErrUnexpectedArgs = errors.New("unexpected arguments")

// Handler is called with the value of a successfully parsed command line.
type Handler[A any] func(ctx context.Context, value A, leftover []string) error

// Option configures a Runner.
type Option func(*settings)

type settings struct {
	cfg           config.Config
	logger        *slog.Logger
	stdin         io.Reader
	stdout        io.Writer
	stderr        io.Writer
	environ       []string
	allowLeftover bool
	mode          *help.Mode
}

// WithConfig sets the parsing configuration (config.Default() otherwise).
func WithConfig(cfg config.Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithLogger sets the logger of the runner. If not provided, logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithIO sets the streams used by the runner (the process ones otherwise).
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(s *settings) {
		s.stdin = stdin
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithEnviron sets the environment in which completion words are searched.
func WithEnviron(environ []string) Option {
	return func(s *settings) { s.environ = environ }
}

// WithHelpMode forces the rendering mode of help and errors, which
// is otherwise detected from the output streams.
func WithHelpMode(mode help.Mode) Option {
	return func(s *settings) { s.mode = &mode }
}

// AllowLeftover passes unconsumed tokens to the handler
// instead of failing with ErrUnexpectedArgs.
func AllowLeftover() Option {
	return func(s *settings) { s.allowLeftover = true }
}

// Runner runs a command grammar as a program.
type Runner[A any] struct {
	settings
	cmd     command.Command[A]
	handler Handler[A]
}

// New returns a runner for cmd, calling handler with parsed values.
func New[A any](cmd command.Command[A], handler Handler[A], opts ...Option) *Runner[A] {
	r := &Runner[A]{
		settings: settings{
			cfg:     config.Default(),
			logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			stdin:   os.Stdin,
			stdout:  os.Stdout,
			stderr:  os.Stderr,
			environ: os.Environ(),
		},
		cmd:     cmd,
		handler: handler,
	}

	for _, opt := range opts {
		opt(&r.settings)
	}

	return r
}

// Run runs the program with the arguments following the program name
// (eg. os.Args[1:]), and returns the exit code of the process.
func (r *Runner[A]) Run(ctx context.Context, arguments []string) int {
	return r.run(ctx, append([]string{r.program()}, arguments...))
}

// RunLine runs a whole command line, program name included, split
// into words the way a POSIX shell would (quotes, escapes).
func (r *Runner[A]) RunLine(ctx context.Context, line string) int {
	tokens, err := shlex.Split(line)
	if err != nil {
		return r.fail(fmt.Errorf("invalid command line: %w", err))
	}

	return r.run(ctx, tokens)
}

func (r *Runner[A]) run(ctx context.Context, tokens []string) int {
	r.logger.Debug("parsing command line", slog.Any("tokens", tokens))

	dir, err := command.Parse(ctx, r.cmd, tokens, r.cfg)
	if err != nil {
		return r.fail(err)
	}

	switch d := dir.(type) {
	case command.BuiltIn[A]:
		return r.builtin(ctx, d.Option)

	case command.UserDefined[A]:
		r.logger.Debug("running command", slog.Int("leftover", len(d.Leftover)))

		if len(d.Leftover) > 0 && !r.allowLeftover {
			return r.fail(validation.Newf(validation.InvalidValue,
				help.Text("Unexpected arguments: "), help.Code(strings.Join(d.Leftover, " ")), help.Text(".")))
		}

		if err := r.handler(ctx, d.Value, d.Leftover); err != nil {
			return r.fail(err)
		}
	}

	return ExitOK
}

func (r *Runner[A]) builtin(ctx context.Context, option builtin.Option) int {
	switch opt := option.(type) {
	case builtin.ShowHelp:
		r.logger.Debug("showing help")
		r.print(r.stdout, opt.Doc)

	case builtin.ShowCompletions:
		words := opt.Words
		if len(words) == 0 {
			words = completion.WordsFromEnv(r.environ)
		}

		index := opt.Index
		if index < 0 {
			index = len(words) - 1
		}

		r.logger.Debug("showing completions", slog.String("shell", string(opt.Shell)), slog.Int("index", index))

		for _, candidate := range completion.Complete(r.cmd.Info(), words, index, r.cfg) {
			fmt.Fprintln(r.stdout, candidate)
		}

	case builtin.ShowCompletionScript:
		r.logger.Debug("showing completion script", slog.String("shell", string(opt.Shell)))

		if err := completion.WriteScript(r.stdout, opt.Path, r.program(), opt.Shell); err != nil {
			return r.fail(err)
		}

	case builtin.Wizard:
		r.logger.Debug("starting wizard")

		tokens, err := r.wizard(ctx)
		if err != nil {
			return r.fail(err)
		}

		return r.run(ctx, tokens)
	}

	return ExitOK
}

// fail reports an error and returns the error exit code.
func (r *Runner[A]) fail(err error) int {
	r.logger.Debug("command failed", slog.String("err", err.Error()))

	if verr, ok := validation.As(err); ok {
		r.print(r.stderr, verr.Doc)
	} else {
		fmt.Fprintf(r.stderr, "Error: %s\n", err)
	}

	return ExitError
}

func (r *Runner[A]) print(w io.Writer, doc help.Doc) {
	mode, width := help.Plain, 0

	if file, ok := w.(interface{ Fd() uintptr }); ok {
		mode = help.ModeFor(int(file.Fd()))
		width = help.WidthFor(int(file.Fd()))
	}

	if r.mode != nil {
		mode = *r.mode
	}

	fmt.Fprint(w, help.RenderWidth(doc, mode, width))
}

func (r *Runner[A]) program() string {
	if names := r.cmd.Names(); len(names) > 0 {
		return names[0]
	}

	return ""
}
