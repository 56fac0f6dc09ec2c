// Package command composes options and arguments into named commands and
// subcommand trees, and turns a raw command line into a Directive: either
// a built-in action to perform (help, wizard, completions) or the typed
// value of the command line.
package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reeflective/grammar/args"
	"github.com/reeflective/grammar/builtin"
	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/internal/correct"
	"github.com/reeflective/grammar/options"
	"github.com/reeflective/grammar/validation"
)

// Command is a command grammar producing values of type A.
// Command values are immutable and can be reused across parses.
type Command[A any] interface {
	// Names returns the names accepted as first token.
	Names() []string

	// Synopsis returns the usage line of the command.
	Synopsis() string

	// Help returns the help document of the command.
	Help() help.Doc

	// Info returns the description tree of the command alternatives.
	Info() []Info

	parse(ctx context.Context, tokens []string, cfg config.Config, st state) (Directive[A], error)
	isCommand()
}

// Info describes a command, for help listings, completions and wizards.
type Info struct {
	Name        string
	Description string
	Synopsis    string
	Flags       []options.Flag
	Args        []args.Info
	Children    []Info
}

// ErrUnknownDirective is returned when a command yields a directive
// which is neither a BuiltIn nor a UserDefined.
var ErrUnknownDirective = errors.New("unknown directive")

// state carries parse settings which only make sense inside a command tree.
type state struct {
	// keepMarker keeps the end-of-options marker in the leftover,
	// in front of forwarded tokens not consumed by the arguments.
	keepMarker bool

	// skipBuiltins disables the built-in options pre-pass.
	skipBuiltins bool
}

// Parse parses the tokens of a command line, including the command name.
// The result is either a BuiltIn or a UserDefined directive, or an error.
// Errors are *validation.Error, except for fatal errors from filesystem
// probes, which wrap primitive.ErrProbe.
func Parse[A any](ctx context.Context, cmd Command[A], tokens []string, cfg config.Config) (Directive[A], error) {
	return cmd.parse(ctx, tokens, cfg, state{})
}

//
// Directives --------------------------------------------------------------- //
//

// Directive is the result of a successful parse: a BuiltIn or a UserDefined.
type Directive[A any] interface {
	isDirective(A)
}

// BuiltIn is a directive requesting a built-in action.
type BuiltIn[A any] struct {
	Option builtin.Option
}

// UserDefined is a directive holding the value of the command line,
// and the tokens that were not consumed by the grammar.
type UserDefined[A any] struct {
	Leftover []string
	Value    A
}

func (BuiltIn[A]) isDirective(A)     {}
func (UserDefined[A]) isDirective(A) {}

//
// Errors ------------------------------------------------------------------- //
//

func mismatch(token string, names []string, cfg config.Config) *validation.Error {
	spans := []help.Span{help.Text("Unexpected command "), help.Code("'" + token + "'"), help.Text(".")}

	if suggestion, ok := correct.Suggest(token, names, cfg); ok {
		spans = append(spans, help.Text(" Did you mean "), help.Code("'"+suggestion+"'"), help.Text("?"))
	}

	return validation.Newf(validation.CommandMismatch, spans...)
}

func unknownDirective(dir any) error {
	return fmt.Errorf("%w: %T", ErrUnknownDirective, dir)
}

func missingSubcommand(names []string) *validation.Error {
	return validation.Newf(validation.MissingSubcommand,
		help.Text("Missing subcommand. Expected one of: "), help.Code(strings.Join(names, ", ")), help.Text("."))
}

func commandList(infos []Info) help.Doc {
	defs := make([]help.Definition, 0, len(infos))

	for _, info := range infos {
		defs = append(defs, help.Definition{
			Term:        help.Code(info.Synopsis),
			Description: help.Pf(info.Description),
		})
	}

	return help.DescriptionList(defs...)
}

// findFlag returns the flag named by a token, ignoring any inline value.
func findFlag(flags []options.Flag, token string, cfg config.Config) *options.Flag {
	name, _, _ := strings.Cut(token, "=")

	for i := range flags {
		for _, full := range flags[i].Names() {
			if cfg.Equal(name, full) {
				return &flags[i]
			}
		}
	}

	return nil
}

func isFlag(token string) bool {
	return strings.HasPrefix(token, "-") && token != "-" && token != options.EndOfOptions
}
