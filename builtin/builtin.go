// Package builtin provides the options recognized by every command ahead
// of its own grammar: help, the interactive wizard, dynamic completions and
// completion script generation. Built-in options win over user options
// and over any error in the rest of the command line.
package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/options"
	"github.com/reeflective/grammar/primitive"
	"github.com/reeflective/grammar/validation"
)

// ErrUnknownShell is returned for a shell without completion support.
var ErrUnknownShell = errors.New("unsupported shell")

// Shell is a shell for which completions can be generated.
type Shell string

const (
	Sh   Shell = "sh"
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
)

// Shells returns all supported shells.
func Shells() []Shell { return []Shell{Sh, Bash, Zsh} }

// ParseShell returns the shell named name.
func ParseShell(name string) (Shell, error) {
	for _, shell := range Shells() {
		if string(shell) == name {
			return shell, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownShell, name)
}

// Option is a built-in option found on the command line.
type Option interface {
	isOption()
}

// ShowHelp requests the help of the command it was found on.
type ShowHelp struct {
	Doc help.Doc
}

// Wizard requests an interactive construction of the command line.
type Wizard struct{}

// ShowCompletions requests completions for the shell words being typed.
// Index is the position of the word being completed, or -1 when unknown.
// Words are the words given after the built-in option, if any.
type ShowCompletions struct {
	Shell Shell
	Index int
	Words []string
}

// ShowCompletionScript requests the completion script of a shell,
// calling back the executable at Path.
type ShowCompletionScript struct {
	Path  string
	Shell Shell
}

func (ShowHelp) isOption()             {}
func (Wizard) isOption()               {}
func (ShowCompletions) isOption()      {}
func (ShowCompletionScript) isOption() {}

//
// Grammar ------------------------------------------------------------------ //
//

func shellCases() []primitive.Case[Shell] {
	cases := make([]primitive.Case[Shell], 0, len(Shells()))
	for _, shell := range Shells() {
		cases = append(cases, primitive.CaseOf(string(shell), shell))
	}

	return cases
}

var (
	helpOption = options.Bool("help", options.Alias("h"),
		options.Description("Show the help of the command."))

	wizardOption = options.Bool("wizard",
		options.Description("Build the command line interactively."))

	completionsOption = options.Zip(
		options.Choice("completions", shellCases(),
			options.Description("Print completions for the words given after the shell, or found in COMP_WORD_<n> variables.")),
		options.WithDefault(options.Integer("shell-completion-index",
			options.Description("Index of the word being completed.")), -1),
	)

	scriptOption = options.Zip(
		options.Text("shell-completion-script",
			options.Description("Print a completion script calling back the given executable.")),
		options.Choice("shell-type", shellCases(),
			options.Description("Shell of the completion script.")),
	)
)

// Parse searches tokens for a built-in option. The help document is
// carried by the ShowHelp option when found. A failure is a validation
// error that callers usually ignore, in favor of their own grammar.
func Parse(ctx context.Context, tokens []string, doc help.Doc, cfg config.Config) (Option, error) {
	rest, completions, err := completionsOption.Validate(ctx, tokens, cfg)
	if err == nil {
		return ShowCompletions{
			Shell: completions.First,
			Index: int(completions.Second),
			Words: rest,
		}, nil
	}

	if _, script, err := scriptOption.Validate(ctx, tokens, cfg); err == nil {
		return ShowCompletionScript{Path: script.First, Shell: script.Second}, nil
	}

	if _, wizard, err := wizardOption.Validate(ctx, tokens, cfg); err == nil && wizard {
		return Wizard{}, nil
	}

	if _, show, err := helpOption.Validate(ctx, tokens, cfg); err == nil && show {
		return ShowHelp{Doc: doc}, nil
	}

	return nil, validation.Missing("No built-in option found.")
}

// Flags returns the flags of all built-in options.
func Flags() []options.Flag {
	var flags []options.Flag

	flags = append(flags, helpOption.Flags()...)
	flags = append(flags, wizardOption.Flags()...)
	flags = append(flags, completionsOption.Flags()...)

	return append(flags, scriptOption.Flags()...)
}

// Help returns the description of all built-in options.
func Help() help.Doc {
	return help.Concat(helpOption.Help(), wizardOption.Help(), completionsOption.Help(), scriptOption.Help())
}
