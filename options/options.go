// Package options provides the named flag grammar. Unlike positional
// arguments, options are searched for anywhere in the token vector: a grammar
// skips tokens it does not recognize, and hands them back in their original
// order as part of its leftover.
package options

import (
	"context"
	"strings"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/types"
	"github.com/reeflective/grammar/validation"
)

// EndOfOptions is the token after which no flag is recognized.
const EndOfOptions = "--"

// Options is a flag grammar producing values of type A.
// Options values are immutable and can be reused across parses.
type Options[A any] interface {
	// Validate searches tokens for the options, returning the tokens
	// not consumed, in their original order, and the parsed value.
	// The input slice is never modified.
	Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, A, error)

	// Flags returns all flags declared in the grammar.
	Flags() []Flag

	// Synopsis returns the usage string of the options (eg. "[-l] --name <text>").
	Synopsis() string

	// Identifier returns the flag names used in error messages.
	Identifier() string

	// Help returns a description list of all options.
	Help() help.Doc

	definitions() []help.Definition
	isOptions()
}

// Flag describes a single flag declared in an options grammar.
type Flag struct {
	Name        string
	Aliases     []string
	Description string
	Type        string
	Choices     []string
	Bool        bool
	KeyValue    bool
}

// Names returns the flag's full names, ie. "-x" for single-letter
// names and "--name" for longer ones, primary name first.
func (f Flag) Names() []string {
	names := []string{fullName(f.Name)}
	for _, alias := range f.Aliases {
		names = append(names, fullName(alias))
	}

	return names
}

//
// Empty -------------------------------------------------------------------- //
//

type empty struct{}

// Empty returns a grammar declaring no option.
func Empty() Options[types.Unit] { return empty{} }

func (empty) Validate(_ context.Context, tokens []string, _ config.Config) ([]string, types.Unit, error) {
	return clone(tokens), types.Unit{}, nil
}

func (empty) Flags() []Flag                  { return nil }
func (empty) Synopsis() string               { return "" }
func (empty) Identifier() string             { return "" }
func (empty) Help() help.Doc                 { return help.Empty() }
func (empty) definitions() []help.Definition { return nil }
func (empty) isOptions()                     {}

//
// Helpers ------------------------------------------------------------------ //
//

func fullName(name string) string {
	if len([]rune(name)) == 1 {
		return "-" + name
	}

	return "--" + name
}

// splitInline splits a "--name=value" token.
func splitInline(token string) (name, value string, inline bool) {
	if !strings.HasPrefix(token, "--") {
		return token, "", false
	}

	name, value, inline = strings.Cut(token, "=")

	return name, value, inline
}

func isFlagShaped(token string) bool {
	return strings.HasPrefix(token, "-") && token != "-"
}

func clone(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{}
	}

	return append([]string(nil), tokens...)
}

// without returns tokens minus the count tokens starting at index.
func without(tokens []string, index, count int) []string {
	rest := make([]string, 0, len(tokens)-count)
	rest = append(rest, tokens[:index]...)

	return append(rest, tokens[index+count:]...)
}

// isFatal reports whether err aborts parsing instead of being a validation failure.
func isFatal(err error) bool {
	_, ok := validation.As(err)
	return !ok
}
