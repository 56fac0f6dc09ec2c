package options

import (
	"context"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/internal/correct"
	"github.com/reeflective/grammar/primitive"
	"github.com/reeflective/grammar/validation"
)

// Opt sets optional properties of a single option.
type Opt func(n *names)

// Alias adds alternative names to an option. Single-letter names
// are used as "-x", longer ones as "--name". Duplicates are ignored.
func Alias(aliases ...string) Opt {
	return func(n *names) {
		for _, alias := range aliases {
			if alias == "" || alias == n.name || contains(n.aliases, alias) {
				continue
			}
			n.aliases = append(n.aliases, alias)
		}
	}
}

// Description sets the description of an option.
func Description(desc string) Opt {
	return func(n *names) { n.description = desc }
}

// names holds the identity of a single option.
type names struct {
	name        string
	aliases     []string
	description string
}

func newNames(name string, opts []Opt) names {
	n := names{name: name}
	for _, opt := range opts {
		opt(&n)
	}

	return n
}

// fullNames returns the primary full name, followed by aliases.
func (n names) fullNames() []string {
	return Flag{Name: n.name, Aliases: n.aliases}.Names()
}

// matches reports whether a flag name (without inline value) denotes this option.
func (n names) matches(flag string, cfg config.Config) bool {
	for _, name := range n.fullNames() {
		if cfg.Equal(flag, name) {
			return true
		}
	}

	return false
}

// typo returns the full name a flag-shaped token is a likely misspelling of.
func (n names) typo(token string, cfg config.Config) (string, bool) {
	flag, _, _ := splitInline(token)

	for i, name := range n.fullNames() {
		raw := n.name
		if i > 0 {
			raw = n.aliases[i-1]
		}

		if len([]rune(raw)) <= cfg.AutoCorrectLimit+1 {
			continue
		}

		if correct.Distance(flag, name, cfg) <= cfg.AutoCorrectLimit {
			return name, true
		}
	}

	return "", false
}

func (n names) corrected(token, suggestion string) *validation.Error {
	return validation.Newf(validation.CorrectedFlag,
		help.Text("The flag "), help.Code(token), help.Text(" is not recognized. Did you mean "),
		help.Code(suggestion), help.Text("?"))
}

func (n names) missing() *validation.Error {
	return validation.Newf(validation.MissingValue,
		help.Text("Expected to find "), help.Code(fullName(n.name)), help.Text(" option."))
}

// term returns the names as shown in help (eg. "-n, --name").
func (n names) term() string {
	var term string

	for i, name := range n.fullNames() {
		if i > 0 {
			term += ", "
		}
		term += name
	}

	return term
}

//
// Single ------------------------------------------------------------------- //
//

type single[A any] struct {
	names
	prim primitive.Primitive[A]
}

// Single returns an option named name (and its aliases), whose value is
// converted by the primitive. Boolean primitives consume no value token.
// The option is required: wrap it with WithDefault or Optional otherwise.
func Single[A any](name string, prim primitive.Primitive[A], opts ...Opt) Options[A] {
	return single[A]{names: newNames(name, opts), prim: prim}
}

func (s single[A]) Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, A, error) {
	var zero A

	for index, token := range tokens {
		if token == EndOfOptions {
			break
		}

		flag, inline, hasInline := splitInline(token)

		if s.matches(flag, cfg) {
			return s.consume(ctx, tokens, index, inline, hasInline, cfg)
		}

		if !isFlagShaped(token) {
			continue
		}

		if suggestion, ok := s.typo(token, cfg); ok {
			return nil, zero, s.corrected(token, suggestion)
		}
	}

	return nil, zero, s.missing()
}

// consume parses the option found at index, and its value.
func (s single[A]) consume(ctx context.Context, tokens []string, index int, inline string, hasInline bool, cfg config.Config) ([]string, A, error) {
	var zero A
	var value *string

	count := 1

	switch {
	case hasInline:
		value = &inline
	case s.prim.IsBool():
	case index+1 < len(tokens):
		value = &tokens[index+1]
		count = 2
	}

	parsed, err := s.prim.Validate(ctx, value, cfg)
	if err != nil {
		if verr, ok := validation.As(err); ok {
			return nil, zero, validation.New(verr.Kind, help.Concat(
				help.P(help.Error(help.Text("Invalid value for option "), help.Code(fullName(s.name)), help.Text(":"))),
				verr.Doc,
			))
		}

		return nil, zero, err
	}

	return without(tokens, index, count), parsed, nil
}

func (s single[A]) Flags() []Flag {
	return []Flag{{
		Name:        s.name,
		Aliases:     s.aliases,
		Description: s.description,
		Type:        s.prim.TypeName(),
		Choices:     s.prim.Choices(),
		Bool:        s.prim.IsBool(),
	}}
}

func (s single[A]) Synopsis() string {
	if s.prim.IsBool() {
		return fullName(s.name)
	}

	return fullName(s.name) + " <" + s.prim.TypeName() + ">"
}

func (s single[A]) Identifier() string { return fullName(s.name) }
func (s single[A]) Help() help.Doc     { return help.DescriptionList(s.definitions()...) }

func (s single[A]) definitions() []help.Definition {
	term := s.term()
	if !s.prim.IsBool() {
		term += " <" + s.prim.TypeName() + ">"
	}

	return []help.Definition{{
		Term:        help.Code(term),
		Description: help.Sequence(help.Pf(s.description), help.P(s.prim.Help())),
	}}
}

func (s single[A]) isOptions() {}

func contains(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}

	return false
}
