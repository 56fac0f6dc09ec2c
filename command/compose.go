package command

import (
	"context"
	"slices"
	"strings"

	"github.com/reeflective/grammar/builtin"
	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/options"
	"github.com/reeflective/grammar/types"
	"github.com/reeflective/grammar/validation"
)

//
// Map ---------------------------------------------------------------------- //
//

type mapped[A, B any] struct {
	Command[A]
	fn func(A) (B, error)
}

// Map returns a command transforming the value of inner with fn.
// Built-in directives are passed through untouched. Errors returned
// by fn become InvalidValue errors, unless they are validation errors.
func Map[A, B any](inner Command[A], fn func(A) (B, error)) Command[B] {
	return mapped[A, B]{Command: inner, fn: fn}
}

func (m mapped[A, B]) parse(ctx context.Context, tokens []string, cfg config.Config, st state) (Directive[B], error) {
	dir, err := m.Command.parse(ctx, tokens, cfg, st)
	if err != nil {
		return nil, err
	}

	switch d := dir.(type) {
	case BuiltIn[A]:
		return BuiltIn[B]{Option: d.Option}, nil

	case UserDefined[A]:
		value, err := m.fn(d.Value)
		if err != nil {
			if verr, ok := validation.As(err); ok {
				return nil, verr
			}

			return nil, validation.Invalid(err.Error())
		}

		return UserDefined[B]{Leftover: d.Leftover, Value: value}, nil
	}

	return nil, unknownDirective(dir)
}

//
// OrElse ------------------------------------------------------------------- //
//

type orElse[A, B any] struct {
	left  Command[A]
	right Command[B]
}

// OrElse returns a command accepting either left or right, tried in order.
func OrElse[A, B any](left Command[A], right Command[B]) Command[types.Either[A, B]] {
	return orElse[A, B]{left: left, right: right}
}

func (o orElse[A, B]) parse(ctx context.Context, tokens []string, cfg config.Config, st state) (Directive[types.Either[A, B]], error) {
	if len(tokens) == 0 {
		return BuiltIn[types.Either[A, B]]{Option: builtin.ShowHelp{Doc: o.Help()}}, nil
	}

	dir, leftErr := o.left.parse(ctx, tokens, cfg, st)
	if leftErr == nil {
		switch d := dir.(type) {
		case BuiltIn[A]:
			return BuiltIn[types.Either[A, B]]{Option: d.Option}, nil
		case UserDefined[A]:
			return UserDefined[types.Either[A, B]]{Leftover: d.Leftover, Value: types.Left[A, B](d.Value)}, nil
		default:
			return nil, unknownDirective(dir)
		}
	}

	left, ok := validation.As(leftErr)
	if !ok {
		return nil, leftErr
	}

	other, rightErr := o.right.parse(ctx, tokens, cfg, st)
	if rightErr == nil {
		switch d := other.(type) {
		case BuiltIn[B]:
			return BuiltIn[types.Either[A, B]]{Option: d.Option}, nil
		case UserDefined[B]:
			return UserDefined[types.Either[A, B]]{Leftover: d.Leftover, Value: types.Right[A](d.Value)}, nil
		default:
			return nil, unknownDirective(other)
		}
	}

	right, ok := validation.As(rightErr)
	if !ok {
		return nil, rightErr
	}

	switch {
	case left.Kind == validation.CommandMismatch && right.Kind == validation.CommandMismatch:
		return nil, mismatch(tokens[0], o.Names(), cfg)
	case right.Kind == validation.CommandMismatch:
		return nil, left
	}

	return nil, right
}

func (o orElse[A, B]) Names() []string {
	return append(o.left.Names(), o.right.Names()...)
}

func (o orElse[A, B]) Synopsis() string {
	return strings.Join(o.Names(), " | ")
}

func (o orElse[A, B]) Help() help.Doc {
	return help.Section("COMMANDS", commandList(o.Info()))
}

func (o orElse[A, B]) Info() []Info {
	return append(o.left.Info(), o.right.Info()...)
}

func (o orElse[A, B]) isCommand() {}

//
// Subcommands -------------------------------------------------------------- //
//

type subcommands[A, B any] struct {
	parent Command[A]
	child  Command[B]
}

// Subcommands returns a command made of parent, followed by one of its
// children (usually an OrElse of several commands). The parent only sees
// the tokens preceding the first child name, so that the child's options
// never satisfy or collide with the parent's ones.
func Subcommands[A, B any](parent Command[A], child Command[B]) Command[types.Pair[A, B]] {
	return subcommands[A, B]{parent: parent, child: child}
}

func (s subcommands[A, B]) parse(ctx context.Context, tokens []string, cfg config.Config, st state) (Directive[types.Pair[A, B]], error) {
	head, tail := s.route(tokens, cfg)

	dir, err := s.parent.parse(ctx, head, cfg, state{keepMarker: true, skipBuiltins: st.skipBuiltins})
	if err != nil {
		return nil, err
	}

	switch d := dir.(type) {
	case BuiltIn[A]:
		if _, ok := d.Option.(builtin.ShowHelp); !ok {
			return BuiltIn[types.Pair[A, B]]{Option: d.Option}, nil
		}

		if child, ok := s.childBuiltin(ctx, head, tail, cfg); ok {
			return child, nil
		}

		return BuiltIn[types.Pair[A, B]]{Option: builtin.ShowHelp{Doc: s.Help()}}, nil

	case UserDefined[A]:
		rest := slices.Concat(d.Leftover, tail)
		if len(rest) == 0 {
			return nil, missingSubcommand(s.child.Names())
		}

		childDir, err := s.child.parse(ctx, rest, cfg, state{keepMarker: st.keepMarker})
		if err != nil {
			return nil, err
		}

		switch c := childDir.(type) {
		case BuiltIn[B]:
			return BuiltIn[types.Pair[A, B]]{Option: c.Option}, nil
		case UserDefined[B]:
			return UserDefined[types.Pair[A, B]]{
				Leftover: c.Leftover,
				Value:    types.PairOf(d.Value, c.Value),
			}, nil
		default:
			return nil, unknownDirective(childDir)
		}
	}

	return nil, unknownDirective(dir)
}

// route splits tokens in front of the first child name, skipping the
// values of parent options. It does not split past the end-of-options
// marker or a built-in option, in which case tail is empty.
func (s subcommands[A, B]) route(tokens []string, cfg config.Config) (head, tail []string) {
	var flags []options.Flag
	for _, info := range s.parent.Info() {
		flags = append(flags, info.Flags...)
	}

	builtins := builtin.Flags()

	for index := 1; index < len(tokens); index++ {
		token := tokens[index]

		switch {
		case token == options.EndOfOptions, findFlag(builtins, token, cfg) != nil:
			return tokens, nil

		case isFlag(token):
			flag := findFlag(flags, token, cfg)
			if flag != nil && !flag.Bool && !strings.Contains(token, "=") {
				index++
			}

		case slices.ContainsFunc(s.child.Names(), func(name string) bool { return cfg.Equal(token, name) }):
			return tokens[:index], tokens[index:]
		}
	}

	return tokens, nil
}

// childBuiltin returns the built-in directive of the child, when the help
// option found by the parent actually belongs to the child (eg. "git -h log").
func (s subcommands[A, B]) childBuiltin(ctx context.Context, head, tail []string, cfg config.Config) (Directive[types.Pair[A, B]], bool) {
	dir, err := s.parent.parse(ctx, head, cfg, state{keepMarker: true, skipBuiltins: true})
	if err != nil {
		return nil, false
	}

	parent, ok := dir.(UserDefined[A])
	if !ok {
		return nil, false
	}

	rest := slices.Concat(parent.Leftover, tail)
	if len(rest) == 0 {
		return nil, false
	}

	childDir, err := s.child.parse(ctx, rest, cfg, state{})
	if err != nil {
		return nil, false
	}

	child, ok := childDir.(BuiltIn[B])
	if !ok {
		return nil, false
	}

	return BuiltIn[types.Pair[A, B]]{Option: child.Option}, true
}

func (s subcommands[A, B]) Names() []string { return s.parent.Names() }

func (s subcommands[A, B]) Synopsis() string { return s.parent.Synopsis() + " <command>" }

func (s subcommands[A, B]) Help() help.Doc {
	return help.Sequence(
		s.parent.Help(),
		help.Section("COMMANDS", commandList(s.child.Info())),
	)
}

func (s subcommands[A, B]) Info() []Info {
	infos := s.parent.Info()
	for i := range infos {
		infos[i].Synopsis = s.Synopsis()
		infos[i].Children = append(infos[i].Children, s.child.Info()...)
	}

	return infos
}

func (s subcommands[A, B]) isCommand() {}
