package command

import (
	"context"
	"slices"

	"github.com/reeflective/grammar/args"
	"github.com/reeflective/grammar/builtin"
	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/options"
	"github.com/reeflective/grammar/types"
)

// Opt sets optional properties of a command.
type Opt func(s *settings)

type settings struct {
	description string
}

// Description sets the description of a command.
func Description(desc string) Opt {
	return func(s *settings) { s.description = desc }
}

type single[O, A any] struct {
	settings
	name string
	opts options.Options[O]
	args args.Args[A]
}

// Single returns a command named name, with the given options and arguments.
// Use options.Empty() and args.None() for commands without any.
func Single[O, A any](name string, opts options.Options[O], arguments args.Args[A], o ...Opt) Command[types.Pair[O, A]] {
	cmd := single[O, A]{name: name, opts: opts, args: arguments}
	for _, opt := range o {
		opt(&cmd.settings)
	}

	return cmd
}

func (s single[O, A]) parse(ctx context.Context, tokens []string, cfg config.Config, st state) (Directive[types.Pair[O, A]], error) {
	if len(tokens) == 0 {
		return BuiltIn[types.Pair[O, A]]{Option: builtin.ShowHelp{Doc: s.Help()}}, nil
	}

	if !cfg.Equal(tokens[0], s.name) {
		return nil, mismatch(tokens[0], s.Names(), cfg)
	}

	before, forwarded, marked := split(tokens[1:])

	if !st.skipBuiltins {
		if option, ok := s.builtinOption(ctx, before, cfg); ok {
			return BuiltIn[types.Pair[O, A]]{Option: option}, nil
		}
	}

	before = options.Uncluster(before, s.opts.Flags(), cfg)

	optsRest, optsValue, err := s.opts.Validate(ctx, before, cfg)
	if err != nil {
		return nil, err
	}

	argsTokens := slices.Concat(optsRest, forwarded)

	leftover, argsValue, err := s.args.Validate(ctx, argsTokens, cfg)
	if err != nil {
		return nil, err
	}

	// Forwarded tokens not consumed are always at the end of the leftover.
	if st.keepMarker && marked {
		kept := min(len(forwarded), len(leftover))
		leftover = slices.Insert(slices.Clone(leftover), len(leftover)-kept, options.EndOfOptions)
	}

	return UserDefined[types.Pair[O, A]]{
		Leftover: leftover,
		Value:    types.PairOf(optsValue, argsValue),
	}, nil
}

// builtinOption looks for a built-in option in tokens, then in tokens with
// clusters expanded, where built-in switches may be mixed with the
// command's ones ("-lh"). Completion words are always taken verbatim.
func (s single[O, A]) builtinOption(ctx context.Context, tokens []string, cfg config.Config) (builtin.Option, bool) {
	if option, err := builtin.Parse(ctx, tokens, s.Help(), cfg); err == nil {
		return option, true
	}

	clustered := options.Uncluster(tokens, slices.Concat(s.opts.Flags(), builtin.Flags()), cfg)
	if slices.Equal(clustered, tokens) {
		return nil, false
	}

	option, err := builtin.Parse(ctx, clustered, s.Help(), cfg)

	return option, err == nil
}

func (s single[O, A]) Names() []string { return []string{s.name} }

func (s single[O, A]) Synopsis() string {
	synopsis := s.name

	for _, part := range []string{s.opts.Synopsis(), s.args.Synopsis()} {
		if part != "" {
			synopsis += " " + part
		}
	}

	return synopsis
}

func (s single[O, A]) Help() help.Doc {
	return help.Sequence(
		help.Section("USAGE", help.P(help.Code(s.Synopsis()))),
		help.Section("DESCRIPTION", help.Pf(s.description)),
		help.Section("ARGUMENTS", s.args.Help()),
		help.Section("OPTIONS", s.opts.Help()),
		help.Section("BUILT-IN OPTIONS", builtin.Help()),
	)
}

func (s single[O, A]) Info() []Info {
	return []Info{{
		Name:        s.name,
		Description: s.description,
		Synopsis:    s.Synopsis(),
		Flags:       s.opts.Flags(),
		Args:        s.args.Info(),
	}}
}

func (s single[O, A]) isCommand() {}

// split splits tokens at the first end-of-options marker, dropping it.
func split(tokens []string) (before, after []string, marked bool) {
	index := slices.Index(tokens, options.EndOfOptions)
	if index < 0 {
		return slices.Clone(tokens), nil, false
	}

	return slices.Clone(tokens[:index]), slices.Clone(tokens[index+1:]), true
}
