// Package args provides the positional argument grammar: combinators that
// consume a strict prefix of a token vector, left to right, without any
// backtracking across positional arguments.
package args

import (
	"context"
	"fmt"
	"strconv"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/internal/check"
	"github.com/reeflective/grammar/primitive"
	"github.com/reeflective/grammar/types"
	"github.com/reeflective/grammar/validation"
)

// Unbounded is the maximum size of grammars accepting any number of tokens.
const Unbounded = -1

// Args is a positional argument grammar producing values of type A.
// Args values are immutable and can be reused across parses.
type Args[A any] interface {
	// Validate consumes a prefix of tokens, returning the remaining
	// tokens and the parsed value. The input slice is never modified.
	Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, A, error)

	// MinSize returns the minimum number of tokens consumed.
	MinSize() int

	// MaxSize returns the maximum number of tokens consumed, or Unbounded.
	MaxSize() int

	// Synopsis returns the usage string of the arguments (eg. "<file>...").
	Synopsis() string

	// Help returns a description list of all arguments.
	Help() help.Doc

	// Info returns the list of positional slots, in order.
	Info() []Info

	definitions() []help.Definition
	isArgs()
}

// Info describes a positional slot, for completion and interactive prompts.
type Info struct {
	Name        string
	Type        string
	Description string
	Choices     []string
	Min         int
	Max         int
}

// Opt sets optional properties of a single argument.
type Opt func(s *singleInfo)

// Description sets the description of an argument.
func Description(desc string) Opt {
	return func(s *singleInfo) { s.description = desc }
}

//
// None --------------------------------------------------------------------- //
//

type none struct{}

// None returns a grammar accepting no argument.
func None() Args[types.Unit] { return none{} }

func (none) Validate(_ context.Context, tokens []string, _ config.Config) ([]string, types.Unit, error) {
	return clone(tokens), types.Unit{}, nil
}

func (none) MinSize() int                   { return 0 }
func (none) MaxSize() int                   { return 0 }
func (none) Synopsis() string               { return "" }
func (none) Help() help.Doc                 { return help.Empty() }
func (none) Info() []Info                   { return nil }
func (none) definitions() []help.Definition { return nil }
func (none) isArgs()                        {}

//
// Single ------------------------------------------------------------------- //
//

type singleInfo struct {
	name        string
	description string
}

type single[A any] struct {
	singleInfo
	prim primitive.Primitive[A]
}

// Single returns a grammar consuming exactly one token, converted
// by the primitive. An empty name defaults to the primitive type name.
func Single[A any](name string, prim primitive.Primitive[A], opts ...Opt) Args[A] {
	if name == "" {
		name = prim.TypeName()
	}

	arg := single[A]{singleInfo: singleInfo{name: name}, prim: prim}
	for _, opt := range opts {
		opt(&arg.singleInfo)
	}

	return arg
}

func (s single[A]) Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, A, error) {
	var zero A

	if len(tokens) == 0 {
		return nil, zero, validation.Newf(validation.MissingValue,
			help.Text("Missing argument "), help.Code("<"+s.name+">"), help.Text("."))
	}

	value, err := s.prim.Validate(ctx, &tokens[0], cfg)
	if err != nil {
		return nil, zero, err
	}

	return clone(tokens[1:]), value, nil
}

func (s single[A]) MinSize() int     { return 1 }
func (s single[A]) MaxSize() int     { return 1 }
func (s single[A]) Synopsis() string { return "<" + s.name + ">" }
func (s single[A]) Help() help.Doc   { return help.DescriptionList(s.definitions()...) }

func (s single[A]) Info() []Info {
	return []Info{{
		Name:        s.name,
		Type:        s.prim.TypeName(),
		Description: s.description,
		Choices:     s.prim.Choices(),
		Min:         1,
		Max:         1,
	}}
}

func (s single[A]) definitions() []help.Definition {
	desc := help.Pf(s.description)

	return []help.Definition{{
		Term:        help.Code(s.Synopsis()),
		Description: help.Sequence(desc, help.P(s.prim.Help())),
	}}
}

func (s single[A]) isArgs() {}

//
// Zip ---------------------------------------------------------------------- //
//

type zip[A, B any] struct {
	head Args[A]
	tail Args[B]
}

// Zip returns a grammar validating head, then tail on head's leftover.
func Zip[A, B any](head Args[A], tail Args[B]) Args[types.Pair[A, B]] {
	return zip[A, B]{head: head, tail: tail}
}

func (z zip[A, B]) Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, types.Pair[A, B], error) {
	var zero types.Pair[A, B]

	rest, first, err := z.head.Validate(ctx, tokens, cfg)
	if err != nil {
		return nil, zero, err
	}

	rest, second, err := z.tail.Validate(ctx, rest, cfg)
	if err != nil {
		return nil, zero, err
	}

	return rest, types.PairOf(first, second), nil
}

func (z zip[A, B]) MinSize() int { return z.head.MinSize() + z.tail.MinSize() }

func (z zip[A, B]) MaxSize() int {
	if z.head.MaxSize() == Unbounded || z.tail.MaxSize() == Unbounded {
		return Unbounded
	}

	return z.head.MaxSize() + z.tail.MaxSize()
}

func (z zip[A, B]) Synopsis() string {
	switch {
	case z.head.Synopsis() == "":
		return z.tail.Synopsis()
	case z.tail.Synopsis() == "":
		return z.head.Synopsis()
	}

	return z.head.Synopsis() + " " + z.tail.Synopsis()
}

func (z zip[A, B]) Help() help.Doc { return help.DescriptionList(z.definitions()...) }
func (z zip[A, B]) Info() []Info   { return append(z.head.Info(), z.tail.Info()...) }

func (z zip[A, B]) definitions() []help.Definition {
	return append(z.head.definitions(), z.tail.definitions()...)
}

func (z zip[A, B]) isArgs() {}

//
// Map ---------------------------------------------------------------------- //
//

type mapped[A, B any] struct {
	Args[A]
	fn func(A) (B, error)
}

// Map returns a grammar transforming the value of inner with fn.
// Errors returned by fn become InvalidValue errors, unless they
// already are validation errors.
func Map[A, B any](inner Args[A], fn func(A) (B, error)) Args[B] {
	return mapped[A, B]{Args: inner, fn: fn}
}

func (m mapped[A, B]) Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, B, error) {
	var zero B

	rest, value, err := m.Args.Validate(ctx, tokens, cfg)
	if err != nil {
		return nil, zero, err
	}

	mapped, err := m.fn(value)
	if err != nil {
		if verr, ok := validation.As(err); ok {
			return nil, zero, verr
		}

		return nil, zero, validation.Invalid(err.Error())
	}

	return rest, mapped, nil
}

// Validated returns a grammar checking the value of inner
// against a go-playground/validator tag (eg. "email", "gte=1").
func Validated[A any](inner Args[A], tag string) Args[A] {
	checker := check.New(nil, tag)

	return Map(inner, func(value A) (A, error) {
		return value, checker.Check(inner.Synopsis(), value)
	})
}

//
// Variadic ----------------------------------------------------------------- //
//

type variadic[A any] struct {
	inner Args[A]
	min   int
	max   int
}

// Variadic returns a grammar repeating inner between min and max times
// (max being Unbounded for no limit).
func Variadic[A any](inner Args[A], minimum, maximum int) Args[[]A] {
	if minimum < 0 {
		minimum = 0
	}

	if maximum != Unbounded && maximum < minimum {
		maximum = minimum
	}

	return variadic[A]{inner: inner, min: minimum, max: maximum}
}

// Repeat returns a grammar repeating inner any number of times.
func Repeat[A any](inner Args[A]) Args[[]A] { return Variadic(inner, 0, Unbounded) }

// AtLeast returns a grammar repeating inner at least n times.
func AtLeast[A any](inner Args[A], n int) Args[[]A] { return Variadic(inner, n, Unbounded) }

// AtMost returns a grammar repeating inner at most n times.
func AtMost[A any](inner Args[A], n int) Args[[]A] { return Variadic(inner, 0, n) }

// Between returns a grammar repeating inner between minimum and maximum times.
func Between[A any](inner Args[A], minimum, maximum int) Args[[]A] {
	return Variadic(inner, minimum, maximum)
}

func (v variadic[A]) Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, []A, error) {
	values := []A{}
	rest := clone(tokens)

	for v.max == Unbounded || len(values) < v.max {
		next, value, err := v.inner.Validate(ctx, rest, cfg)
		if err != nil {
			if _, ok := validation.As(err); ok && len(values) >= v.min && len(rest) == 0 {
				return rest, values, nil
			}

			return nil, nil, err
		}

		values = append(values, value)

		// Stop repeating grammars consuming nothing.
		if len(next) == len(rest) {
			break
		}

		rest = next
	}

	return rest, values, nil
}

func (v variadic[A]) MinSize() int { return v.min * v.inner.MinSize() }

func (v variadic[A]) MaxSize() int {
	if v.max == Unbounded || v.inner.MaxSize() == Unbounded {
		return Unbounded
	}

	return v.max * v.inner.MaxSize()
}

func (v variadic[A]) Synopsis() string {
	inner := v.inner.Synopsis()
	if inner == "" {
		return ""
	}

	switch {
	case v.min == 0 && v.max == 1:
		return "[" + inner + "]"
	case v.min == 0:
		return "[" + inner + "...]"
	default:
		return inner + "..."
	}
}

func (v variadic[A]) Help() help.Doc { return help.DescriptionList(v.definitions()...) }

func (v variadic[A]) Info() []Info {
	infos := v.inner.Info()
	for i := range infos {
		infos[i].Min *= v.min
		if v.max == Unbounded || infos[i].Max == Unbounded {
			infos[i].Max = Unbounded
		} else {
			infos[i].Max *= v.max
		}
	}

	return infos
}

func (v variadic[A]) definitions() []help.Definition {
	defs := v.inner.definitions()
	bounds := v.bounds()

	for i := range defs {
		defs[i].Description = help.Sequence(defs[i].Description, help.P(help.Weak(bounds)))
	}

	return defs
}

func (v variadic[A]) bounds() string {
	switch {
	case v.max == Unbounded && v.min == 0:
		return "This argument may be repeated zero or more times."
	case v.max == Unbounded:
		return fmt.Sprintf("This argument must be repeated at least %d times.", v.min)
	case v.min == v.max:
		return fmt.Sprintf("This argument must be repeated %d times.", v.min)
	}

	return "This argument must be repeated between " + strconv.Itoa(v.min) + " and " + strconv.Itoa(v.max) + " times."
}

func (v variadic[A]) isArgs() {}

func clone(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{}
	}

	return append([]string(nil), tokens...)
}
