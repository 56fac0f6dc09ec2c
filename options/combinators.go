package options

import (
	"context"
	"fmt"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/internal/check"
	"github.com/reeflective/grammar/types"
	"github.com/reeflective/grammar/validation"
)

//
// Map ---------------------------------------------------------------------- //
//

type mapped[A, B any] struct {
	Options[A]
	fn func(A) (B, error)
}

// Map returns a grammar transforming the value of inner with fn.
// Errors returned by fn become InvalidValue errors, unless they
// already are validation errors.
func Map[A, B any](inner Options[A], fn func(A) (B, error)) Options[B] {
	return mapped[A, B]{Options: inner, fn: fn}
}

func (m mapped[A, B]) Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, B, error) {
	var zero B

	rest, value, err := m.Options.Validate(ctx, tokens, cfg)
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
func Validated[A any](inner Options[A], tag string) Options[A] {
	checker := check.New(nil, tag)

	return Map(inner, func(value A) (A, error) {
		return value, checker.Check(inner.Identifier(), value)
	})
}

//
// Zip ---------------------------------------------------------------------- //
//

type zip[A, B any] struct {
	left  Options[A]
	right Options[B]
}

// Zip returns a grammar requiring both left and right.
func Zip[A, B any](left Options[A], right Options[B]) Options[types.Pair[A, B]] {
	return zip[A, B]{left: left, right: right}
}

// Validate validates left first. When left fails, right is still tried on the
// original tokens, only to merge both reports when it fails too: left's failure
// is returned as is when right succeeds, left being mandatory.
func (z zip[A, B]) Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, types.Pair[A, B], error) {
	var zero types.Pair[A, B]

	rest, first, err := z.left.Validate(ctx, tokens, cfg)
	if err != nil {
		leftErr, ok := validation.As(err)
		if !ok {
			return nil, zero, err
		}

		_, _, err = z.right.Validate(ctx, tokens, cfg)
		if err == nil {
			return nil, zero, leftErr
		}

		rightErr, ok := validation.As(err)
		if !ok {
			return nil, zero, err
		}

		return nil, zero, validation.Merge(validation.MissingValue, leftErr, rightErr)
	}

	rest, second, err := z.right.Validate(ctx, rest, cfg)
	if err != nil {
		return nil, zero, err
	}

	return rest, types.PairOf(first, second), nil
}

func (z zip[A, B]) Flags() []Flag { return append(z.left.Flags(), z.right.Flags()...) }

func (z zip[A, B]) Synopsis() string {
	return join(" ", z.left.Synopsis(), z.right.Synopsis())
}

func (z zip[A, B]) Identifier() string {
	return "(" + join(", ", z.left.Identifier(), z.right.Identifier()) + ")"
}

func (z zip[A, B]) Help() help.Doc { return help.DescriptionList(z.definitions()...) }

func (z zip[A, B]) definitions() []help.Definition {
	return append(z.left.definitions(), z.right.definitions()...)
}

func (z zip[A, B]) isOptions() {}

//
// OrElse ------------------------------------------------------------------- //
//

type orElse[A, B any] struct {
	left  Options[A]
	right Options[B]
}

// OrElse returns a grammar accepting either left or right, but not both.
func OrElse[A, B any](left Options[A], right Options[B]) Options[types.Either[A, B]] {
	return orElse[A, B]{left: left, right: right}
}

func (o orElse[A, B]) Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, types.Either[A, B], error) {
	var zero types.Either[A, B]

	leftRest, left, err := o.left.Validate(ctx, tokens, cfg)
	if err != nil {
		leftErr, ok := validation.As(err)
		if !ok {
			return nil, zero, err
		}

		rightRest, right, err := o.right.Validate(ctx, tokens, cfg)
		if err == nil {
			return rightRest, types.Right[A](right), nil
		}

		rightErr, ok := validation.As(err)
		if !ok {
			return nil, zero, err
		}

		kind := validation.InvalidValue
		if leftErr.Kind == validation.MissingValue && rightErr.Kind == validation.MissingValue {
			kind = validation.MissingValue
		}

		return nil, zero, validation.Merge(kind, leftErr, rightErr)
	}

	// Only a right side actually found in the tokens may
	// collide with, or replace, a defaulted left side.
	rightRest, right, err := o.right.Validate(ctx, leftRest, cfg)
	if err != nil && isFatal(err) {
		return nil, zero, err
	}

	rightFound := err == nil && len(rightRest) < len(leftRest)
	leftFound := len(leftRest) < len(tokens)

	switch {
	case rightFound && leftFound:
		return nil, zero, validation.Newf(validation.InvalidValue,
			help.Text("Options collision detected. You can only specify either "),
			help.Code(o.left.Identifier()), help.Text(" or "), help.Code(o.right.Identifier()), help.Text("."))
	case rightFound:
		return rightRest, types.Right[A](right), nil
	}

	return leftRest, types.Left[A, B](left), nil
}

func (o orElse[A, B]) Flags() []Flag { return append(o.left.Flags(), o.right.Flags()...) }

func (o orElse[A, B]) Synopsis() string {
	return "(" + join(" | ", o.left.Synopsis(), o.right.Synopsis()) + ")"
}

func (o orElse[A, B]) Identifier() string {
	return "(" + join(" | ", o.left.Identifier(), o.right.Identifier()) + ")"
}

func (o orElse[A, B]) Help() help.Doc { return help.DescriptionList(o.definitions()...) }

func (o orElse[A, B]) definitions() []help.Definition {
	defs := append(o.left.definitions(), o.right.definitions()...)
	note := help.P(help.Weak("Mutually exclusive with " + o.Identifier() + "."))

	for i := range defs {
		defs[i].Description = help.Sequence(defs[i].Description, note)
	}

	return defs
}

func (o orElse[A, B]) isOptions() {}

//
// WithDefault -------------------------------------------------------------- //
//

type withDefault[A any] struct {
	inner    Options[A]
	value    A
	optional bool
}

// WithDefault returns a grammar yielding value when inner is missing.
// Any other failure, including likely typos, is not recovered.
func WithDefault[A any](inner Options[A], value A) Options[A] {
	return withDefault[A]{inner: inner, value: value}
}

// Optional returns a grammar yielding an empty Maybe when inner is missing.
func Optional[A any](inner Options[A]) Options[types.Maybe[A]] {
	some := Map(inner, func(value A) (types.Maybe[A], error) { return types.Some(value), nil })

	return withDefault[types.Maybe[A]]{inner: some, value: types.None[A](), optional: true}
}

func (w withDefault[A]) Validate(ctx context.Context, tokens []string, cfg config.Config) ([]string, A, error) {
	rest, value, err := w.inner.Validate(ctx, tokens, cfg)
	if err != nil {
		if validation.IsMissing(err) {
			return clone(tokens), w.value, nil
		}

		return nil, value, err
	}

	return rest, value, nil
}

func (w withDefault[A]) Flags() []Flag      { return w.inner.Flags() }
func (w withDefault[A]) Identifier() string { return w.inner.Identifier() }
func (w withDefault[A]) Help() help.Doc     { return help.DescriptionList(w.definitions()...) }

func (w withDefault[A]) Synopsis() string {
	if synopsis := w.inner.Synopsis(); synopsis != "" {
		return "[" + synopsis + "]"
	}

	return ""
}

func (w withDefault[A]) definitions() []help.Definition {
	defs := w.inner.definitions()

	note := "This setting is optional."
	if !w.optional {
		note = fmt.Sprintf("This setting is optional. Default: '%v'.", w.value)
	}

	for i := range defs {
		defs[i].Description = help.Sequence(defs[i].Description, help.P(help.Weak(note)))
	}

	return defs
}

func (w withDefault[A]) isOptions() {}

func join(sep string, parts ...string) string {
	var joined string

	for _, part := range parts {
		if part == "" {
			continue
		}
		if joined != "" {
			joined += sep
		}
		joined += part
	}

	return joined
}
