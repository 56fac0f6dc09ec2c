// Package types provides the small algebraic value types produced by
// grammar combinators: pairs from zipped grammars, tagged alternatives
// from mutually exclusive ones, and optional values.
package types

import "fmt"

// Unit is the value of grammars that produce nothing (no options, no arguments).
type Unit struct{}

// Pair holds the values of two zipped grammars.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf returns a pair of the two values.
func PairOf[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

// String implements fmt.Stringer.
func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}

// Either holds the value of exactly one of two mutually exclusive grammars.
type Either[A, B any] struct {
	left    A
	right   B
	isRight bool
}

// Left returns an Either holding a left value.
func Left[A, B any](value A) Either[A, B] {
	return Either[A, B]{left: value}
}

// Right returns an Either holding a right value.
func Right[A, B any](value B) Either[A, B] {
	return Either[A, B]{right: value, isRight: true}
}

// IsRight reports whether the right value is set.
func (e Either[A, B]) IsRight() bool { return e.isRight }

// Left returns the left value, if set.
func (e Either[A, B]) Left() (A, bool) { return e.left, !e.isRight }

// Right returns the right value, if set.
func (e Either[A, B]) Right() (B, bool) { return e.right, e.isRight }

// String implements fmt.Stringer.
func (e Either[A, B]) String() string {
	if e.isRight {
		return fmt.Sprintf("Right(%v)", e.right)
	}

	return fmt.Sprintf("Left(%v)", e.left)
}

// Maybe is an optional value.
type Maybe[A any] struct {
	value A
	set   bool
}

// Some returns a Maybe holding a value.
func Some[A any](value A) Maybe[A] { return Maybe[A]{value: value, set: true} }

// None returns an empty Maybe.
func None[A any]() Maybe[A] { return Maybe[A]{} }

// Get returns the value and whether it is set.
func (m Maybe[A]) Get() (A, bool) { return m.value, m.set }

// IsSet reports whether the value is set.
func (m Maybe[A]) IsSet() bool { return m.set }

// OrElse returns the value if set, or the fallback.
func (m Maybe[A]) OrElse(fallback A) A {
	if m.set {
		return m.value
	}

	return fallback
}

// String implements fmt.Stringer.
func (m Maybe[A]) String() string {
	if m.set {
		return fmt.Sprintf("Some(%v)", m.value)
	}

	return "None"
}
