package options

import (
	"time"

	"github.com/reeflective/grammar/primitive"
)

// Bool returns a switch: true when present, false otherwise.
func Bool(name string, opts ...Opt) Options[bool] {
	return WithDefault(Single(name, primitive.BoolIfPresent(true), opts...), false)
}

// Text returns a required option taking any value.
func Text(name string, opts ...Opt) Options[string] {
	return Single(name, primitive.Text(), opts...)
}

// Integer returns a required integer option.
func Integer(name string, opts ...Opt) Options[int64] {
	return Single(name, primitive.Integer(), opts...)
}

// Float returns a required floating point option.
func Float(name string, opts ...Opt) Options[float64] {
	return Single(name, primitive.Float(), opts...)
}

// Date returns a required ISO-8601 date option.
func Date(name string, opts ...Opt) Options[time.Time] {
	return Single(name, primitive.Date(), opts...)
}

// File returns a required regular file option.
func File(name string, exists primitive.Existence, opts ...Opt) Options[string] {
	return Single(name, primitive.File(exists), opts...)
}

// Directory returns a required directory option.
func Directory(name string, exists primitive.Existence, opts ...Opt) Options[string] {
	return Single(name, primitive.Directory(exists), opts...)
}

// Choice returns a required option accepting one of the given labels.
func Choice[A any](name string, cases []primitive.Case[A], opts ...Opt) Options[A] {
	return Single(name, primitive.Choice(cases...), opts...)
}

// Enum returns a required option accepting one of the given words.
func Enum(name string, labels []string, opts ...Opt) Options[string] {
	return Single(name, primitive.Enum(labels...), opts...)
}
