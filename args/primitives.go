package args

import (
	"time"

	"github.com/reeflective/grammar/primitive"
)

// Text returns an argument accepting any token.
func Text(name string, opts ...Opt) Args[string] {
	return Single(name, primitive.Text(), opts...)
}

// Integer returns an integer argument.
func Integer(name string, opts ...Opt) Args[int64] {
	return Single(name, primitive.Integer(), opts...)
}

// Float returns a floating point argument.
func Float(name string, opts ...Opt) Args[float64] {
	return Single(name, primitive.Float(), opts...)
}

// Bool returns a boolean argument (true/false, yes/no, on/off, 1/0...).
func Bool(name string, opts ...Opt) Args[bool] {
	return Single(name, primitive.Bool(), opts...)
}

// Date returns an ISO-8601 date argument.
func Date(name string, opts ...Opt) Args[time.Time] {
	return Single(name, primitive.Date(), opts...)
}

// File returns a regular file argument.
func File(name string, exists primitive.Existence, opts ...Opt) Args[string] {
	return Single(name, primitive.File(exists), opts...)
}

// Directory returns a directory argument.
func Directory(name string, exists primitive.Existence, opts ...Opt) Args[string] {
	return Single(name, primitive.Directory(exists), opts...)
}

// Choice returns an argument accepting one of the given labels.
func Choice[A any](name string, cases []primitive.Case[A], opts ...Opt) Args[A] {
	return Single(name, primitive.Choice(cases...), opts...)
}

// Enum returns an argument accepting one of the given words.
func Enum(name string, labels []string, opts ...Opt) Args[string] {
	return Single(name, primitive.Enum(labels...), opts...)
}
