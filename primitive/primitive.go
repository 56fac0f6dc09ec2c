// Package primitive provides the leaf validators of all grammars: each
// converts one optional raw token into a typed value, or fails with a
// validation error. Primitives are immutable and safe for concurrent use.
package primitive

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/validation"
)

// Primitive converts a single optional token into a value of type A.
// The set of primitives is closed: use the constructors of this package.
type Primitive[A any] interface {
	// Validate converts the token. A nil token means that no value
	// was given, which only Bool primitives with a default accept.
	// Errors are either *validation.Error, or fatal probe errors.
	Validate(ctx context.Context, token *string, cfg config.Config) (A, error)

	// TypeName returns a short label for the expected value.
	TypeName() string

	// Help describes the expected value.
	Help() help.Span

	// Choices returns the accepted labels of enumerated
	// primitives, in declaration order, or nil.
	Choices() []string

	// IsBool reports whether the primitive is a boolean switch,
	// which consumes no value token when used as an option.
	IsBool() bool

	isPrimitive()
}

var (
	trueWords  = []string{"true", "1", "y", "yes", "on"}
	falseWords = []string{"false", "0", "n", "no", "off"}
)

//
// Bool --------------------------------------------------------------------- //
//

type boolean struct {
	ifPresent *bool
}

// Bool returns a boolean primitive without default: a value must be given.
func Bool() Primitive[bool] { return boolean{} }

// BoolIfPresent returns a boolean primitive yielding value
// when the token is absent (ie. a flag given without value).
func BoolIfPresent(value bool) Primitive[bool] { return boolean{ifPresent: &value} }

func (b boolean) Validate(_ context.Context, token *string, cfg config.Config) (bool, error) {
	if token == nil {
		if b.ifPresent != nil {
			return *b.ifPresent, nil
		}

		return false, missingToken()
	}

	word := cfg.Normalize(*token)

	switch {
	case contains(trueWords, word):
		return true, nil
	case contains(falseWords, word):
		return false, nil
	}

	return false, invalid(*token, " cannot be recognized as valid boolean.")
}

func (boolean) TypeName() string  { return "bool" }
func (boolean) Help() help.Span   { return help.Text("A true or false value.") }
func (boolean) Choices() []string { return nil }
func (boolean) IsBool() bool      { return true }
func (boolean) isPrimitive()      {}

//
// Integer ------------------------------------------------------------------ //
//

type integer[T constraints.Signed] struct{}

// Integer returns a primitive parsing base-10 integers.
func Integer() Primitive[int64] { return integer[int64]{} }

// IntegerOf returns a primitive parsing base-10 integers
// into T, rejecting values overflowing it.
func IntegerOf[T constraints.Signed]() Primitive[T] { return integer[T]{} }

func (integer[T]) Validate(_ context.Context, token *string, _ config.Config) (T, error) {
	if token == nil {
		return 0, missingToken()
	}

	parsed, err := strconv.ParseInt(strings.TrimSpace(*token), 10, 64)
	if err != nil || int64(T(parsed)) != parsed {
		return 0, invalid(*token, " is not a integer.")
	}

	return T(parsed), nil
}

func (integer[T]) TypeName() string  { return "integer" }
func (integer[T]) Help() help.Span   { return help.Text("An integer.") }
func (integer[T]) Choices() []string { return nil }
func (integer[T]) IsBool() bool      { return false }
func (integer[T]) isPrimitive()      {}

//
// Float -------------------------------------------------------------------- //
//

type float struct{}

// Float returns a primitive parsing floating point numbers.
func Float() Primitive[float64] { return float{} }

func (float) Validate(_ context.Context, token *string, _ config.Config) (float64, error) {
	if token == nil {
		return 0, missingToken()
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(*token), 64)
	if err != nil {
		return 0, invalid(*token, " is not a float.")
	}

	return parsed, nil
}

func (float) TypeName() string  { return "float" }
func (float) Help() help.Span   { return help.Text("A floating point number.") }
func (float) Choices() []string { return nil }
func (float) IsBool() bool      { return false }
func (float) isPrimitive()      {}

//
// Text --------------------------------------------------------------------- //
//

type text struct{}

// Text returns a primitive accepting any token.
func Text() Primitive[string] { return text{} }

func (text) Validate(_ context.Context, token *string, _ config.Config) (string, error) {
	if token == nil {
		return "", missingToken()
	}

	return *token, nil
}

func (text) TypeName() string  { return "text" }
func (text) Help() help.Span   { return help.Text("A user-defined piece of text.") }
func (text) Choices() []string { return nil }
func (text) IsBool() bool      { return false }
func (text) isPrimitive()      {}

//
// Date --------------------------------------------------------------------- //
//

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

type date struct{}

// Date returns a primitive parsing ISO-8601 dates and date-times.
func Date() Primitive[time.Time] { return date{} }

func (date) Validate(_ context.Context, token *string, _ config.Config) (time.Time, error) {
	if token == nil {
		return time.Time{}, missingToken()
	}

	value := strings.TrimSpace(*token)

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, invalid(*token, " is not a valid date.")
}

func (date) TypeName() string { return "date" }
func (date) Help() help.Span {
	return help.Text("A date in ISO-8601 format, such as 2007-12-03 or 2007-12-03T10:15:30Z.")
}
func (date) Choices() []string { return nil }
func (date) IsBool() bool      { return false }
func (date) isPrimitive()      {}

//
// Helpers ------------------------------------------------------------------ //
//

func missingToken() *validation.Error {
	return validation.Invalid("Missing value.")
}

func invalid(token, reason string) *validation.Error {
	return validation.Newf(validation.InvalidValue, help.Code(token), help.Text(reason))
}

func contains(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}

	return false
}

func quoteAll(labels []string) string {
	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = strconv.Quote(label)
	}

	return strings.Join(quoted, ", ")
}

// Describe returns a one-line description of a primitive's expected value,
// used by help and wizard prompts.
func Describe[A any](p Primitive[A]) string {
	if choices := p.Choices(); len(choices) > 0 {
		return fmt.Sprintf("%s (%s)", p.TypeName(), strings.Join(choices, "|"))
	}

	return p.TypeName()
}
