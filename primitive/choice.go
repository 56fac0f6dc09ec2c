package primitive

import (
	"context"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/validation"
)

// Case is a single label accepted by a Choice primitive, and its value.
type Case[A any] struct {
	Label string
	Value A
}

// CaseOf returns a choice case.
func CaseOf[A any](label string, value A) Case[A] {
	return Case[A]{Label: label, Value: value}
}

type choice[A any] struct {
	cases *orderedmap.OrderedMap[string, A]
}

// Choice returns a primitive accepting exactly one of the given labels,
// yielding its associated value. Labels are matched case-sensitively,
// regardless of the configuration. It panics on duplicate labels.
func Choice[A any](cases ...Case[A]) Primitive[A] {
	table := orderedmap.New[string, A](len(cases))

	for _, c := range cases {
		if _, present := table.Set(c.Label, c.Value); present {
			panic(fmt.Sprintf("primitive: duplicate choice label %q", c.Label))
		}
	}

	return choice[A]{cases: table}
}

// Enum returns a choice primitive whose values are its labels.
func Enum(labels ...string) Primitive[string] {
	cases := make([]Case[string], len(labels))
	for i, label := range labels {
		cases[i] = CaseOf(label, label)
	}

	return Choice(cases...)
}

func (c choice[A]) Validate(_ context.Context, token *string, _ config.Config) (A, error) {
	var zero A

	if token == nil {
		return zero, missingToken()
	}

	if value, found := c.cases.Get(*token); found {
		return value, nil
	}

	return zero, validation.Invalid("Expected one of the following cases: " + quoteAll(c.Choices()) + ".")
}

func (c choice[A]) Choices() []string {
	labels := make([]string, 0, c.cases.Len())
	for pair := c.cases.Oldest(); pair != nil; pair = pair.Next() {
		labels = append(labels, pair.Key)
	}

	return labels
}

func (c choice[A]) TypeName() string { return "choice" }
func (c choice[A]) Help() help.Span {
	return help.Text("One of the following: " + quoteAll(c.Choices()) + ".")
}
func (c choice[A]) IsBool() bool { return false }
func (c choice[A]) isPrimitive() {}
