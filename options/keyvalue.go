package options

import (
	"context"
	"strings"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/validation"
)

type keyValueMap struct {
	names
}

// KeyValueMap returns a repeatable option collecting "key=value" pairs,
// as in "--define a=1 b=2 --define c=3". Pairs are split on their first
// "=", keys are kept as typed, and the last value given for a key wins.
func KeyValueMap(name string, opts ...Opt) Options[map[string]string] {
	return keyValueMap{names: newNames(name, opts)}
}

func (k keyValueMap) Validate(_ context.Context, tokens []string, cfg config.Config) ([]string, map[string]string, error) {
	values := make(map[string]string)
	consumed := make([]bool, len(tokens))
	found := false

	for index := 0; index < len(tokens); index++ {
		token := tokens[index]
		if token == EndOfOptions {
			break
		}

		flag, inline, hasInline := splitInline(token)

		if !k.matches(flag, cfg) {
			if !isFlagShaped(token) {
				continue
			}

			if suggestion, ok := k.typo(token, cfg); ok {
				return nil, nil, k.corrected(token, suggestion)
			}

			continue
		}

		found = true
		consumed[index] = true

		pair := inline
		if !hasInline {
			if index+1 >= len(tokens) || tokens[index+1] == EndOfOptions {
				return nil, nil, k.invalid(help.Text("Expected a key/value pair after "), help.Code(fullName(k.name)), help.Text("."))
			}

			index++
			consumed[index] = true
			pair = tokens[index]
		}

		if err := k.store(values, pair); err != nil {
			return nil, nil, err
		}

		// Following bare pairs belong to the same occurrence.
		for index+1 < len(tokens) && isBarePair(tokens[index+1]) {
			index++
			consumed[index] = true

			if err := k.store(values, tokens[index]); err != nil {
				return nil, nil, err
			}
		}
	}

	if !found {
		return nil, nil, k.missing()
	}

	rest := make([]string, 0, len(tokens))
	for index, token := range tokens {
		if !consumed[index] {
			rest = append(rest, token)
		}
	}

	return rest, values, nil
}

func (k keyValueMap) store(values map[string]string, pair string) error {
	key, value, ok := strings.Cut(pair, "=")
	if !ok || key == "" {
		return k.invalid(help.Text("Expected a key/value pair but got "), help.Code("'"+pair+"'"), help.Text("."))
	}

	values[key] = value

	return nil
}

func (k keyValueMap) invalid(spans ...help.Span) *validation.Error {
	return validation.New(validation.InvalidValue, help.Concat(
		help.P(help.Error(help.Text("Invalid value for option "), help.Code(fullName(k.name)), help.Text(":"))),
		help.P(help.Error(spans...)),
	))
}

func (k keyValueMap) Flags() []Flag {
	return []Flag{{
		Name:        k.name,
		Aliases:     k.aliases,
		Description: k.description,
		Type:        "key=value",
		KeyValue:    true,
	}}
}

func (k keyValueMap) Synopsis() string   { return fullName(k.name) + " <key=value>..." }
func (k keyValueMap) Identifier() string { return fullName(k.name) }
func (k keyValueMap) Help() help.Doc     { return help.DescriptionList(k.definitions()...) }

func (k keyValueMap) definitions() []help.Definition {
	return []help.Definition{{
		Term: help.Code(k.term() + " <key=value>..."),
		Description: help.Sequence(
			help.Pf(k.description),
			help.P(help.Text("Key/value pairs, as in "), help.Code(fullName(k.name)+" a=1 b=2"), help.Text(".")),
		),
	}}
}

func (k keyValueMap) isOptions() {}

func isBarePair(token string) bool {
	return strings.Contains(token, "=") && !strings.HasPrefix(token, "-")
}
