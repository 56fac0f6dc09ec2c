package options

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/types"
	"github.com/reeflective/grammar/validation"
)

func validate[A any](t *testing.T, opts Options[A], tokens ...string) ([]string, A, error) {
	t.Helper()
	return opts.Validate(context.Background(), tokens, config.Default())
}

func TestSingle(t *testing.T) {
	t.Parallel()

	name := Text("name", Alias("n"))

	tests := []struct {
		tokens []string
		value  string
		rest   []string
	}{
		{[]string{"--name", "bob", "x"}, "bob", []string{"x"}},
		{[]string{"x", "-n", "bob"}, "bob", []string{"x"}},
		{[]string{"--name=bob", "x"}, "bob", []string{"x"}},
		{[]string{"--name=", "x"}, "", []string{"x"}},
	}

	for _, test := range tests {
		rest, value, err := validate(t, name, test.tokens...)
		require.NoError(t, err, test.tokens)
		assert.Equal(t, test.value, value, test.tokens)
		assert.Equal(t, test.rest, rest, test.tokens)
	}
}

func TestSingleMissing(t *testing.T) {
	t.Parallel()

	_, _, err := validate(t, Text("name"), "bob")
	require.ErrorIs(t, err, validation.ErrMissingValue)
	require.EqualError(t, err, "Expected to find --name option.")

	// No value after the flag is not a missing option.
	_, _, err = validate(t, Text("name"), "--name")
	require.ErrorIs(t, err, validation.ErrInvalidValue)
}

func TestEndOfOptions(t *testing.T) {
	t.Parallel()

	_, _, err := validate(t, Text("name"), "--", "--name", "bob")
	require.ErrorIs(t, err, validation.ErrMissingValue)

	rest, value, err := validate(t, Bool("verbose"), "--", "--verbose")
	require.NoError(t, err)
	require.False(t, value)
	require.Equal(t, []string{"--", "--verbose"}, rest)
}

func TestAutoCorrect(t *testing.T) {
	t.Parallel()

	after := Date("after")

	_, _, err := validate(t, after, "--afte", "2020-01-01")
	require.ErrorIs(t, err, validation.ErrCorrectedFlag)
	require.EqualError(t, err, "The flag --afte is not recognized. Did you mean --after?")

	_, _, err = validate(t, after, "--xyz", "2020-01-01")
	require.ErrorIs(t, err, validation.ErrMissingValue)

	// Disabled correction
	_, _, err = after.Validate(context.Background(), []string{"--afte"}, config.New(config.AutoCorrectLimit(0)))
	require.ErrorIs(t, err, validation.ErrMissingValue)

	// Short names are never corrected.
	rest, value, err := validate(t, Bool("v"), "-x")
	require.NoError(t, err)
	require.False(t, value)
	require.Equal(t, []string{"-x"}, rest)
}

func TestCaseInsensitive(t *testing.T) {
	t.Parallel()

	cfg := config.New(config.CaseInsensitive())

	_, value, err := Text("name").Validate(context.Background(), []string{"--NAME", "Bob"}, cfg)
	require.NoError(t, err)
	require.Equal(t, "Bob", value)

	_, _, err = Text("name").Validate(context.Background(), []string{"--NAME", "Bob"}, config.Default())
	require.ErrorIs(t, err, validation.ErrMissingValue)
}

func TestBool(t *testing.T) {
	t.Parallel()

	verbose := Bool("verbose", Alias("v"))

	tests := []struct {
		tokens []string
		value  bool
		rest   []string
	}{
		{[]string{"-v", "file"}, true, []string{"file"}},
		{[]string{"file", "--verbose"}, true, []string{"file"}},
		{[]string{"file"}, false, []string{"file"}},
		{[]string{"--verbose=false"}, false, []string{}},
		{[]string{"--verbose=yes"}, true, []string{}},
	}

	for _, test := range tests {
		rest, value, err := validate(t, verbose, test.tokens...)
		require.NoError(t, err, test.tokens)
		assert.Equal(t, test.value, value, test.tokens)
		assert.Equal(t, test.rest, rest, test.tokens)
	}

	_, _, err := validate(t, verbose, "--verbose=maybe")
	require.ErrorIs(t, err, validation.ErrInvalidValue)
	require.Contains(t, err.Error(), "Invalid value for option --verbose:")
	require.Contains(t, err.Error(), "maybe cannot be recognized as valid boolean.")
}

func TestWithDefault(t *testing.T) {
	t.Parallel()

	count := WithDefault(Integer("count"), 3)

	rest, value, err := validate(t, count, "file")
	require.NoError(t, err)
	require.Equal(t, int64(3), value)
	require.Equal(t, []string{"file"}, rest)

	_, value, err = validate(t, count, "--count", "7")
	require.NoError(t, err)
	require.Equal(t, int64(7), value)

	_, _, err = validate(t, count, "--count", "abc")
	require.ErrorIs(t, err, validation.ErrInvalidValue)

	_, _, err = validate(t, count, "--cont", "4")
	require.ErrorIs(t, err, validation.ErrCorrectedFlag)

	require.Equal(t, "[--count <integer>]", count.Synopsis())
	require.Contains(t, help.Render(count.Help(), help.Plain), "This setting is optional. Default: '3'.")
}

func TestOptional(t *testing.T) {
	t.Parallel()

	port := Optional(Integer("port"))

	_, value, err := validate(t, port)
	require.NoError(t, err)
	require.False(t, value.IsSet())

	_, value, err = validate(t, port, "--port", "8080")
	require.NoError(t, err)
	require.Equal(t, types.Some(int64(8080)), value)

	rendered := help.Render(port.Help(), help.Plain)
	require.Contains(t, rendered, "This setting is optional.")
	require.NotContains(t, rendered, "Default:")
}

func TestZip(t *testing.T) {
	t.Parallel()

	person := Zip(Text("name"), Integer("age"))

	rest, value, err := validate(t, person, "--age", "3", "x", "--name", "bob")
	require.NoError(t, err)
	require.Equal(t, types.PairOf("bob", int64(3)), value)
	require.Equal(t, []string{"x"}, rest)

	// Left missing, right present: the left failure is reported alone.
	_, _, err = validate(t, person, "--age", "3")
	require.ErrorIs(t, err, validation.ErrMissingValue)
	require.EqualError(t, err, "Expected to find --name option.")

	_, _, err = validate(t, person, "--name", "bob")
	require.EqualError(t, err, "Expected to find --age option.")

	// Both missing: reports are merged.
	_, _, err = validate(t, person)
	require.ErrorIs(t, err, validation.ErrMissingValue)
	require.Contains(t, err.Error(), "--name")
	require.Contains(t, err.Error(), "--age")

	require.Equal(t, "--name <text> --age <integer>", person.Synopsis())
	require.Equal(t, "(--name, --age)", person.Identifier())
	require.Len(t, person.Flags(), 2)
}

func TestOrElse(t *testing.T) {
	t.Parallel()

	source := OrElse(Text("file"), Text("url"))

	_, value, err := validate(t, source, "--url", "x")
	require.NoError(t, err)
	require.Equal(t, types.Right[string]("x"), value)

	_, value, err = validate(t, source, "--file", "a")
	require.NoError(t, err)
	require.Equal(t, types.Left[string, string]("a"), value)

	_, _, err = validate(t, source, "--file", "a", "--url", "b")
	require.ErrorIs(t, err, validation.ErrInvalidValue)
	require.EqualError(t, err, "Options collision detected. You can only specify either --file or --url.")

	_, _, err = validate(t, source)
	require.ErrorIs(t, err, validation.ErrMissingValue)

	_, _, err = validate(t, OrElse(Integer("count"), Text("name")), "--count", "x")
	require.ErrorIs(t, err, validation.ErrInvalidValue)

	require.Equal(t, "(--file <text> | --url <text>)", source.Synopsis())
	require.Equal(t, "(--file | --url)", source.Identifier())
}

func TestOrElseDefaults(t *testing.T) {
	t.Parallel()

	side := OrElse(WithDefault(Text("left"), "l"), WithDefault(Text("right"), "r"))

	tests := []struct {
		tokens []string
		value  types.Either[string, string]
	}{
		{nil, types.Left[string, string]("l")},
		{[]string{"--left", "y"}, types.Left[string, string]("y")},
		{[]string{"--right", "x"}, types.Right[string]("x")},
	}

	for _, test := range tests {
		rest, value, err := validate(t, side, test.tokens...)
		require.NoError(t, err, test.tokens)
		assert.Equal(t, test.value, value, test.tokens)
		assert.Empty(t, rest, test.tokens)
	}

	_, _, err := validate(t, side, "--left", "y", "--right", "x")
	require.ErrorIs(t, err, validation.ErrInvalidValue)
}

func TestMap(t *testing.T) {
	t.Parallel()

	port := Map(Integer("port"), func(n int64) (int, error) {
		if n < 1 || n > 65535 {
			return 0, errors.New("port out of range")
		}

		return int(n), nil
	})

	_, value, err := validate(t, port, "--port", "80")
	require.NoError(t, err)
	require.Equal(t, 80, value)

	_, _, err = validate(t, port, "--port", "0")
	require.ErrorIs(t, err, validation.ErrInvalidValue)
	require.EqualError(t, err, "port out of range")

	require.Equal(t, "--port <integer>", port.Synopsis())
}

func TestValidated(t *testing.T) {
	t.Parallel()

	email := Validated(Text("email"), "email")

	_, value, err := validate(t, email, "--email", "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", value)

	_, _, err = validate(t, email, "--email", "bob")
	require.ErrorIs(t, err, validation.ErrInvalidValue)
	require.EqualError(t, err, "`bob` is not a valid email")
}

func TestKeyValueMap(t *testing.T) {
	t.Parallel()

	defs := KeyValueMap("define", Alias("D"))

	rest, value, err := validate(t, defs, "-D", "a=1", "b=2", "file", "--define=c=3", "-D", "a=4")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "4", "b": "2", "c": "3"}, value)
	require.Equal(t, []string{"file"}, rest)

	_, _, err = validate(t, defs, "--define", "oops")
	require.ErrorIs(t, err, validation.ErrInvalidValue)
	require.Contains(t, err.Error(), "Expected a key/value pair but got 'oops'.")

	_, _, err = validate(t, defs, "file")
	require.ErrorIs(t, err, validation.ErrMissingValue)

	_, value, err = defs.Validate(context.Background(), []string{"--DEFINE", "Key=V"}, config.New(config.CaseInsensitive()))
	require.NoError(t, err)
	require.Equal(t, map[string]string{"Key": "V"}, value)

	require.Equal(t, "--define <key=value>...", defs.Synopsis())
	require.True(t, defs.Flags()[0].KeyValue)
}

func TestUncluster(t *testing.T) {
	t.Parallel()

	flags := Zip(Zip(Bool("l"), Bool("w")), Text("n")).Flags()

	tests := []struct {
		tokens []string
		want   []string
	}{
		{[]string{"-lw", "file"}, []string{"-l", "-w", "file"}},
		{[]string{"-wl"}, []string{"-w", "-l"}},
		{[]string{"-lx"}, []string{"-lx"}},
		{[]string{"-ln"}, []string{"-ln"}},
		{[]string{"--lw"}, []string{"--lw"}},
		{[]string{"-l", "--", "-lw"}, []string{"-l", "--", "-lw"}},
	}

	for _, test := range tests {
		got := Uncluster(test.tokens, flags, config.Default())
		assert.Equal(t, test.want, got, test.tokens)
	}
}

func TestFlags(t *testing.T) {
	t.Parallel()

	grammar := Zip(Bool("lines", Alias("l"), Description("Count lines.")), Enum("format", []string{"json", "text"}))
	flags := grammar.Flags()

	require.Len(t, flags, 2)
	assert.Equal(t, []string{"--lines", "-l"}, flags[0].Names())
	assert.True(t, flags[0].Bool)
	assert.Equal(t, "Count lines.", flags[0].Description)
	assert.Equal(t, []string{"json", "text"}, flags[1].Choices)

	rendered := help.Render(grammar.Help(), help.Plain)
	assert.Contains(t, rendered, "--lines, -l\n    Count lines.")
	assert.Contains(t, rendered, "--format <choice>")
}

func TestPurity(t *testing.T) {
	t.Parallel()

	grammar := Zip(Bool("verbose", Alias("v")), KeyValueMap("define"))
	tokens := []string{"-v", "--define", "a=1", "file"}

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			rest, value, err := grammar.Validate(context.Background(), tokens, config.Default())
			assert.NoError(t, err)
			assert.True(t, value.First)
			assert.Equal(t, map[string]string{"a": "1"}, value.Second)
			assert.Equal(t, []string{"file"}, rest)
		}()
	}

	wg.Wait()

	require.Equal(t, []string{"-v", "--define", "a=1", "file"}, tokens)
}
