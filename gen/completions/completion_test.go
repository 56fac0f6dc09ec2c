package completions

import (
	"context"
	"testing"

	"github.com/carapace-sh/carapace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/grammar/args"
	"github.com/reeflective/grammar/command"
	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/gen/flags"
	"github.com/reeflective/grammar/options"
	"github.com/reeflective/grammar/primitive"
	"github.com/reeflective/grammar/types"
)

type values = types.Pair[string, []string]

func grammar() command.Command[values] {
	return command.Single("deploy",
		options.Enum("env", []string{"dev", "prod"}),
		args.Repeat(args.File("manifests", primitive.MayExist)),
	)
}

// TestCompletions just calls the carapace engine test routine
// on a command generated from a grammar.
func TestCompletions(t *testing.T) {
	t.Parallel()

	cmd, err := flags.Generate(grammar(), func(context.Context, values, []string) error { return nil })
	require.NoError(t, err)

	Generate(cmd, grammar(), config.Default(), nil)

	carapace.Test(t)
}

func TestWords(t *testing.T) {
	t.Parallel()

	ctx := carapace.Context{Args: []string{"--env", "dev"}, Value: "ma"}
	assert.Equal(t, []string{"deploy", "--env", "dev", "ma"}, Words("deploy", ctx))

	empty := carapace.Context{}
	assert.Equal(t, []string{"deploy", ""}, Words("deploy", empty))
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	cmd, err := flags.Generate(grammar(), func(context.Context, values, []string) error { return nil })
	require.NoError(t, err)

	Generate(cmd, grammar(), config.Default(), nil)

	script, err := Snippet(cmd, "bash")
	require.NoError(t, err)
	assert.Contains(t, script, "deploy")
}
