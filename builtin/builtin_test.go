package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/help"
	"github.com/reeflective/grammar/validation"
)

func TestParse(t *testing.T) {
	t.Parallel()

	doc := help.Pf("Some help.")

	tests := []struct {
		name   string
		tokens []string
		want   Option
	}{
		{"short help", []string{"-h"}, ShowHelp{Doc: doc}},
		{"help among invalid tokens", []string{"--unknown", "--help", "x"}, ShowHelp{Doc: doc}},
		{"wizard", []string{"--wizard"}, Wizard{}},
		{
			"completions",
			[]string{"--completions", "bash", "--shell-completion-index", "2", "git", "lo"},
			ShowCompletions{Shell: Bash, Index: 2, Words: []string{"git", "lo"}},
		},
		{
			"completions without index",
			[]string{"--completions", "zsh"},
			ShowCompletions{Shell: Zsh, Index: -1, Words: []string{}},
		},
		{
			"script",
			[]string{"--shell-completion-script", "/usr/bin/git", "--shell-type", "sh"},
			ShowCompletionScript{Path: "/usr/bin/git", Shell: Sh},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			option, err := Parse(context.Background(), test.tokens, doc, config.Default())
			require.NoError(t, err)
			assert.Equal(t, test.want, option)
		})
	}
}

func TestParseNone(t *testing.T) {
	t.Parallel()

	for _, tokens := range [][]string{
		nil,
		{"file", "--lines"},
		{"--help=false"},
		{"--completions", "fish"},
		{"--shell-completion-script", "/bin/x"},
	} {
		_, err := Parse(context.Background(), tokens, help.Empty(), config.Default())
		require.ErrorIs(t, err, validation.ErrMissingValue, tokens)
	}
}

func TestParseShell(t *testing.T) {
	t.Parallel()

	shell, err := ParseShell("zsh")
	require.NoError(t, err)
	require.Equal(t, Zsh, shell)

	_, err = ParseShell("fish")
	require.ErrorIs(t, err, ErrUnknownShell)
}

func TestFlags(t *testing.T) {
	t.Parallel()

	var names []string
	for _, flag := range Flags() {
		names = append(names, flag.Names()...)
	}

	assert.Equal(t, []string{
		"--help", "-h", "--wizard", "--completions", "--shell-completion-index",
		"--shell-completion-script", "--shell-type",
	}, names)

	assert.Contains(t, help.Render(Help(), help.Plain), "--completions <choice>")
}
