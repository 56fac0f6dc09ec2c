// Package completions registers carapace completions on cobra commands
// generated from command grammars.
package completions

import (
	"github.com/carapace-sh/carapace"
	"github.com/spf13/cobra"

	"github.com/reeflective/grammar/command"
	"github.com/reeflective/grammar/config"
)

// Generate uses a carapace completion builder to register the completions
// of a grammar on the cobra command running it. Generated commands do not
// parse their flags, so all words are completed by the grammar itself.
// Returns the carapace, so you can work with completions should you like.
func Generate[A any](cmd *cobra.Command, grammar command.Command[A], cfg config.Config, comps *carapace.Carapace) *carapace.Carapace {
	if comps == nil {
		comps = carapace.Gen(cmd)
	}

	infos := grammar.Info()

	handler := func(ctx carapace.Context) carapace.Action {
		return action(infos, Words(cmd.Name(), ctx), cfg)
	}

	comps.PositionalAnyCompletion(carapace.ActionCallback(handler))

	return comps
}

// Snippet returns the carapace completion script of cmd for a shell
// (bash, zsh, fish, powershell, nushell...).
func Snippet(cmd *cobra.Command, shell string) (string, error) {
	return carapace.Gen(cmd).Snippet(shell)
}
