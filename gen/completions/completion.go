package completions

import (
	"github.com/carapace-sh/carapace"

	"github.com/reeflective/grammar/command"
	"github.com/reeflective/grammar/completion"
	"github.com/reeflective/grammar/config"
)

// Words returns the words of the command line being completed,
// program name first and current word last.
func Words(name string, ctx carapace.Context) []string {
	words := make([]string, 0, len(ctx.Args)+2)
	words = append(words, name)
	words = append(words, ctx.Args...)

	return append(words, ctx.Value)
}

// action returns the completions of the current word, adding the files or
// directories of the working directory when a path is expected there.
func action(infos []command.Info, words []string, cfg config.Config) carapace.Action {
	index := len(words) - 1
	values := carapace.ActionValues(completion.Complete(infos, words, index, cfg)...)

	switch completion.ValueType(infos, words, index, cfg) {
	case "file", "path":
		return carapace.Batch(values, carapace.ActionFiles()).ToA()
	case "directory":
		return carapace.Batch(values, carapace.ActionDirectories()).ToA()
	default:
		return values
	}
}
