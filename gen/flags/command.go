// Package flags generates cobra commands from command grammars.
//
// Cobra does not parse the command line of generated commands: its flag
// parsing is disabled, and all arguments are handed to the grammar, which
// produces the value given to the handler. The cobra flag set is still
// populated with the grammar flags, so that documentation generators and
// completion engines working on cobra commands can see them.
package flags

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reeflective/grammar/app"
	"github.com/reeflective/grammar/builtin"
	"github.com/reeflective/grammar/command"
	"github.com/reeflective/grammar/help"
)

// Generate returns a root cobra command running the grammar, named after
// its first root command.
// The handler is called with the value of a parsed command line.
func Generate[A any](grammar command.Command[A], handler app.Handler[A], optFuncs ...OptFunc) (*cobra.Command, error) {
	infos := grammar.Info()
	if len(infos) == 0 {
		return nil, ErrNoCommand
	}

	settings := defOpts().apply(optFuncs...)
	root := infos[0]

	cmd := &cobra.Command{
		Use:   root.Synopsis,
		Short: root.Description,

		// The grammar parses everything, built-in options included.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	if !settings.hideFlags {
		generateTo(root.Flags, cmd.Flags())
		generateTo(builtin.Flags(), cmd.Flags())
	}

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		render(c.OutOrStdout(), grammar.Help())
	})

	cmd.RunE = func(c *cobra.Command, args []string) error {
		ctx := c.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		opts := append([]app.Option{
			app.WithConfig(settings.cfg),
			app.WithIO(c.InOrStdin(), c.OutOrStdout(), c.ErrOrStderr()),
		}, settings.runner...)

		if status := app.New(grammar, handler, opts...).Run(ctx, args); status != app.ExitOK {
			return fmt.Errorf("%w: %d", ErrExitStatus, status)
		}

		return nil
	}

	return cmd, nil
}

func render(w io.Writer, doc help.Doc) {
	mode, width := help.Plain, 0

	if file, ok := w.(interface{ Fd() uintptr }); ok {
		mode = help.ModeFor(int(file.Fd()))
		width = help.WidthFor(int(file.Fd()))
	}

	fmt.Fprint(w, help.RenderWidth(doc, mode, width))
}
