package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/shlex"

	"github.com/reeflective/grammar/args"
	"github.com/reeflective/grammar/command"
	"github.com/reeflective/grammar/options"
)

// ErrWizardAborted is returned when the wizard input ends early.
var ErrWizardAborted = errors.New("wizard aborted")

// wizard builds a command line by prompting for each
// subcommand, flag and argument of the command tree.
func (r *Runner[A]) wizard(ctx context.Context) ([]string, error) {
	in := bufio.NewScanner(r.stdin)

	node, err := r.choose(in, "command", r.cmd.Info())
	if err != nil {
		return nil, err
	}

	tokens := []string{node.Name}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, flag := range node.Flags {
			words, err := r.promptFlag(in, flag)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, words...)
		}

		var positionals []string
		for _, arg := range node.Args {
			words, err := r.promptArg(in, arg)
			if err != nil {
				return nil, err
			}
			positionals = append(positionals, words...)
		}

		tokens = append(tokens, positionals...)

		if len(node.Children) == 0 {
			break
		}

		if node, err = r.choose(in, "subcommand", node.Children); err != nil {
			return nil, err
		}

		tokens = append(tokens, node.Name)
	}

	fmt.Fprintf(r.stdout, "Command line: %s\n", strings.Join(tokens, " "))

	return tokens, nil
}

// choose selects one command among infos, asking only when there are several.
func (r *Runner[A]) choose(in *bufio.Scanner, what string, infos []command.Info) (command.Info, error) {
	if len(infos) == 1 {
		return infos[0], nil
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}

	for {
		answer, err := r.ask(in, fmt.Sprintf("Choose a %s (%s): ", what, strings.Join(names, ", ")))
		if err != nil {
			return command.Info{}, err
		}

		for _, info := range infos {
			if r.cfg.Equal(info.Name, strings.TrimSpace(answer)) {
				return info, nil
			}
		}

		fmt.Fprintf(r.stdout, "Unknown %s %q.\n", what, answer)
	}
}

func (r *Runner[A]) promptFlag(in *bufio.Scanner, flag options.Flag) ([]string, error) {
	name := flag.Names()[0]

	if flag.Bool {
		answer, err := r.ask(in, fmt.Sprintf("%s%s [y/N]: ", name, describe(flag.Description)))
		if err != nil {
			return nil, err
		}

		if slices.Contains([]string{"y", "yes"}, strings.ToLower(strings.TrimSpace(answer))) {
			return []string{name}, nil
		}

		return nil, nil
	}

	kind := flag.Type
	if len(flag.Choices) > 0 {
		kind = strings.Join(flag.Choices, "|")
	}

	answer, err := r.ask(in, fmt.Sprintf("%s <%s>%s (empty to skip): ", name, kind, describe(flag.Description)))
	if err != nil {
		return nil, err
	}

	values, err := shlex.Split(answer)
	if err != nil || len(values) == 0 {
		return nil, err
	}

	if flag.KeyValue {
		return append([]string{name}, values...), nil
	}

	return []string{name, strings.Join(values, " ")}, nil
}

func (r *Runner[A]) promptArg(in *bufio.Scanner, arg args.Info) ([]string, error) {
	kind := arg.Type
	if len(arg.Choices) > 0 {
		kind = strings.Join(arg.Choices, "|")
	}

	repeat := ""
	if arg.Max == args.Unbounded || arg.Max > 1 {
		repeat = ", space-separated"
	}

	answer, err := r.ask(in, fmt.Sprintf("<%s> (%s%s)%s: ", arg.Name, kind, repeat, describe(arg.Description)))
	if err != nil {
		return nil, err
	}

	return shlex.Split(answer)
}

func (r *Runner[A]) ask(in *bufio.Scanner, prompt string) (string, error) {
	fmt.Fprint(r.stdout, prompt)

	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrWizardAborted, err)
		}

		return "", fmt.Errorf("%w: %w", ErrWizardAborted, io.ErrUnexpectedEOF)
	}

	return in.Text(), nil
}

func describe(description string) string {
	if description == "" {
		return ""
	}

	return " " + description
}
