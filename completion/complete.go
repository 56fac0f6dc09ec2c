// Package completion computes dynamic shell completions from the description
// tree of a command, and generates the shell scripts calling them back.
package completion

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/reeflective/grammar/args"
	"github.com/reeflective/grammar/builtin"
	"github.com/reeflective/grammar/command"
	"github.com/reeflective/grammar/config"
	"github.com/reeflective/grammar/options"
)

// EnvPrefix is the prefix of the environment variables holding the words
// of the command line being completed, suffixed by their index.
const EnvPrefix = "COMP_WORD_"

// Complete returns the candidates for the word at index in words, where
// words[0] is the program name. An index out of range completes a new,
// empty word after all the others. Candidates matching the word as a
// prefix come first; when none does, fuzzy matches are returned instead.
func Complete(roots []command.Info, words []string, index int, cfg config.Config) []string {
	w, line, current := walk(roots, words, index, cfg)
	if w == nil {
		if len(line) == 0 {
			return filter(names(roots), current, cfg)
		}

		return nil
	}

	return w.candidates(line, current)
}

// ValueType returns the type of the value expected at index in words,
// such as "file" for the value of a --config <file> option, or an empty
// string when a flag or a command name is expected there instead.
func ValueType(roots []command.Info, words []string, index int, cfg config.Config) string {
	w, line, current := walk(roots, words, index, cfg)
	if w == nil {
		return ""
	}

	return w.valueType(line, current)
}

// walk follows the words preceding index, returning a nil walker
// when the program name is being completed or is unknown.
func walk(roots []command.Info, words []string, index int, cfg config.Config) (*walker, []string, string) {
	if index < 0 || index > len(words) {
		index = len(words)
	}

	line := words[:index]

	var current string
	if index < len(words) {
		current = words[index]
	}

	if len(line) == 0 {
		return nil, line, current
	}

	node, ok := find(roots, line[0], cfg)
	if !ok {
		return nil, line, current
	}

	w := &walker{node: node, cfg: cfg}
	for i := 1; i < len(line); i++ {
		i += w.step(line[i])
	}

	return w, line, current
}

// WordsFromEnv returns the command line words found in the COMP_WORD_<n>
// variables of an environment (as returned by os.Environ), in index order.
func WordsFromEnv(environ []string) []string {
	type indexed struct {
		index int
		word  string
	}

	var found []indexed

	for _, variable := range environ {
		key, value, ok := strings.Cut(variable, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}

		index, err := strconv.Atoi(strings.TrimPrefix(key, EnvPrefix))
		if err != nil || index < 0 {
			continue
		}

		found = append(found, indexed{index: index, word: value})
	}

	slices.SortFunc(found, func(a, b indexed) int { return a.index - b.index })

	words := make([]string, 0, len(found))
	for _, item := range found {
		words = append(words, item.word)
	}

	return words
}

//
// Command line walk --------------------------------------------------------- //
//

// walker follows the words of a command line down the command tree.
type walker struct {
	node        command.Info
	cfg         config.Config
	marked      bool
	positionals int
}

// step processes a word, returning the number of following words it consumes.
func (w *walker) step(word string) int {
	switch {
	case w.marked:
		w.positionals++
	case word == options.EndOfOptions:
		w.marked = true
	case isFlag(word):
		flag, ok := w.flag(word)
		if ok && !flag.Bool && !strings.Contains(word, "=") {
			return 1
		}
	default:
		if child, ok := find(w.node.Children, word, w.cfg); ok && w.positionals == 0 {
			w.node = child
			return 0
		}
		w.positionals++
	}

	return 0
}

func (w *walker) candidates(line []string, current string) []string {
	if flag, ok := w.pending(line); ok {
		return filter(flag.Choices, current, w.cfg)
	}

	if !w.marked && isFlag(current) {
		if name, value, inline := strings.Cut(current, "="); inline {
			flag, ok := w.flag(name)
			if !ok {
				return nil
			}

			var values []string
			for _, choice := range filter(flag.Choices, value, w.cfg) {
				values = append(values, name+"="+choice)
			}

			return values
		}

		var flagNames []string
		for _, flag := range w.flags() {
			flagNames = append(flagNames, flag.Names()...)
		}

		return filter(flagNames, current, w.cfg)
	}

	var candidates []string
	if w.positionals == 0 && !w.marked {
		candidates = names(w.node.Children)
	}

	if arg, ok := argAt(w.node.Args, w.positionals); ok {
		candidates = append(candidates, arg.Choices...)
	}

	return filter(candidates, current, w.cfg)
}

func (w *walker) valueType(line []string, current string) string {
	if flag, ok := w.pending(line); ok {
		return flag.Type
	}

	if !w.marked && isFlag(current) {
		return ""
	}

	if arg, ok := argAt(w.node.Args, w.positionals); ok {
		return arg.Type
	}

	return ""
}

// pending returns the flag of the last word when it expects a value.
func (w *walker) pending(line []string) (options.Flag, bool) {
	if w.marked || len(line) < 2 {
		return options.Flag{}, false
	}

	last := line[len(line)-1]

	flag, ok := w.flag(last)
	if !ok || flag.Bool || strings.Contains(last, "=") {
		return options.Flag{}, false
	}

	return flag, true
}

func (w *walker) flags() []options.Flag {
	return append(slices.Clone(w.node.Flags), builtin.Flags()...)
}

func (w *walker) flag(word string) (options.Flag, bool) {
	name, _, _ := strings.Cut(word, "=")

	for _, flag := range w.flags() {
		for _, full := range flag.Names() {
			if w.cfg.Equal(name, full) {
				return flag, true
			}
		}
	}

	return options.Flag{}, false
}

//
// Helpers ------------------------------------------------------------------ //
//

func find(infos []command.Info, name string, cfg config.Config) (command.Info, bool) {
	for _, info := range infos {
		if cfg.Equal(info.Name, name) {
			return info, true
		}
	}

	return command.Info{}, false
}

func names(infos []command.Info) []string {
	list := make([]string, 0, len(infos))
	for _, info := range infos {
		list = append(list, info.Name)
	}

	return list
}

// argAt returns the positional slot filled by the nth positional word.
func argAt(infos []args.Info, n int) (args.Info, bool) {
	for _, info := range infos {
		if info.Max == args.Unbounded || n < info.Max {
			return info, true
		}

		n -= info.Max
	}

	return args.Info{}, false
}

func isFlag(word string) bool {
	return strings.HasPrefix(word, "-") && word != "-"
}

// filter returns the candidates starting with word, in order and without
// duplicates, or the fuzzy matches of word when no candidate does.
func filter(candidates []string, word string, cfg config.Config) []string {
	var matches []string

	seen := make(map[string]bool)

	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true

		if strings.HasPrefix(cfg.Normalize(candidate), cfg.Normalize(word)) {
			matches = append(matches, candidate)
		}
	}

	if len(matches) > 0 || word == "" {
		return matches
	}

	ranks := fuzzy.RankFindFold(word, candidates)
	sort.Sort(ranks)

	for _, rank := range ranks {
		if !slices.Contains(matches, rank.Target) {
			matches = append(matches, rank.Target)
		}
	}

	return matches
}
