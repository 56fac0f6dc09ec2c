package options

import (
	"regexp"

	"github.com/reeflective/grammar/config"
)

var clusterPattern = regexp.MustCompile(`^-[a-zA-Z]{2,}$`)

// Uncluster expands clusters of single-letter boolean flags ("-lw")
// into separate tokens ("-l", "-w"). A cluster is only expanded when
// all of its letters are known single-letter boolean flags, so that
// "-abc" stays intact when it is a value or an unknown flag. Tokens
// after the end-of-options marker are never expanded.
func Uncluster(tokens []string, flags []Flag, cfg config.Config) []string {
	switches := make(map[string]bool)

	for _, flag := range flags {
		if !flag.Bool {
			continue
		}

		for _, name := range flag.Names() {
			if len([]rune(name)) == 2 {
				switches[cfg.Normalize(name)] = true
			}
		}
	}

	expanded := make([]string, 0, len(tokens))

	for index, token := range tokens {
		if token == EndOfOptions {
			return append(expanded, tokens[index:]...)
		}

		letters, ok := unclusterOne(token, switches, cfg)
		if !ok {
			expanded = append(expanded, token)
			continue
		}

		expanded = append(expanded, letters...)
	}

	return expanded
}

func unclusterOne(token string, switches map[string]bool, cfg config.Config) ([]string, bool) {
	if !clusterPattern.MatchString(token) {
		return nil, false
	}

	letters := make([]string, 0, len(token)-1)

	for _, letter := range token[1:] {
		flag := "-" + string(letter)
		if !switches[cfg.Normalize(flag)] {
			return nil, false
		}

		letters = append(letters, flag)
	}

	return letters, true
}
