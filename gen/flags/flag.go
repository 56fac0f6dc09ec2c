package flags

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/reeflective/grammar/options"
)

// flagSet describes interface,
// that's implemented by pflag library and required by flags.
type flagSet interface {
	VarPF(value pflag.Value, name, shorthand, usage string) *pflag.Flag
	Lookup(name string) *pflag.Flag
	ShorthandLookup(name string) *pflag.Flag
}

var _ flagSet = (*pflag.FlagSet)(nil)

// value records the raw values of a grammar flag. Generated commands
// never parse flags themselves, so it is only set by callers parsing
// the cobra flag set on their own.
type value struct {
	flag options.Flag
	raw  []string
}

func (v *value) Set(s string) error { v.raw = append(v.raw, s); return nil }
func (v *value) Type() string       { return v.flag.Type }

func (v *value) String() string {
	if len(v.raw) == 0 && v.flag.Bool {
		return "false"
	}

	return strings.Join(v.raw, ",")
}

// generateTo registers grammar flags on a pflag set. Flags whose
// names are already taken in the set are skipped.
func generateTo(src []options.Flag, dst flagSet) {
	for _, srcFlag := range src {
		name, short := flagNames(srcFlag)

		if dst.Lookup(name) != nil {
			continue
		}

		if short != "" && dst.ShorthandLookup(short) != nil {
			short = ""
		}

		registerFlag(dst, srcFlag, name, short)
	}
}

// registerFlag handles the creation and configuration of a single pflag.Flag.
func registerFlag(dst flagSet, src options.Flag, name, short string) {
	usage := src.Description
	if len(src.Choices) > 0 {
		usage = strings.TrimSpace(usage + " (" + strings.Join(src.Choices, "|") + ")")
	}

	flag := dst.VarPF(&value{flag: src}, name, short, usage)
	flag.Annotations = map[string][]string{}

	if src.Bool {
		flag.NoOptDefVal = "true"
	}

	if src.KeyValue {
		flag.Annotations["flags"] = []string{"key-value"}
	}
}

// flagNames returns the long name and the shorthand of a flag:
// the first multi-letter name, and the first single-letter one.
// Flags with single-letter names only have no shorthand.
func flagNames(flag options.Flag) (name, short string) {
	for _, candidate := range append([]string{flag.Name}, flag.Aliases...) {
		switch {
		case len([]rune(candidate)) == 1 && short == "":
			short = candidate
		case len([]rune(candidate)) > 1 && name == "":
			name = candidate
		}
	}

	if name == "" {
		return short, ""
	}

	return name, short
}
