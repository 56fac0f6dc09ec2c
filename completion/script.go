package completion

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/reeflective/grammar/builtin"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// Script returns the completion script of a shell for program, calling
// back the executable at path to compute completions:
//
//	<path> --completions <shell> --shell-completion-index <cword>
//
// with the command line words exported as COMP_WORD_<n> variables.
func Script(path, program string, shell builtin.Shell) (string, error) {
	fn := "_" + unsafeChars.ReplaceAllString(program, "_") + "_completions"
	exe := shellQuote(path)

	switch shell {
	case builtin.Bash:
		return fmt.Sprintf(bashScript, exe, program, fn), nil
	case builtin.Sh:
		return fmt.Sprintf(shScript, exe, program, fn), nil
	case builtin.Zsh:
		return fmt.Sprintf(zshScript, exe, program, fn), nil
	}

	return "", fmt.Errorf("%w: %q", builtin.ErrUnknownShell, shell)
}

// WriteScript writes the completion script of a shell to w.
func WriteScript(w io.Writer, path, program string, shell builtin.Shell) error {
	script, err := Script(path, program, shell)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, script)

	return err
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

const bashScript = `# bash completion for %[2]s                        -*- shell-script -*-

%[3]s()
{
    local i
    local IFS=$'\n'

    for i in "${!COMP_WORDS[@]}"; do
        export "COMP_WORD_${i}=${COMP_WORDS[$i]}"
    done

    mapfile -t COMPREPLY < <(%[1]s --completions bash --shell-completion-index "${COMP_CWORD}" 2>/dev/null)

    for i in "${!COMP_WORDS[@]}"; do
        unset "COMP_WORD_${i}"
    done
}

complete -o default -F %[3]s %[2]s
`

const shScript = `# sh completion for %[2]s                          -*- shell-script -*-

%[3]s()
{
    local i=0
    local IFS='
'

    for word in "${COMP_WORDS[@]}"; do
        export "COMP_WORD_${i}=${word}"
        i=$((i + 1))
    done

    COMPREPLY=($(compgen -W "$(%[1]s --completions sh --shell-completion-index "${COMP_CWORD}" 2>/dev/null)" -- "${COMP_WORDS[COMP_CWORD]}"))

    while [ "${i}" -gt 0 ]; do
        i=$((i - 1))
        unset "COMP_WORD_${i}"
    done
}

complete -o default -F %[3]s %[2]s
`

const zshScript = `#compdef %[2]s

# zsh completion for %[2]s                         -*- shell-script -*-

%[3]s()
{
    local i
    local -a completions

    for (( i = 1; i <= ${#words[@]}; i++ )); do
        export "COMP_WORD_$(( i - 1 ))=${words[i]}"
    done

    completions=("${(@f)$(%[1]s --completions zsh --shell-completion-index $(( CURRENT - 1 )) 2>/dev/null)}")

    for (( i = 1; i <= ${#words[@]}; i++ )); do
        unset "COMP_WORD_$(( i - 1 ))"
    done

    compadd -U -a completions
}

compdef %[3]s %[2]s
`
