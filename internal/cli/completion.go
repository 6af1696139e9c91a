package cli

import (
	"fmt"
	"io"
	"strings"
)

// GenerateCompletion writes a completion script for shell ("bash", "zsh" or
// "fish") listing engines as the values of -engine.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type.
//   - engines: The registered engine names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, engines []string) error {
	list := strings.Join(append(append([]string{}, engines...), "all"), " ")
	switch shell {
	case "bash":
		_, err := fmt.Fprintf(out, bashCompletion, list)
		return err
	case "zsh":
		_, err := fmt.Fprintf(out, zshCompletion, list)
		return err
	case "fish":
		_, err := fmt.Fprintf(out, fishCompletion, list)
		return err
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

const bashCompletion = `# Bash completion script for bigcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_bigcalc_completions() {
    local cur prev opts engines
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="-h -version -a -op -b -engine -batch -input -output -o -interactive -server -port -timeout -max-digits -json -quiet -q -v -d -details -no-color -completion"
    engines="%s"

    case "${prev}" in
        -engine)
            COMPREPLY=( $(compgen -W "${engines}" -- "${cur}") )
            return 0
            ;;
        -op)
            COMPREPLY=( $(compgen -W "add sub mul div mod gcd" -- "${cur}") )
            return 0
            ;;
        -completion)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- "${cur}") )
            return 0
            ;;
        -input|-output|-o)
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
        -timeout)
            COMPREPLY=( $(compgen -W "10s 30s 1m 5m" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
    fi
}

complete -F _bigcalc_completions bigcalc
`

const zshCompletion = `#compdef bigcalc

# Zsh completion script for bigcalc
# Place this file in a directory listed in $fpath

_bigcalc() {
    local -a engines
    engines=(%s)

    _arguments -s \
        '-h[Show help message]' \
        '-version[Show version information]' \
        '-a[Left operand]:number:' \
        '-op[Operator]:operator:(add sub mul div mod gcd)' \
        '-b[Right operand]:number:' \
        '-engine[Engine to use]:engine:($engines)' \
        '-batch[Evaluate the job in the input file]' \
        '-input[Batch input file]:file:_files' \
        '(-o -output)'{-o,-output}'[Output file]:file:_files' \
        '-interactive[Start the interactive menu]' \
        '-server[Start in HTTP server mode]' \
        '-port[Server port]:port:' \
        '-timeout[Maximum execution time]:duration:(10s 30s 1m 5m)' \
        '-max-digits[Maximum operand length]:digits:' \
        '-json[Output results as JSON]' \
        '(-q -quiet)'{-q,-quiet}'[Print only the result]' \
        '-v[Print the full result]' \
        '(-d -details)'{-d,-details}'[Show timing details]' \
        '-no-color[Disable colored output]' \
        '-completion[Generate completion script]:shell:(bash zsh fish)'
}

_bigcalc "$@"
`

const fishCompletion = `# Fish completion script for bigcalc
# Add this to ~/.config/fish/completions/bigcalc.fish

complete -c bigcalc -f
complete -c bigcalc -o h -d 'Show help message'
complete -c bigcalc -o version -d 'Show version information'
complete -c bigcalc -o a -d 'Left operand' -x
complete -c bigcalc -o op -d 'Operator' -xa 'add sub mul div mod gcd'
complete -c bigcalc -o b -d 'Right operand' -x
complete -c bigcalc -o engine -d 'Engine to use' -xa '%s'
complete -c bigcalc -o batch -d 'Evaluate the job in the input file'
complete -c bigcalc -o input -d 'Batch input file' -r -F
complete -c bigcalc -o output -o o -d 'Output file' -r -F
complete -c bigcalc -o interactive -d 'Start the interactive menu'
complete -c bigcalc -o server -d 'Start in HTTP server mode'
complete -c bigcalc -o port -d 'Server port' -x
complete -c bigcalc -o timeout -d 'Maximum execution time' -xa '10s 30s 1m 5m'
complete -c bigcalc -o max-digits -d 'Maximum operand length' -x
complete -c bigcalc -o json -d 'Output results as JSON'
complete -c bigcalc -o quiet -o q -d 'Print only the result'
complete -c bigcalc -o v -d 'Print the full result'
complete -c bigcalc -o details -o d -d 'Show timing details'
complete -c bigcalc -o no-color -d 'Disable colored output'
complete -c bigcalc -o completion -d 'Generate completion script' -xa 'bash zsh fish'
`
