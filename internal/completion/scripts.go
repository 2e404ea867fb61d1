// Package completion generates shell completion scripts from flag and
// subcommand metadata.
package completion

import (
	"fmt"
	"strings"
)

// Script returns the completion script for the given shell.
func Script(shell string) (string, error) {
	switch shell {
	case "bash":
		return generateBash(), nil
	case "zsh":
		return generateZsh(), nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell)
	}
}

func generateBash() string {
	var b strings.Builder

	b.WriteString("# bash completion for lazyuntrack\n\n")
	b.WriteString("_lazyuntrack() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")

	b.WriteString("    case \"$prev\" in\n")
	for _, flag := range GetFlags() {
		if !flag.HasValue {
			continue
		}
		fmt.Fprintf(&b, "        --%s)\n", flag.Name)
		switch {
		case len(flag.Values) > 0:
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(flag.Values, " "))
		case flag.ValueHint == "DIR":
			b.WriteString("            COMPREPLY=( $(compgen -d -- \"$cur\") )\n")
		case flag.ValueHint == "PATH" || flag.ValueHint == "FILE":
			b.WriteString("            COMPREPLY=( $(compgen -f -- \"$cur\") )\n")
		}
		b.WriteString("            return 0\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n\n")

	flagWords := make([]string, 0, len(GetFlags()))
	for _, flag := range GetFlags() {
		flagWords = append(flagWords, "--"+flag.Name)
	}
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(flagWords, " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")

	cmdWords := make([]string, 0, len(GetCommands()))
	for _, cmd := range GetCommands() {
		cmdWords = append(cmdWords, cmd.Name)
	}
	fmt.Fprintf(&b, "    COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(cmdWords, " "))
	b.WriteString("    return 0\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _lazyuntrack lazyuntrack\n")

	return b.String()
}

func generateZsh() string {
	var b strings.Builder

	b.WriteString("#compdef lazyuntrack\n\n")
	b.WriteString("_lazyuntrack() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range GetCommands() {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, cmd.Description)
	}
	b.WriteString("    )\n\n")

	b.WriteString("    _arguments -C \\\n")
	for _, flag := range GetFlags() {
		spec := fmt.Sprintf("--%s[%s]", flag.Name, flag.Description)
		if flag.HasValue {
			switch {
			case len(flag.Values) > 0:
				spec += fmt.Sprintf(":%s:(%s)", strings.ToLower(flag.ValueHint), strings.Join(flag.Values, " "))
			case flag.ValueHint == "DIR":
				spec += ":directory:_files -/"
			case flag.ValueHint == "PATH" || flag.ValueHint == "FILE":
				spec += ":file:_files"
			default:
				spec += fmt.Sprintf(":%s:", strings.ToLower(flag.ValueHint))
			}
		}
		fmt.Fprintf(&b, "        '%s' \\\n", spec)
	}
	b.WriteString("        '1: :->command' \\\n")
	b.WriteString("        '*: :->args'\n\n")

	b.WriteString("    case $state in\n")
	b.WriteString("        command)\n")
	b.WriteString("            _describe 'command' commands\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_lazyuntrack \"$@\"\n")

	return b.String()
}
