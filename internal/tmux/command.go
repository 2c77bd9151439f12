package tmux

import (
	"errors"
	"fmt"
	"strings"
)

// RunCommand executes a tmux command line such as
// `display-message "hello world"` over the control-mode connection.
func RunCommand(socketPath, command string) (string, error) {
	args, err := SplitArgs(command)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		return "", errors.New("empty tmux command")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return "", err
	}
	out, err := client.Command(args...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", args[0], err)
	}
	return strings.TrimRight(out, "\n"), nil
}

// SplitArgs tokenizes a command line on whitespace, honouring single quotes,
// double quotes and backslash escapes outside single quotes.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t' || r == '\n':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
