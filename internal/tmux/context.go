package tmux

import (
	"fmt"
	"os"
	"strings"
)

const contextFormat = "#{pane_current_command}"

// CurrentContext reports the command running in the pane that launched the
// picker. It is the editing context for context-sensitive filtering.
func CurrentContext(socketPath string) (string, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return "", err
	}
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	out, err := client.DisplayMessage(target, contextFormat)
	if err != nil {
		return "", fmt.Errorf("display-message: %w", err)
	}
	return strings.TrimSpace(out), nil
}
