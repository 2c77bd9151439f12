package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// tmuxClient is the subset of the control-mode client the picker uses.
type tmuxClient interface {
	DisplayMessage(target, format string) (string, error)
	Command(args ...string) (string, error)
	Close() error
}

var (
	clientMu     sync.Mutex
	cachedClient tmuxClient
	cachedSocket string

	dialTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	// newTmux returns the shared control-mode connection for socketPath,
	// dialing a new one when the socket changes.
	newTmux = func(socketPath string) (tmuxClient, error) {
		clientMu.Lock()
		defer clientMu.Unlock()
		if cachedClient != nil && cachedSocket == socketPath {
			return cachedClient, nil
		}
		if cachedClient != nil {
			_ = cachedClient.Close()
			cachedClient = nil
			cachedSocket = ""
		}
		client, err := dialTmux(socketPath)
		if err != nil {
			return nil, err
		}
		cachedClient = client
		cachedSocket = socketPath
		return client, nil
	}
)

// Shutdown closes the shared connection.
func Shutdown() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil {
		_ = cachedClient.Close()
	}
	cachedClient = nil
	cachedSocket = ""
}

// ResolveSocketPath picks the tmux socket from the flag, ACTION_PICKER_SOCKET,
// $TMUX or the default per-user location, in that order.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("ACTION_PICKER_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}
