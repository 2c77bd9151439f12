// Package runner carries out the handler of an activated action.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/tmux"
)

// Result reports the outcome of running a handler.
type Result struct {
	Handler *action.Handler
	Info    string
	Err     error
}

// Runner executes handlers. Print output is written to Output, which the
// caller flushes once the terminal has been released.
type Runner struct {
	SocketPath string
	Shell      string

	mu     sync.Mutex
	output io.Writer

	runTmux   func(socketPath, command string) (string, error)
	writeClip func(text string) error
}

// New constructs a runner writing print output to out.
func New(socketPath string, out io.Writer) *Runner {
	return &Runner{
		SocketPath: socketPath,
		Shell:      "sh",
		output:     out,
		runTmux:    tmux.RunCommand,
		writeClip:  clipboard.WriteAll,
	}
}

// Run executes h. A nil handler is a silent no-op.
func (r *Runner) Run(ctx context.Context, h *action.Handler) Result {
	res := Result{Handler: h}
	if h == nil {
		return res
	}
	switch h.Kind {
	case action.HandlerPrint:
		res.Err = r.print(h.Command)
	case action.HandlerShell:
		res.Info, res.Err = r.shell(ctx, h.Command)
	case action.HandlerTmux:
		res.Info, res.Err = r.runTmux(r.SocketPath, h.Command)
	case action.HandlerClipboard:
		res.Err = r.writeClip(h.Command)
		if res.Err == nil {
			res.Info = "copied to clipboard"
		}
	default:
		res.Err = fmt.Errorf("unsupported handler kind %q", h.Kind)
	}
	// Info is rendered in the status line; output escapes would break it.
	res.Info = ansi.Strip(res.Info)
	if res.Err != nil {
		res.Err = fmt.Errorf("%s: %w", h.Kind, res.Err)
	}
	return res
}

func (r *Runner) print(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.output == nil {
		return errors.New("no output configured")
	}
	_, err := io.WriteString(r.output, text+"\n")
	return err
}

func (r *Runner) shell(ctx context.Context, command string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", errors.New("empty shell command")
	}
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Shell, "-c", command)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	text := strings.TrimRight(out.String(), "\n")
	if err != nil {
		if text != "" {
			return text, fmt.Errorf("%w: %s", err, text)
		}
		return text, err
	}
	if text != "" {
		r.mu.Lock()
		if r.output != nil {
			_, _ = io.WriteString(r.output, text+"\n")
		}
		r.mu.Unlock()
	}
	return text, nil
}
