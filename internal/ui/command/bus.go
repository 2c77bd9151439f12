package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/logging/events"
	"github.com/atomicstack/action-picker/internal/runner"
	tea "github.com/charmbracelet/bubbletea"
)

// Executor runs an action handler.
type Executor interface {
	Run(ctx context.Context, h *action.Handler) runner.Result
}

// Request encapsulates an action activation.
type Request struct {
	ID      string
	Label   string
	Handler *action.Handler
}

// Bus coordinates the execution of activated actions.
type Bus struct {
	exec Executor
}

// New initialises a command bus instance.
func New(exec Executor) *Bus {
	return &Bus{exec: exec}
}

// Execute wraps a handler into a Bubble Tea command while emitting trace logs.
// The command always yields a runner.Result so the model can quit.
func (b *Bus) Execute(ctx context.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.NoOp(req.ID, req.Label)
			return runner.Result{}
		}
		if b == nil || b.exec == nil {
			events.Command.Skip(req.ID, req.Label)
			return runner.Result{Handler: req.Handler}
		}
		res := b.exec.Run(ctx, req.Handler)
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", res))
		if res.Err != nil {
			events.Action.Error(res.Err)
		} else {
			events.Action.Success(res.Info)
		}
		return res
	}
}
