package command

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/runner"
)

type stubExecutor struct {
	calls []*action.Handler
	err   error
}

func (s *stubExecutor) Run(_ context.Context, h *action.Handler) runner.Result {
	s.calls = append(s.calls, h)
	return runner.Result{Handler: h, Err: s.err}
}

func TestExecuteRunsHandler(t *testing.T) {
	exec := &stubExecutor{}
	bus := New(exec)
	h := &action.Handler{Kind: action.HandlerPrint, Command: "x"}
	msg := bus.Execute(context.Background(), Request{ID: "Math/Add", Label: "Add", Handler: h})()
	res, ok := msg.(runner.Result)
	if !ok {
		t.Fatalf("expected runner.Result, got %T", msg)
	}
	if res.Err != nil || res.Handler != h {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("expected one executor call, got %d", len(exec.calls))
	}
}

func TestExecuteNilHandlerSkipsExecutor(t *testing.T) {
	exec := &stubExecutor{}
	msg := New(exec).Execute(context.Background(), Request{ID: "Info/About"})()
	if _, ok := msg.(runner.Result); !ok {
		t.Fatalf("expected runner.Result, got %T", msg)
	}
	if len(exec.calls) != 0 {
		t.Fatalf("expected executor to be skipped")
	}
}

func TestExecutePropagatesErrors(t *testing.T) {
	exec := &stubExecutor{err: errors.New("boom")}
	msg := New(exec).Execute(context.Background(), Request{Handler: &action.Handler{Kind: action.HandlerShell}})()
	if res := msg.(runner.Result); res.Err == nil {
		t.Fatalf("expected error result")
	}
}
