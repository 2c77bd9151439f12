package backend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/action-picker/internal/action"
)

func nextEvent(t *testing.T, w *Watcher, kind Kind) Event {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed before %s event", kind)
			}
			if evt.Kind == kind {
				return evt
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s event", kind)
		}
	}
}

func TestContextPollerEmitsImmediately(t *testing.T) {
	prev := currentContext
	currentContext = func(string) (string, error) { return "nvim", nil }
	t.Cleanup(func() { currentContext = prev })

	w := NewWatcher(Options{Interval: time.Hour})
	defer func() {
		w.Stop()
		w.Wait()
	}()
	evt := nextEvent(t, w, KindContext)
	if evt.Err != nil || evt.Data.(string) != "nvim" {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestContextPollerReportsErrors(t *testing.T) {
	prev := currentContext
	currentContext = func(string) (string, error) { return "", errors.New("no server") }
	t.Cleanup(func() { currentContext = prev })

	w := NewWatcher(Options{Interval: time.Hour})
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if evt := nextEvent(t, w, KindContext); evt.Err == nil {
		t.Fatalf("expected error event")
	}
}

func TestCatalogWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actions.yaml")
	if err := os.WriteFile(path, []byte("actions: []\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	w := NewWatcher(Options{CatalogPath: path})
	defer func() {
		w.Stop()
		w.Wait()
	}()

	doc := "actions:\n  - category: Math/Add\n    text: Add\n"
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}
	// A rewrite can surface as several events; the last one sees the full file.
	for {
		evt := nextEvent(t, w, KindCatalog)
		if evt.Err != nil {
			t.Fatalf("unexpected error: %v", evt.Err)
		}
		specs, ok := evt.Data.([]action.Spec)
		if !ok {
			t.Fatalf("expected specs, got %T", evt.Data)
		}
		if len(specs) == 0 {
			continue
		}
		if len(specs) != 1 || specs[0].Category != "Math/Add" {
			t.Fatalf("unexpected specs %+v", specs)
		}
		return
	}
}

func TestCatalogWatcherMissingDirectory(t *testing.T) {
	w := NewWatcher(Options{CatalogPath: filepath.Join(t.TempDir(), "missing", "actions.yaml")})
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if evt := nextEvent(t, w, KindCatalog); evt.Err == nil {
		t.Fatalf("expected watch error")
	}
}

func TestStopClosesEvents(t *testing.T) {
	w := NewWatcher(Options{})
	w.Stop()
	w.Wait()
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel not closed")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	th.wait()
	th.wait()
	th.wait()
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected throttled calls, elapsed %v", elapsed)
	}
	var nilThrottle *throttle
	nilThrottle.wait()
}
