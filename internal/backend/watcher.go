package backend

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/tmux"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindCatalog Kind = iota
	KindContext
)

func (k Kind) String() string {
	switch k {
	case KindCatalog:
		return "catalog"
	case KindContext:
		return "context"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend source. Catalog
// events carry []action.Spec, context events carry the pane command string.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Options selects which sources the watcher follows.
type Options struct {
	SocketPath  string
	CatalogPath string
	// Interval is the tmux context poll interval. Zero disables polling.
	Interval time.Duration
}

var (
	loadCatalog    = action.LoadCatalog
	currentContext = tmux.CurrentContext
)

// Watcher follows the action catalog on disk and polls the tmux editing
// context, publishing events on a single channel.
type Watcher struct {
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts the configured sources. A catalog that cannot be watched
// is reported as an error event rather than failing construction.
func NewWatcher(opts Options) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}

	if opts.CatalogPath != "" {
		w.startCatalogWatcher()
	}
	if opts.Interval > 0 {
		w.startContextPoller()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Sources exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all source goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}

func (w *Watcher) startCatalogWatcher() {
	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		// Editors replace files on save, so watch the directory.
		err = fsw.Add(filepath.Dir(w.opts.CatalogPath))
		if err != nil {
			_ = fsw.Close()
		}
	}
	w.wg.Add(1)
	if err != nil {
		go func() {
			defer w.wg.Done()
			w.emit(Event{Kind: KindCatalog, Err: err})
		}()
		return
	}
	go w.watchCatalog(fsw)
}

func (w *Watcher) watchCatalog(fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fsw.Close()

	target := filepath.Clean(w.opts.CatalogPath)
	throttle := newThrottle(100 * time.Millisecond)
	for {
		select {
		case <-w.ctx.Done():
			return
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Kind: KindCatalog, Err: err}) {
				return
			}
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			throttle.wait()
			specs, err := loadCatalog(target)
			if !w.emit(Event{Kind: KindCatalog, Data: specs, Err: err}) {
				return
			}
		}
	}
}

func (w *Watcher) startContextPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindContext, func(ctx context.Context) (interface{}, error) {
		throttle.wait()
		return currentContext(w.opts.SocketPath)
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		return w.emit(Event{Kind: kind, Data: data, Err: err})
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
