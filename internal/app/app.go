package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/backend"
	"github.com/atomicstack/action-picker/internal/data/dispatcher"
	"github.com/atomicstack/action-picker/internal/favorites"
	"github.com/atomicstack/action-picker/internal/logging"
	"github.com/atomicstack/action-picker/internal/runner"
	"github.com/atomicstack/action-picker/internal/settings"
	"github.com/atomicstack/action-picker/internal/tmux"
	"github.com/atomicstack/action-picker/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath       string
	CatalogPath      string
	DBPath           string
	Context          string
	ContextSensitive bool
	Width            int
	Height           int
	ShowFooter       bool
	Verbose          bool
	PollInterval     time.Duration
}

// Env bundles the collaborators shared by the picker and the CLI
// subcommands.
type Env struct {
	Settings  *settings.Store
	Favorites *favorites.Index
	Store     *action.Store
}

// Open prepares the settings database, the favorites index and an empty
// action store.
func Open(ctx context.Context, cfg Config) (*Env, error) {
	store, err := settings.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("initialize settings: %w", err)
	}
	index, err := favorites.NewIndex(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return &Env{
		Settings:  store,
		Favorites: index,
		Store:     action.NewStore(index),
	}, nil
}

// LoadCatalog registers the actions from path. A missing file leaves the
// store empty so the watcher can pick the catalog up once it appears.
func (e *Env) LoadCatalog(path string) error {
	specs, err := action.LoadCatalog(path)
	if errors.Is(err, os.ErrNotExist) {
		logging.Error(err)
		return nil
	}
	if err != nil {
		return err
	}
	e.Store.Replace(specs)
	return nil
}

// Close releases the settings database.
func (e *Env) Close() error {
	if e == nil || e.Settings == nil {
		return nil
	}
	return e.Settings.Close()
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx := context.Background()
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	defer tmux.Shutdown()

	env, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer env.Close()
	if err := env.LoadCatalog(cfg.CatalogPath); err != nil {
		return err
	}

	pinned := strings.TrimSpace(cfg.Context) != ""
	interval := cfg.PollInterval
	if pinned {
		env.Store.SetContext(cfg.Context)
		interval = 0
	} else if current, err := tmux.CurrentContext(socketPath); err == nil {
		env.Store.SetContext(current)
	} else {
		logging.Error(err)
	}

	watcher := backend.NewWatcher(backend.Options{
		SocketPath:  socketPath,
		CatalogPath: cfg.CatalogPath,
		Interval:    interval,
	})
	defer watcher.Stop()

	var out bytes.Buffer
	model := ui.NewModel(env.Store, uiOptions(ctx, cfg, env, ui.Options{
		Executor:   runner.New(socketPath, &out),
		Watcher:    watcher,
		Dispatcher: dispatcher.New(env.Store, cfg.CatalogPath, pinned),
	}))
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	return finish(final, &out, os.Stdout)
}

// uiOptions merges the configuration and saved settings into opts.
func uiOptions(ctx context.Context, cfg Config, env *Env, opts ui.Options) ui.Options {
	opts.Width = cfg.Width
	opts.Height = cfg.Height
	opts.ShowFooter = cfg.ShowFooter
	opts.Verbose = cfg.Verbose
	opts.ContextSensitive = cfg.ContextSensitive || env.Settings.Bool(ctx, settings.ContextSensitive, false)
	opts.ShowIcons = env.Settings.Bool(ctx, settings.ShowTypeIcons, true)
	opts.ShowTooltips = env.Settings.Bool(ctx, settings.ShowTooltips, true)
	opts.Favorites = env.Favorites
	opts.Preferences = env.Settings
	return opts
}

// finish flushes handler output once the alternate screen is gone and
// surfaces a failed handler as the run error.
func finish(final tea.Model, out *bytes.Buffer, w io.Writer) error {
	if out.Len() > 0 {
		if _, err := w.Write(out.Bytes()); err != nil {
			return err
		}
	}
	m, ok := final.(*ui.Model)
	if !ok {
		return nil
	}
	if res := m.Result(); res != nil && res.Err != nil {
		return res.Err
	}
	return nil
}
