// Package cli exposes the picker and its maintenance subcommands as a cobra
// command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomicstack/action-picker/internal/app"
	"github.com/atomicstack/action-picker/internal/config"
	"github.com/atomicstack/action-picker/internal/logging"
	"github.com/atomicstack/action-picker/internal/logging/events"
)

// Options customises the command tree. Zero values use the real picker and
// process environment.
type Options struct {
	Run     func(app.Config) error
	Environ func() []string
	OnStart func(config.Config)
}

// ExitError carries a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func configError(err error) error {
	return &ExitError{Code: 2, Err: err}
}

// NewRootCommand builds the command tree. Running the root command opens
// the picker.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Run == nil {
		opts.Run = app.Run
	}
	if opts.Environ == nil {
		opts.Environ = config.Environ
	}

	cfg := &config.Config{}
	root := &cobra.Command{
		Use:           "action-picker",
		Short:         "Searchable, categorized action picker for tmux popups",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			resolved, err := config.Resolve(cmd.Flags(), opts.Environ())
			if err != nil {
				return configError(err)
			}
			if err := config.Validate(resolved); err != nil {
				return configError(err)
			}
			resolved.Args = append([]string(nil), os.Args[1:]...)
			logging.Configure(resolved.Logging.FilePath)
			logging.SetTraceEnabled(resolved.Logging.Trace)
			*cfg = resolved
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if opts.OnStart != nil {
				opts.OnStart(*cfg)
			}
			err := opts.Run(cfg.App)
			events.App.Exit(err)
			return err
		},
	}
	config.RegisterFlags(root.PersistentFlags())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return configError(err)
	})
	root.AddCommand(
		newFavoritesCommand(cfg),
		newSettingsCommand(cfg),
		newCatalogCommand(cfg),
	)
	return root
}

// Execute runs the command tree against os.Args and returns the process
// exit code.
func Execute(opts Options) int {
	return run(NewRootCommand(opts), os.Stderr)
}

func run(root *cobra.Command, stderr io.Writer) int {
	err := root.Execute()
	if err == nil {
		return 0
	}
	logging.Error(err)
	var exit *ExitError
	if errors.As(err, &exit) {
		fmt.Fprintf(stderr, "Configuration error: %v\n", exit.Err)
		return exit.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
