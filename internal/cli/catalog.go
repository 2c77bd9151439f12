package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomicstack/action-picker/internal/action"
	"github.com/atomicstack/action-picker/internal/app"
	"github.com/atomicstack/action-picker/internal/config"
	"github.com/atomicstack/action-picker/internal/tree"
)

func newCatalogCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with the action catalog",
		Args:  cobra.NoArgs,
	}

	var keywords string
	check := &cobra.Command{
		Use:   "check",
		Short: "Validate the catalog and print the category tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs, err := action.LoadCatalog(cfg.App.CatalogPath)
			if err != nil {
				return err
			}
			env, err := app.Open(cmd.Context(), cfg.App)
			if err != nil {
				return err
			}
			defer env.Close()
			env.Store.Replace(specs)

			filter := action.Filter{}.WithKeywords(keywords)
			if cfg.App.Context != "" {
				env.Store.SetContext(cfg.App.Context)
				filter = filter.WithContextSensitive(true)
			}
			root := tree.Build(env.Store.Load(filter))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d actions, %d distinct categories\n", len(specs), len(env.Store.Categories()))
			fmt.Fprint(out, tree.Dump(root))
			return nil
		},
	}
	check.Flags().StringVar(&keywords, "filter", "", "only show actions matching these keywords")

	cmd.AddCommand(check)
	return cmd
}
