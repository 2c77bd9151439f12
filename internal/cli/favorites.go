package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomicstack/action-picker/internal/app"
	"github.com/atomicstack/action-picker/internal/config"
)

func newFavoritesCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "List or edit pinned actions",
		Args:  cobra.NoArgs,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print pinned action categories in pin order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Open(cmd.Context(), cfg.App)
			if err != nil {
				return err
			}
			defer env.Close()
			out := cmd.OutOrStdout()
			for _, category := range env.Favorites.List() {
				fmt.Fprintln(out, category)
			}
			return nil
		},
	}

	var force bool
	add := &cobra.Command{
		Use:   "add <category>...",
		Short: "Pin actions by category path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFavorites(cmd, cfg, args, !force, func(ctx context.Context, env *app.Env, category string) (string, error) {
				added, err := env.Favorites.Add(ctx, category)
				if err != nil {
					return "", err
				}
				if !added {
					return category + " already pinned", nil
				}
				return "pinned " + category, nil
			})
		},
	}
	add.Flags().BoolVar(&force, "force", false, "pin categories missing from the catalog")

	remove := &cobra.Command{
		Use:     "remove <category>...",
		Aliases: []string{"rm"},
		Short:   "Unpin actions by category path",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editFavorites(cmd, cfg, args, false, func(ctx context.Context, env *app.Env, category string) (string, error) {
				removed, err := env.Favorites.Remove(ctx, category)
				if err != nil {
					return "", err
				}
				if !removed {
					return category + " was not pinned", nil
				}
				return "unpinned " + category, nil
			})
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

type favoriteEdit func(ctx context.Context, env *app.Env, category string) (string, error)

func editFavorites(cmd *cobra.Command, cfg *config.Config, categories []string, checkCatalog bool, edit favoriteEdit) error {
	ctx := cmd.Context()
	env, err := app.Open(ctx, cfg.App)
	if err != nil {
		return err
	}
	defer env.Close()
	if checkCatalog {
		if err := env.LoadCatalog(cfg.App.CatalogPath); err != nil {
			return err
		}
		for _, category := range categories {
			if !env.Store.Has(category) {
				return fmt.Errorf("unknown action %q (use --force to pin anyway)", category)
			}
		}
	}
	out := cmd.OutOrStdout()
	for _, category := range categories {
		msg, err := edit(ctx, env, category)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
	}
	return nil
}
