package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/action-picker/internal/app"
	"github.com/atomicstack/action-picker/internal/config"
	"github.com/atomicstack/action-picker/internal/format/table"
	"github.com/atomicstack/action-picker/internal/settings"
)

func newSettingsCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or change saved picker settings",
		Args:  cobra.NoArgs,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print every stored setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Open(cmd.Context(), cfg.App)
			if err != nil {
				return err
			}
			defer env.Close()
			entries, err := env.Settings.Entries(cmd.Context())
			if err != nil {
				return err
			}
			rows := [][]string{{"KEY", "VALUE", "DESCRIPTION"}}
			for _, e := range entries {
				desc := ""
				if s, ok := settings.Lookup(e.Key); ok {
					desc = s.Description
				}
				rows = append(rows, []string{e.Key, e.Value, desc})
			}
			return table.Write(cmd.OutOrStdout(), rows, nil)
		},
	}

	set := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Change a boolean setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setting, err := lookupSetting(args[0])
			if err != nil {
				return err
			}
			value, err := parseSettingValue(setting, args[1])
			if err != nil {
				return err
			}
			return writeSetting(cmd, cfg, setting, value)
		},
	}

	reset := &cobra.Command{
		Use:   "reset <name>",
		Short: "Restore a setting to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setting, err := lookupSetting(args[0])
			if err != nil {
				return err
			}
			return writeSetting(cmd, cfg, setting, setting.Default)
		},
	}

	cmd.AddCommand(list, set, reset)
	return cmd
}

func lookupSetting(name string) (settings.Setting, error) {
	setting, ok := settings.Lookup(name)
	if !ok {
		return settings.Setting{}, fmt.Errorf("unknown setting %q", name)
	}
	return setting, nil
}

// parseSettingValue decodes raw as YAML and checks it against the type of
// the setting default.
func parseSettingValue(setting settings.Setting, raw string) (any, error) {
	if _, ok := setting.Default.(bool); !ok {
		return nil, fmt.Errorf("%s cannot be set from the command line", setting.Name)
	}
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("parse %s: %w", setting.Name, err)
	}
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("%s expects true or false, got %q", setting.Name, raw)
	}
	return b, nil
}

func writeSetting(cmd *cobra.Command, cfg *config.Config, setting settings.Setting, value any) error {
	env, err := app.Open(cmd.Context(), cfg.App)
	if err != nil {
		return err
	}
	defer env.Close()
	if err := env.Settings.Set(cmd.Context(), setting.Name, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", settings.Key(setting.Name), value)
	return nil
}
