package cli

import (
	"fmt"
	"sort"

	"stockmaster/internal/core"
	"stockmaster/internal/store"

	"github.com/spf13/cobra"
)

func newPrefsCmd(root *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Read and write user preferences",
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", "Preferences file (default preferences.path or "+DefaultPreferencesFile+")")

	open := func(cmd *cobra.Command) (*store.Preferences, error) {
		path := file
		if path == "" {
			cfg, _, err := root.load(cmd)
			if err != nil {
				return nil, err
			}
			path = cfg.Preferences.Path
		}
		if path == "" {
			path = DefaultPreferencesFile
		}
		return store.OpenFilePreferences(path)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get [key]",
			Short: "Print one preference, or all of them",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				prefs, err := open(cmd)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					v, err := prefs.Get(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					fmt.Fprintln(out, v)
					return nil
				}
				all, err := prefs.All(cmd.Context())
				if err != nil {
					return err
				}
				keys := make([]string, 0, len(all))
				for k := range all {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "%s=%s\n", k, all[k])
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Validate and store a preference",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				prefs, err := open(cmd)
				if err != nil {
					return err
				}
				return prefs.Set(cmd.Context(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "unset <key>",
			Short: "Remove a preference",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				prefs, err := open(cmd)
				if err != nil {
					return err
				}
				return prefs.Delete(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Forget the stored user name and email",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				prefs, err := open(cmd)
				if err != nil {
					return err
				}
				return core.ClearIdentity(cmd.Context(), prefs)
			},
		},
	)
	return cmd
}
