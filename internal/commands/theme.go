package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/askgemini/internal/config"
)

// NewThemeCmd creates the theme preference command
func NewThemeCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [toggle|dark|light]",
		Short: "Show or change the color theme",
		Long: `Show the saved color theme, or change it.

  askgemini theme           Print the current theme
  askgemini theme toggle    Switch between dark and light
  askgemini theme light     Use the light theme`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle", string(config.ThemeDark), string(config.ThemeLight)},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.DefaultThemeStore()
			if err != nil {
				return err
			}

			theme := store.Load()
			if len(args) == 0 {
				fmt.Fprintln(deps.Stdout, theme)
				return nil
			}

			if args[0] == "toggle" {
				theme = theme.Toggle()
			} else if theme, err = config.ParseTheme(args[0]); err != nil {
				return err
			}

			if err := store.Save(theme); err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, theme)
			return nil
		},
	}
}
