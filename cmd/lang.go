package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordwise/internal/i18n"
)

var langCmd = &cobra.Command{
	Use:       "lang [en|zh]",
	Short:     "Show or set the display language",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"en", "zh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), d.env.Lang)
			return nil
		}

		lang, err := i18n.Parse(args[0])
		if err != nil {
			return err
		}
		if err := i18n.Save(cmd.Context(), d.env.Settings, lang); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Language set to", lang)
		return nil
	},
}
