package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordwise/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the practice app",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, cmdFlagBool(cmd, "no-splash"))
	},
}

func init() {
	playCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command, skipSplash bool) error {
	d, err := openDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	if d.aiErr != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", d.aiErr)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	}

	return app.Run(app.Options{Env: d.env, SkipSplash: skipSplash})
}

func cmdFlagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
