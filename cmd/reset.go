package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the practice history",
	Long:  "Delete every recorded attempt. The question bank is not touched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		n, err := d.env.History.Count(ctx)
		if err != nil {
			return fmt.Errorf("count history: %w", err)
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No practice history to clear.")
			return nil
		}
		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %d recorded answers?", n)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		if err := d.env.History.Reset(ctx); err != nil {
			return fmt.Errorf("reset history: %w", err)
		}
		d.log.Info("history reset", zap.Int("records", n))
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d records.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

// confirm asks a yes/no question on the given streams. Only "y" or "yes"
// count as consent.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
