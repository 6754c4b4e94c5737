package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		records, err := d.env.History.All(cmd.Context())
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		report := stats.BuildReport(records, d.env.Clock())

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printReport(cmd.OutOrStdout(), report, d.env.Lang)
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print the report as JSON")
}

func printReport(w io.Writer, r stats.Report, lang i18n.Lang) {
	t := func(k i18n.Key) string { return i18n.T(lang, k) }

	if r.Snapshot.Empty() {
		fmt.Fprintln(w, t(i18n.NoRecords))
		return
	}

	fmt.Fprintf(w, "%-20s %d%%\n", t(i18n.OverallAccuracy), r.Overall)
	fmt.Fprintf(w, "%-20s %d\n", t(i18n.TotalDone), r.Snapshot.TotalAttempted)
	fmt.Fprintf(w, "%-20s %d\n", t(i18n.TodayDone), r.Today)

	fmt.Fprintln(w)
	fmt.Fprintln(w, t(i18n.AccuracyByTopic))
	fmt.Fprintln(w, strings.Repeat("─", 44))
	for _, name := range r.Snapshot.Categories() {
		c := r.Snapshot.CategoryAccuracy[name]
		mark := ""
		if c.Weak() {
			mark = " !"
		}
		fmt.Fprintf(w, "%-20s %4d%%  %3d/%-3d%s\n", name, c.DisplayAccuracy(), c.Correct, c.Attempted, mark)
	}

	fmt.Fprintln(w)
	if len(r.WeakAreas) == 0 {
		fmt.Fprintln(w, t(i18n.GreatJob))
		return
	}
	fmt.Fprintf(w, "%s: %s\n", t(i18n.NeedMorePractice), strings.Join(r.WeakAreas, ", "))
}
