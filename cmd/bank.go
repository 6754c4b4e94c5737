package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/aigen"
	"github.com/abhisek/wordwise/internal/bankio"
	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/sheets"
	"github.com/abhisek/wordwise/internal/store"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage the question bank",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		qs, err := d.env.Bank.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list bank: %w", err)
		}
		if category != "" {
			qs = question.FilterByCategory(qs, category)
		}
		if len(qs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), d.env.T(i18n.BankEmpty))
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-24s  %-20s  %-14s  %-40s  %s\n", "ID", "Type", "Category", "Question", "Answer")
		fmt.Fprintln(w, strings.Repeat("─", 120))
		for _, q := range qs {
			text := q.Text
			if q.IsAI {
				text = "✨ " + text
			}
			fmt.Fprintf(w, "%-24s  %-20s  %-14s  %-40s  %s\n",
				truncate(q.ID, 24), truncate(string(q.Kind), 20), truncate(q.Category, 14), truncateRunes(text, 40), q.Answer)
		}
		return nil
	},
}

var bankCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		cats, err := d.env.Bank.Categories(cmd.Context())
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		if len(cats) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), d.env.T(i18n.NoTopics))
			return nil
		}
		for _, c := range cats {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %d\n", c.Name, c.Count)
		}
		return nil
	},
}

var bankAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a question",
	Long: `Add one question to the bank.

With --assist the AI model reads the question text and fills in whatever
type, options, answer, explanation or category were not given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		assist, _ := cmd.Flags().GetBool("assist")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		q := question.Question{ID: question.NewID(question.PrefixUser, d.env.Clock(), -1)}
		applyQuestionFlags(cmd, &q)

		if assist {
			if err := d.requireAI(); err != nil {
				return err
			}
			if q, err = d.env.Library.Assist(ctx, q); err != nil {
				return fmt.Errorf("%s: %w", d.env.T(i18n.AIError), err)
			}
		}

		q = question.Normalize(q)
		if err := d.env.Bank.Add(ctx, q); err != nil {
			return fmt.Errorf("add question: %w", err)
		}
		d.log.Info("bank mutated", zap.String("kind", "add"), zap.Int("count", 1))
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %s): %s -> %s\n", q.ID, q.Kind, q.Category, q.Text, q.Answer)
		return nil
	},
}

var bankEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		q, err := d.env.Bank.Get(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("question %q not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get question: %w", err)
		}

		if !applyQuestionFlags(cmd, &q) {
			return fmt.Errorf("nothing to change: pass at least one field flag")
		}
		q = question.Normalize(q)
		if err := d.env.Bank.Update(ctx, q); err != nil {
			return fmt.Errorf("update question: %w", err)
		}
		d.log.Info("bank mutated", zap.String("kind", "update"), zap.Int("count", 1))
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", q.ID)
		return nil
	},
}

var bankDeleteCmd = &cobra.Command{
	Use:   "delete <id>|all",
	Short: "Delete one question, or all of them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		if args[0] == "all" {
			if !yes && !confirm(cmd.InOrStdin(), out, d.env.T(i18n.ConfirmClearBank)) {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
			n, err := d.env.Bank.Count(ctx)
			if err != nil {
				return fmt.Errorf("count bank: %w", err)
			}
			if err := d.env.Bank.Clear(ctx); err != nil {
				return fmt.Errorf("clear bank: %w", err)
			}
			d.log.Info("bank mutated", zap.String("kind", "clear"), zap.Int("count", n))
			fmt.Fprintln(out, d.env.T(i18n.Cleared))
			return nil
		}

		if !yes && !confirm(cmd.InOrStdin(), out, d.env.T(i18n.ConfirmDelete)) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		err = d.env.Bank.Delete(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("question %q not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		d.log.Info("bank mutated", zap.String("kind", "delete"), zap.Int("count", 1))
		fmt.Fprintln(out, d.env.T(i18n.Deleted))
		return nil
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the bank as TSV or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")
		if format != "tsv" && format != "yaml" {
			return fmt.Errorf("unknown format %q: want tsv or yaml", format)
		}

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		qs, err := d.env.Bank.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list bank: %w", err)
		}

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}

		if format == "yaml" {
			err = bankio.WriteYAML(w, qs, d.env.Clock())
		} else {
			err = bankio.WriteTSV(w, qs)
		}
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if outPath != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d questions to %s\n", len(qs), outPath)
		}
		return nil
	},
}

var bankImportFileCmd = &cobra.Command{
	Use:   "import-file <file>",
	Short: "Import questions from a YAML export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replace, _ := cmd.Flags().GetBool("replace")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		n, err := d.env.Library.ImportFile(cmd.Context(), f, replace)
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		verb := "Appended"
		if replace {
			verb = "Replaced the bank with"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d questions.\n", verb, n)
		return nil
	},
}

var bankSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replace the bank with questions from a Google Sheet",
	Long: `Import every valid row of a Google Sheet and replace the whole bank with
them. Rows are laid out as category, type, question, options, answer,
explanation. The sheet ID and range are remembered for next time; the API
key is read from config or the environment and never saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var override sheets.Settings
		override.SheetID, _ = cmd.Flags().GetString("sheet-id")
		override.Range, _ = cmd.Flags().GetString("range")
		override.APIKey, _ = cmd.Flags().GetString("api-key")
		yes, _ := cmd.Flags().GetBool("yes")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		st, err := d.env.Library.SheetSettings(ctx, override)
		if err != nil {
			return err
		}
		if !yes && !confirm(cmd.InOrStdin(), out, d.env.T(i18n.SyncReplaceWarn)+" Continue?") {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}

		fmt.Fprintln(cmd.ErrOrStderr(), d.env.T(i18n.Syncing))
		res, err := d.env.Library.Sync(ctx, st)
		if err != nil {
			return fmt.Errorf("%s: %w", d.env.Err(err), err)
		}
		fmt.Fprintln(out, d.env.Tf(i18n.SyncSuccess, len(res.Questions)))
		for _, s := range res.Skipped {
			fmt.Fprintf(out, "  skipped row %d: %s\n", s.Row+1, s.Reason)
		}
		return nil
	},
}

var bankGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate similar questions for a category with AI",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.requireAI(); err != nil {
			return err
		}

		batch, err := d.env.Library.Generate(cmd.Context(), category)
		if err != nil {
			return fmt.Errorf("%s: %w", d.env.T(i18n.AIError), err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), d.env.Tf(i18n.AIGenerated, len(batch.Questions)))
		printBatch(cmd.OutOrStdout(), batch)
		return nil
	},
}

var bankScanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Extract questions from a worksheet photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.requireAI(); err != nil {
			return err
		}

		img, err := aigen.ImageFromFile(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		batch, err := d.env.Library.Scan(ctx, img)
		if err != nil {
			return fmt.Errorf("%s: %w", d.env.T(i18n.OCRError), err)
		}
		fmt.Fprintln(out, d.env.Tf(i18n.OCRFound, len(batch.Questions)))
		printBatch(out, batch)
		if len(batch.Questions) == 0 {
			return nil
		}

		if !yes && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Add %d questions to the bank?", len(batch.Questions))) {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		if err := d.env.Library.Append(ctx, "ocr", batch.Questions); err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %d questions.\n", len(batch.Questions))
		return nil
	},
}

// applyQuestionFlags copies the field flags that were set onto q and
// reports whether any were.
func applyQuestionFlags(cmd *cobra.Command, q *question.Question) bool {
	f := cmd.Flags()
	changed := false
	str := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
			changed = true
		}
	}
	str("text", &q.Text)
	str("answer", &q.Answer)
	str("category", &q.Category)
	str("explanation", &q.Explanation)
	str("original", &q.OriginalText)
	if f.Changed("kind") {
		k, _ := f.GetString("kind")
		q.Kind = question.Kind(k)
		changed = true
	}
	if f.Changed("option") {
		q.Options, _ = f.GetStringArray("option")
		changed = true
	}
	return changed
}

func addQuestionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("text", "", "Question text")
	f.String("answer", "", "Correct answer")
	f.String("kind", "", "Question type: MCQ, PHRASE, ERROR, TF or spelling_correction")
	f.StringArray("option", nil, "Answer option (repeat for each option)")
	f.String("category", "", "Category (default General)")
	f.String("explanation", "", "Explanation shown after answering")
	f.String("original", "", "Source text the question was made from")
}

func printBatch(w io.Writer, b *aigen.Batch) {
	for i, q := range b.Questions {
		fmt.Fprintf(w, "%2d. [%s] %s -> %s\n", i+1, q.Kind, q.Text, q.Answer)
		if len(q.Options) > 0 {
			fmt.Fprintf(w, "    options: %s\n", strings.Join(q.Options, " | "))
		}
	}
	for _, dr := range b.Dropped {
		fmt.Fprintf(w, "  dropped #%d %q: %s\n", dr.Index+1, truncateRunes(dr.Text, 40), dr.Reason)
	}
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func init() {
	bankListCmd.Flags().String("category", "", "Only list this category")

	addQuestionFlags(bankAddCmd)
	bankAddCmd.Flags().Bool("assist", false, "Let AI fill in missing fields from the question text")
	_ = bankAddCmd.MarkFlagRequired("text")

	addQuestionFlags(bankEditCmd)

	bankDeleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	bankExportCmd.Flags().String("format", "tsv", "Output format: tsv or yaml")
	bankExportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	bankImportFileCmd.Flags().Bool("replace", false, "Replace the whole bank instead of appending")

	bankSyncCmd.Flags().String("sheet-id", "", "Google Sheet ID (remembered after a successful sync)")
	bankSyncCmd.Flags().String("range", "", "Cell range, e.g. Sheet1!A2:F")
	bankSyncCmd.Flags().String("api-key", "", "Google Sheets API key (overrides config; never saved)")
	bankSyncCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	bankGenerateCmd.Flags().StringP("category", "c", "", "Category to extend (required)")
	_ = bankGenerateCmd.MarkFlagRequired("category")

	bankScanCmd.Flags().BoolP("yes", "y", false, "Add the extracted questions without asking")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankCategoriesCmd)
	bankCmd.AddCommand(bankAddCmd)
	bankCmd.AddCommand(bankEditCmd)
	bankCmd.AddCommand(bankDeleteCmd)
	bankCmd.AddCommand(bankExportCmd)
	bankCmd.AddCommand(bankImportFileCmd)
	bankCmd.AddCommand(bankSyncCmd)
	bankCmd.AddCommand(bankGenerateCmd)
	bankCmd.AddCommand(bankScanCmd)
}
