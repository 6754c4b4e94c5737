package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/quiz"
)

// quitWord abandons a line-mode quiz.
const quitWord = ":q"

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Practise one category on the command line",
	Long: `Run a basic practice round without the full-screen app.

Choice questions accept the option number or the option text. Type :q to
leave; an abandoned round is not recorded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		seed, _ := cmd.Flags().GetUint64("seed")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		bank, err := d.env.Bank.List(ctx)
		if err != nil {
			return fmt.Errorf("list bank: %w", err)
		}

		sampler := d.env.Sampler
		if seed != 0 {
			sampler = quiz.NewSeededSampler(seed)
		}
		sess, err := quiz.StartBasicRun(bank, category, sampler, quiz.WithClock(d.env.Now))
		if errors.Is(err, quiz.ErrNoQuestions) {
			return fmt.Errorf("%s (%s)", i18n.T(d.env.Lang, i18n.NoQuestions), category)
		}
		if err != nil {
			return err
		}

		res, err := runLineQuiz(sess, cmd.InOrStdin(), cmd.OutOrStdout(), d.env.Lang)
		if err != nil {
			return err
		}
		fin, ok := res.(quiz.Finished)
		if !ok {
			return nil
		}

		correct, total := quiz.Score(fin.Records)
		d.log.Info("session finished",
			zap.String("session_id", sess.ID()),
			zap.String("category", category),
			zap.Int("count", total),
			zap.Int("correct", correct),
		)
		if err := d.env.History.Append(ctx, sess.ID(), fin.Records); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		return nil
	},
}

func init() {
	quizCmd.Flags().StringP("category", "c", "", "Category to practise (required)")
	quizCmd.Flags().Uint64("seed", 0, "Shuffle seed for a repeatable round (0 = random)")
	_ = quizCmd.MarkFlagRequired("category")
}

// runLineQuiz drives sess from line input until it finishes, the learner
// types quitWord, or input ends. Leaving early returns quiz.Exited.
func runLineQuiz(sess *quiz.Session, in io.Reader, out io.Writer, lang i18n.Lang) (quiz.Result, error) {
	sc := bufio.NewScanner(in)
	t := func(k i18n.Key) string { return i18n.T(lang, k) }

	for {
		q := sess.Current()
		fmt.Fprintf(out, "\n%s %d %s %d  [%s]\n", t(i18n.Question), sess.Index()+1, t(i18n.Of), sess.Len(), q.Category)
		fmt.Fprintln(out, q.Text)
		choices := q.Choices()
		if q.Format() == question.FormatChoice {
			for i, c := range choices {
				fmt.Fprintf(out, "  %d) %s\n", i+1, c)
			}
		}

		for sess.Phase() == quiz.PhaseAnswering {
			fmt.Fprint(out, "> ")
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return sess.Exit(), fmt.Errorf("read answer: %w", err)
				}
				fmt.Fprintln(out)
				return sess.Exit(), nil
			}
			raw := sc.Text()
			if strings.TrimSpace(raw) == quitWord {
				return sess.Exit(), nil
			}

			if err := setLineAnswer(sess, raw, len(choices)); err != nil {
				return sess.Exit(), err
			}
			rec, err := sess.Submit()
			if errors.Is(err, quiz.ErrBlankAnswer) {
				fmt.Fprintln(out, t(i18n.BlankAnswer))
				continue
			}
			if err != nil {
				return sess.Exit(), err
			}

			if rec.IsCorrect {
				fmt.Fprintln(out, t(i18n.Correct))
			} else {
				fmt.Fprintln(out, t(i18n.Incorrect), i18n.Tf(lang, i18n.CorrectAnswerIs, q.Answer))
			}
			if q.Explanation != "" {
				fmt.Fprintf(out, "%s: %s\n", t(i18n.Explanation), q.Explanation)
			}
		}

		res, err := sess.Next()
		if err != nil {
			return sess.Exit(), err
		}
		if res != nil {
			correct, total := sess.Score()
			fmt.Fprintf(out, "\n%s %s: %d / %d\n", t(i18n.Finished), t(i18n.YourScore), correct, total)
			return res, nil
		}
	}
}

// setLineAnswer treats a number within the option range as a choice and
// anything else as typed text, kept exactly as entered.
func setLineAnswer(sess *quiz.Session, raw string, numChoices int) error {
	if numChoices > 0 && sess.Current().Format() == question.FormatChoice {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 1 && n <= numChoices {
			return sess.SelectOption(n - 1)
		}
	}
	return sess.SetAnswer(raw)
}
