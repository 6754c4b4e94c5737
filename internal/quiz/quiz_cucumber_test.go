//go:build cucumber

package quiz_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/stats"
)

// TestQuizScenarios runs the quiz and dashboard feature files.
func TestQuizScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz",
		ScenarioInitializer: InitializeQuizScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "features")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizScenario wires the quiz and dashboard steps.
func InitializeQuizScenario(ctx *godog.ScenarioContext) {
	state := &quizScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a bank with (\d+) "([^"]+)" questions and (\d+) "([^"]+)" questions$`, state.givenBank)
	ctx.Step(`^I start a basic run on "([^"]+)" with seed (\d+)$`, state.whenStartRun)
	ctx.Step(`^the session has (\d+) questions$`, state.thenSessionLen)
	ctx.Step(`^no session is started$`, state.thenNoSession)
	ctx.Step(`^a session of (\d+) questions$`, state.givenSession)
	ctx.Step(`^I answer the current question (correctly|incorrectly)$`, state.whenAnswer)
	ctx.Step(`^I go to the next question$`, state.whenNext)
	ctx.Step(`^I exit the session$`, state.whenExit)
	ctx.Step(`^I submit a blank answer$`, state.whenSubmitBlank)
	ctx.Step(`^the answer is rejected as blank$`, state.thenBlankRejected)
	ctx.Step(`^the session is still answering question (\d+)$`, state.thenStillAnswering)
	ctx.Step(`^the session is finished with score (\d+) of (\d+)$`, state.thenFinishedScore)
	ctx.Step(`^the history has (\d+) records$`, state.thenHistoryLen)

	ctx.Step(`^a history of:$`, state.givenHistoryTable)
	ctx.Step(`^(\d+) answers in "([^"]+)" with (\d+) correct$`, state.givenAnswers)
	ctx.Step(`^an empty history$`, state.givenEmptyHistory)
	ctx.Step(`^the statistics are computed$`, state.whenCompute)
	ctx.Step(`^category "([^"]+)" has (\d+) attempted and (\d+) correct$`, state.thenCategoryCounts)
	ctx.Step(`^category "([^"]+)" displays (\d+) percent$`, state.thenDisplayAccuracy)
	ctx.Step(`^the weak areas are "([^"]+)"$`, state.thenWeakAreas)
	ctx.Step(`^there are no weak areas$`, state.thenNoWeakAreas)
	ctx.Step(`^the overall accuracy is (\d+)$`, state.thenOverall)
}

type quizScenarioState struct {
	bank     []question.Question
	session  *quiz.Session
	startErr error
	lastErr  error
	finished *quiz.Finished
	history  []quiz.Record
	snapshot stats.Snapshot
}

// reset clears scenario state.
func (s *quizScenarioState) reset() {
	*s = quizScenarioState{}
}

func makeQuestions(category string, n int) []question.Question {
	out := make([]question.Question, n)
	for i := range out {
		out[i] = question.Question{
			ID:       fmt.Sprintf("%s-%d", strings.ToLower(category), i),
			Kind:     question.KindSpelling,
			Text:     fmt.Sprintf("Spell word %d", i),
			Answer:   fmt.Sprintf("word%d", i),
			Category: category,
		}
	}
	return out
}

func (s *quizScenarioState) givenBank(n1 int, c1 string, n2 int, c2 string) error {
	s.bank = append(makeQuestions(c1, n1), makeQuestions(c2, n2)...)
	return nil
}

func (s *quizScenarioState) whenStartRun(category string, seed int) error {
	s.session, s.startErr = quiz.StartBasicRun(s.bank, category, quiz.NewSeededSampler(uint64(seed)))
	return nil
}

func (s *quizScenarioState) thenSessionLen(n int) error {
	if s.startErr != nil {
		return s.startErr
	}
	if s.session.Len() != n {
		return fmt.Errorf("session has %d questions, want %d", s.session.Len(), n)
	}
	return nil
}

func (s *quizScenarioState) thenNoSession() error {
	if !errors.Is(s.startErr, quiz.ErrNoQuestions) {
		return fmt.Errorf("start error = %v, want ErrNoQuestions", s.startErr)
	}
	if s.session != nil {
		return errors.New("a session was created")
	}
	return nil
}

func (s *quizScenarioState) givenSession(n int) error {
	sess, err := quiz.New(makeQuestions("Vocabulary", n))
	s.session = sess
	return err
}

func (s *quizScenarioState) whenAnswer(how string) error {
	answer := s.session.Current().Answer
	if how == "incorrectly" {
		answer += "x"
	}
	if err := s.session.SetAnswer(answer); err != nil {
		return err
	}
	_, err := s.session.Submit()
	return err
}

func (s *quizScenarioState) whenNext() error {
	res, err := s.session.Next()
	if err != nil {
		return err
	}
	if fin, ok := res.(quiz.Finished); ok {
		s.finished = &fin
		s.history = append(s.history, fin.Records...)
	}
	return nil
}

func (s *quizScenarioState) whenExit() error {
	if _, ok := s.session.Exit().(quiz.Exited); !ok {
		return errors.New("exit did not return Exited")
	}
	return nil
}

func (s *quizScenarioState) whenSubmitBlank() error {
	_ = s.session.SetAnswer("   ")
	_, s.lastErr = s.session.Submit()
	return nil
}

func (s *quizScenarioState) thenBlankRejected() error {
	if !errors.Is(s.lastErr, quiz.ErrBlankAnswer) {
		return fmt.Errorf("submit error = %v, want ErrBlankAnswer", s.lastErr)
	}
	return nil
}

func (s *quizScenarioState) thenStillAnswering(n int) error {
	if s.session.Phase() != quiz.PhaseAnswering || s.session.Index() != n-1 {
		return fmt.Errorf("phase %v at question %d", s.session.Phase(), s.session.Index()+1)
	}
	return nil
}

func (s *quizScenarioState) thenFinishedScore(correct, total int) error {
	if s.finished == nil {
		return errors.New("session did not finish")
	}
	c, n := quiz.Score(s.finished.Records)
	if c != correct || n != total {
		return fmt.Errorf("score %d/%d, want %d/%d", c, n, correct, total)
	}
	return nil
}

func (s *quizScenarioState) thenHistoryLen(n int) error {
	if len(s.history) != n {
		return fmt.Errorf("history has %d records, want %d", len(s.history), n)
	}
	return nil
}

func (s *quizScenarioState) givenHistoryTable(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		s.history = append(s.history, quiz.Record{
			QuestionID: fmt.Sprintf("q%d", i),
			Category:   row.Cells[0].Value,
			IsCorrect:  row.Cells[1].Value == "true",
		})
	}
	return nil
}

func (s *quizScenarioState) givenAnswers(n int, category string, correct int) error {
	for i := 0; i < n; i++ {
		s.history = append(s.history, quiz.Record{Category: category, IsCorrect: i < correct})
	}
	return nil
}

func (s *quizScenarioState) givenEmptyHistory() error {
	s.history = nil
	return nil
}

func (s *quizScenarioState) whenCompute() error {
	s.snapshot = stats.Compute(s.history)
	return nil
}

func (s *quizScenarioState) thenCategoryCounts(category string, attempted, correct int) error {
	cs, ok := s.snapshot.CategoryAccuracy[category]
	if !ok {
		return fmt.Errorf("category %q missing", category)
	}
	if cs.Attempted != attempted || cs.Correct != correct {
		return fmt.Errorf("category %q = %d/%d, want %d/%d", category, cs.Correct, cs.Attempted, correct, attempted)
	}
	return nil
}

func (s *quizScenarioState) thenDisplayAccuracy(category string, pct int) error {
	if got := s.snapshot.CategoryAccuracy[category].DisplayAccuracy(); got != pct {
		return fmt.Errorf("display accuracy = %d, want %d", got, pct)
	}
	return nil
}

func (s *quizScenarioState) thenWeakAreas(list string) error {
	want := strings.Split(list, ",")
	got := s.snapshot.WeakAreas()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("weak areas = %v, want %v", got, want)
	}
	return nil
}

func (s *quizScenarioState) thenNoWeakAreas() error {
	if got := s.snapshot.WeakAreas(); len(got) != 0 {
		return fmt.Errorf("weak areas = %v, want none", got)
	}
	return nil
}

func (s *quizScenarioState) thenOverall(pct int) error {
	if got := s.snapshot.OverallAccuracy(); got != pct {
		return fmt.Errorf("overall accuracy = %d, want %d", got, pct)
	}
	return nil
}
