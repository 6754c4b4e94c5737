// Package quiz renders a practice run driven by quiz.Session.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/wordwise/internal/i18n"
	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/quiz"
	"github.com/abhisek/wordwise/internal/router"
	"github.com/abhisek/wordwise/internal/screen"
	"github.com/abhisek/wordwise/internal/ui/components"
	"github.com/abhisek/wordwise/internal/ui/layout"
	"github.com/abhisek/wordwise/internal/ui/theme"
)

// historySavedMsg reports the outcome of persisting a finished run.
type historySavedMsg struct {
	err error
}

// QuizScreen drives one session from the first question to the score.
type QuizScreen struct {
	env      *screen.Env
	session  *quiz.Session
	category string

	choices components.Choices
	input   components.TextInput
	hint    string

	records []quiz.Record
	saving  bool
	saveErr error
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen for a session that has already been started.
func New(env *screen.Env, session *quiz.Session, category string) *QuizScreen {
	s := &QuizScreen{
		env:      env,
		session:  session,
		category: category,
	}
	s.loadQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.freeText() {
		return s.input.Init()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return s.category
}

// HandlesEscape keeps Esc local so leaving goes through Session.Exit.
func (s *QuizScreen) HandlesEscape() bool { return true }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase() {
	case quiz.PhaseFeedback:
		label := s.env.T(i18n.NextQuestion)
		if s.session.Index()+1 == s.session.Len() {
			label = s.env.T(i18n.SeeResults)
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: label},
			{Key: "Esc", Description: s.env.T(i18n.Quit)},
		}
	case quiz.PhaseFinished:
		return []layout.KeyHint{{Key: "Enter", Description: s.env.T(i18n.GoBackHome)}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: s.env.T(i18n.CheckAnswer)},
		{Key: "Esc", Description: s.env.T(i18n.Quit)},
	}
}

func (s *QuizScreen) freeText() bool {
	return s.session.Current().Format() == question.FormatFreeText
}

// loadQuestion resets the answer widgets for the current question.
func (s *QuizScreen) loadQuestion() {
	q := s.session.Current()
	s.hint = ""
	switch q.Format() {
	case question.FormatFreeText:
		s.input = components.NewTextInput(s.env.T(i18n.TypeAnswer), 64)
	case question.FormatChoice:
		s.choices = components.NewChoices(q.Choices())
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historySavedMsg:
		s.saving = false
		s.saveErr = msg.err
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.session.Phase() == quiz.PhaseAnswering && s.freeText() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.session.Phase() {
	case quiz.PhaseFinished:
		if key == "enter" || key == "esc" {
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
		return s, nil

	case quiz.PhaseFeedback:
		switch key {
		case "esc":
			return s.exit()
		case "enter":
			return s.next()
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s.exit()
	case "enter":
		return s.submit()
	}

	var cmd tea.Cmd
	if s.freeText() {
		s.input, cmd = s.input.Update(msg)
	} else {
		s.choices, cmd = s.choices.Update(msg)
	}
	s.hint = ""
	return s, cmd
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	var err error
	if s.freeText() {
		err = s.session.SetAnswer(s.input.Value())
	} else {
		err = s.session.SelectOption(s.choices.Selected)
	}
	if err != nil {
		s.hint = s.env.Err(err)
		return s, nil
	}

	rec, err := s.session.Submit()
	if errors.Is(err, quiz.ErrBlankAnswer) {
		s.hint = s.env.T(i18n.BlankAnswer)
		return s, nil
	}
	if err != nil {
		s.hint = s.env.Err(err)
		return s, nil
	}

	q := s.session.Current()
	if s.freeText() {
		s.input.Submit(rec.IsCorrect)
	} else {
		s.choices.Reveal(rec.UserAnswer, q.Answer)
	}
	return s, nil
}

func (s *QuizScreen) next() (screen.Screen, tea.Cmd) {
	res, err := s.session.Next()
	if err != nil {
		s.hint = s.env.Err(err)
		return s, nil
	}
	finished, ok := res.(quiz.Finished)
	if !ok {
		s.loadQuestion()
		return s, s.Init()
	}

	s.records = finished.Records
	s.saving = true
	correct, total := quiz.Score(s.records)
	s.env.Log().Info("session finished",
		zap.String("session_id", s.session.ID()),
		zap.String("category", s.category),
		zap.Int("correct", correct),
		zap.Int("total", total),
	)
	return s, s.persist(finished.Records)
}

// persist appends the run's records once. Finished is only produced once
// per session, so this runs at most once.
func (s *QuizScreen) persist(records []quiz.Record) tea.Cmd {
	history := s.env.History
	id := s.session.ID()
	log := s.env.Log()
	return func() tea.Msg {
		if history == nil {
			return historySavedMsg{}
		}
		err := history.Append(context.Background(), id, records)
		if err != nil {
			log.Error("persist history failed", zap.String("session_id", id), zap.Error(err))
		}
		return historySavedMsg{err: err}
	}
}

func (s *QuizScreen) exit() (screen.Screen, tea.Cmd) {
	s.session.Exit()
	return s, func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	if s.session.Phase() == quiz.PhaseFinished {
		body = s.renderFinished(cw)
	} else {
		body = s.renderQuestion(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *QuizScreen) renderQuestion(cw int) string {
	q := s.session.Current()

	counter := fmt.Sprintf("%s %d %s %d", s.env.T(i18n.Question), s.session.Index()+1, s.env.T(i18n.Of), s.session.Len())
	progress := components.NewProgressBar("", float64(s.session.Index())/float64(s.session.Len()), false, cw)

	var sections []string
	sections = append(sections, theme.Subtitle.Render(counter), progress.View(), "")
	sections = append(sections, lipgloss.NewStyle().Width(cw-6).Foreground(theme.Text).Bold(true).Render(q.Text), "")

	switch q.Format() {
	case question.FormatFreeText:
		sections = append(sections, s.input.View())
	case question.FormatChoice:
		sections = append(sections, s.choices.View())
	}

	if s.session.Phase() == quiz.PhaseFeedback {
		sections = append(sections, s.renderFeedback(cw))
	}
	if s.hint != "" {
		sections = append(sections, "", theme.Warning.Render(s.hint))
	}
	return components.Card(strings.Join(sections, "\n"), cw)
}

func (s *QuizScreen) renderFeedback(cw int) string {
	rec, ok := s.session.LastRecord()
	if !ok {
		return ""
	}
	q := s.session.Current()

	var lines []string
	if rec.IsCorrect {
		lines = append(lines, theme.Correct.Render("✓ "+s.env.T(i18n.Correct)))
	} else {
		lines = append(lines, theme.Incorrect.Render("✗ "+s.env.T(i18n.Incorrect)))
		lines = append(lines, theme.Body.Render(s.env.Tf(i18n.CorrectAnswerIs, q.Answer)))
	}
	if q.Explanation != "" {
		lines = append(lines, "", theme.Hint.Width(cw-6).Render(s.env.T(i18n.Explanation)+": "+q.Explanation))
	}
	return "\n" + strings.Join(lines, "\n")
}

func (s *QuizScreen) renderFinished(cw int) string {
	correct, total := quiz.Score(s.records)
	lines := []string{
		theme.Title.Render("🎉 " + s.env.T(i18n.Finished)),
		"",
		theme.Subtitle.Render(s.env.T(i18n.YourScore)),
		lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render(fmt.Sprintf("%d / %d", correct, total)),
	}
	switch {
	case s.saving:
		lines = append(lines, "", theme.Hint.Render(s.env.T(i18n.Loading)))
	case s.saveErr != nil:
		lines = append(lines, "", theme.Incorrect.Render(s.env.Err(s.saveErr)))
	}
	lines = append(lines, "", components.Button(s.env.T(i18n.GoBackHome), true, cw/2))
	return components.Card(lipgloss.JoinVertical(lipgloss.Center, lines...), cw)
}
