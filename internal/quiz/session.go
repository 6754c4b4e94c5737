// Package quiz runs a practice session over a fixed list of questions.
//
// A Session moves through three phases. In Answering the learner edits a
// candidate answer, Submit grades it and moves to Feedback, and Next either
// advances to the following question or finishes. The graded records are
// released exactly once, in the Finished result returned by the final Next.
package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wordwise/internal/question"
)

// Phase is the session's position in the answer/feedback cycle.
type Phase int

const (
	PhaseAnswering Phase = iota
	PhaseFeedback
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseFeedback:
		return "feedback"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used to timestamp records. A nil clock keeps
// time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithID sets the session identifier used when records are persisted.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session is a single quiz run. It is not safe for concurrent use; the TUI
// and CLI drive it from one goroutine.
type Session struct {
	id        string
	questions []question.Question
	index     int
	phase     Phase
	candidate string
	records   []Record
	closed    bool
	now       func() time.Time
}

// New starts a session over a copy of questions.
func New(questions []question.Question, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptySession
	}
	qs := make([]question.Question, len(questions))
	copy(qs, questions)

	s := &Session{
		id:        uuid.NewString(),
		questions: qs,
		phase:     PhaseAnswering,
		records:   make([]Record, 0, len(qs)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Index returns the position of the current question.
func (s *Session) Index() int { return s.index }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Current returns the question being answered or reviewed.
func (s *Session) Current() question.Question { return s.questions[s.index] }

// Candidate returns the answer typed or selected so far.
func (s *Session) Candidate() string { return s.candidate }

// Closed reports whether the learner exited the session.
func (s *Session) Closed() bool { return s.closed }

// LastRecord returns the record graded for the current question. It is
// only meaningful in the Feedback phase.
func (s *Session) LastRecord() (Record, bool) {
	if len(s.records) == 0 || s.phase != PhaseFeedback {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Records returns a copy of the records graded so far, for display.
func (s *Session) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Score returns the number of correct answers and the number graded.
func (s *Session) Score() (correct, total int) {
	return Score(s.records)
}

// SetAnswer replaces the candidate answer.
func (s *Session) SetAnswer(answer string) error {
	if err := s.check(PhaseAnswering); err != nil {
		return err
	}
	s.candidate = answer
	return nil
}

// SelectOption sets the candidate to the i-th option of a choice question.
func (s *Session) SelectOption(i int) error {
	if err := s.check(PhaseAnswering); err != nil {
		return err
	}
	opts := s.Current().Choices()
	if i < 0 || i >= len(opts) {
		return fmt.Errorf("%w: %d of %d", ErrNoOption, i, len(opts))
	}
	s.candidate = opts[i]
	return nil
}

// Submit grades the candidate answer. A blank candidate is rejected and
// leaves the session unchanged.
func (s *Session) Submit() (Record, error) {
	if err := s.check(PhaseAnswering); err != nil {
		return Record{}, err
	}
	if strings.TrimSpace(s.candidate) == "" {
		return Record{}, ErrBlankAnswer
	}

	q := s.Current()
	rec := Record{
		Timestamp:  s.timestamp(),
		QuestionID: q.ID,
		IsCorrect:  question.Grade(s.candidate, q.Answer),
		UserAnswer: s.candidate,
		Category:   q.Category,
	}
	s.records = append(s.records, rec)
	s.phase = PhaseFeedback
	return rec, nil
}

// Next leaves Feedback. It returns nil while questions remain and
// Finished with every record after the last one.
func (s *Session) Next() (Result, error) {
	if err := s.check(PhaseFeedback); err != nil {
		return nil, err
	}
	if s.index+1 < len(s.questions) {
		s.index++
		s.candidate = ""
		s.phase = PhaseAnswering
		return nil, nil
	}
	s.phase = PhaseFinished
	return Finished{Records: s.Records()}, nil
}

// Exit abandons the session. Nothing graded so far is released, and a
// finished session does not release its records a second time.
func (s *Session) Exit() Result {
	s.closed = true
	return Exited{}
}

func (s *Session) check(want Phase) error {
	if s.closed {
		return ErrClosed
	}
	if s.phase == want {
		return nil
	}
	switch s.phase {
	case PhaseFinished:
		return ErrFinished
	case PhaseFeedback:
		return ErrAlreadyGraded
	default:
		return ErrNotGraded
	}
}

// timestamp never goes backwards within a session, even if the clock does.
func (s *Session) timestamp() time.Time {
	ts := s.now()
	if n := len(s.records); n > 0 && ts.Before(s.records[n-1].Timestamp) {
		ts = s.records[n-1].Timestamp
	}
	return ts
}
