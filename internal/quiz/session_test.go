package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/abhisek/wordwise/internal/question"
)

func twoQuestions() []question.Question {
	return []question.Question{
		{ID: "g1", Kind: question.KindMCQ, Text: "She ____ home.", Options: []string{"go", "goes"}, Answer: "goes", Category: "Grammar"},
		{ID: "v1", Kind: question.KindSpelling, Text: "(s___n)", Answer: "spoon", Category: "Vocabulary"},
	}
}

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestNew_Empty(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrEmptySession) {
		t.Fatalf("expected ErrEmptySession, got %v", err)
	}
}

func TestNew_CopiesQuestions(t *testing.T) {
	qs := twoQuestions()
	s, err := New(qs)
	if err != nil {
		t.Fatal(err)
	}
	qs[0].Answer = "changed"
	if s.Current().Answer != "goes" {
		t.Errorf("session shares the caller's slice")
	}
	if s.Phase() != PhaseAnswering || s.Index() != 0 || s.Candidate() != "" {
		t.Errorf("unexpected initial state: phase=%v index=%d candidate=%q", s.Phase(), s.Index(), s.Candidate())
	}
	if s.ID() == "" {
		t.Error("expected a session id")
	}
}

func TestSubmit_BlankIsRejected(t *testing.T) {
	s, _ := New(twoQuestions())
	for _, blank := range []string{"", "   ", "\t\n"} {
		_ = s.SetAnswer(blank)
		if _, err := s.Submit(); !errors.Is(err, ErrBlankAnswer) {
			t.Errorf("Submit(%q) err = %v, want ErrBlankAnswer", blank, err)
		}
	}
	if s.Phase() != PhaseAnswering {
		t.Errorf("phase = %v, want answering", s.Phase())
	}
	if len(s.Records()) != 0 {
		t.Errorf("blank submit produced records")
	}
}

func TestSubmit_GradesOnce(t *testing.T) {
	s, _ := New(twoQuestions(), WithClock(fixedClock(time.Unix(1000, 0))))
	if err := s.SetAnswer("  GOES "); err != nil {
		t.Fatal(err)
	}
	rec, err := s.Submit()
	if err != nil {
		t.Fatal(err)
	}
	if !rec.IsCorrect {
		t.Error("expected correct")
	}
	if rec.UserAnswer != "  GOES " {
		t.Errorf("user answer = %q, want verbatim input", rec.UserAnswer)
	}
	if rec.Category != "Grammar" || rec.QuestionID != "g1" {
		t.Errorf("record = %+v", rec)
	}
	if s.Phase() != PhaseFeedback {
		t.Fatalf("phase = %v, want feedback", s.Phase())
	}
	last, ok := s.LastRecord()
	if !ok || last != rec {
		t.Errorf("LastRecord = %+v, %v", last, ok)
	}

	if _, err := s.Submit(); !errors.Is(err, ErrAlreadyGraded) {
		t.Errorf("second submit err = %v, want ErrAlreadyGraded", err)
	}
	if err := s.SetAnswer("go"); !errors.Is(err, ErrAlreadyGraded) {
		t.Errorf("SetAnswer in feedback err = %v", err)
	}
	if len(s.Records()) != 1 {
		t.Errorf("records = %d, want 1", len(s.Records()))
	}
}

func TestNext_RequiresFeedback(t *testing.T) {
	s, _ := New(twoQuestions())
	if _, err := s.Next(); !errors.Is(err, ErrNotGraded) {
		t.Errorf("Next in answering err = %v, want ErrNotGraded", err)
	}
}

// Scenario D: both answered, one correct.
func TestFullRun_Finished(t *testing.T) {
	s, _ := New(twoQuestions(), WithClock(fixedClock(time.Unix(1000, 0))))

	if err := s.SelectOption(1); err != nil {
		t.Fatal(err)
	}
	if s.Candidate() != "goes" {
		t.Errorf("candidate = %q", s.Candidate())
	}
	if _, err := s.Submit(); err != nil {
		t.Fatal(err)
	}
	res, err := s.Next()
	if err != nil || res != nil {
		t.Fatalf("Next mid-run = %v, %v", res, err)
	}
	if s.Index() != 1 || s.Candidate() != "" || s.Phase() != PhaseAnswering {
		t.Fatalf("not advanced: index=%d candidate=%q phase=%v", s.Index(), s.Candidate(), s.Phase())
	}

	_ = s.SetAnswer("spon")
	if _, err := s.Submit(); err != nil {
		t.Fatal(err)
	}
	res, err = s.Next()
	if err != nil {
		t.Fatal(err)
	}
	fin, ok := res.(Finished)
	if !ok {
		t.Fatalf("result = %T, want Finished", res)
	}
	if len(fin.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(fin.Records))
	}
	if correct, total := s.Score(); correct != 1 || total != 2 {
		t.Errorf("score = %d/%d, want 1/2", correct, total)
	}
	if !fin.Records[1].Timestamp.After(fin.Records[0].Timestamp) {
		t.Errorf("timestamps not increasing")
	}

	if _, err := s.Next(); !errors.Is(err, ErrFinished) {
		t.Errorf("Next after finish err = %v", err)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrFinished) {
		t.Errorf("Submit after finish err = %v", err)
	}
	if _, ok := s.Exit().(Exited); !ok {
		t.Error("Exit after finish should return Exited")
	}
}

// Scenario C: exit before the last question releases nothing.
func TestExit_DiscardsRecords(t *testing.T) {
	s, _ := New(twoQuestions())
	_ = s.SetAnswer("goes")
	_, _ = s.Submit()
	_, _ = s.Next()

	res := s.Exit()
	if _, ok := res.(Exited); !ok {
		t.Fatalf("Exit = %T, want Exited", res)
	}
	if !s.Closed() {
		t.Error("session should be closed")
	}
	if err := s.SetAnswer("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("SetAnswer after exit err = %v", err)
	}
	if _, err := s.Submit(); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit after exit err = %v", err)
	}
	if _, err := s.Next(); !errors.Is(err, ErrClosed) {
		t.Errorf("Next after exit err = %v", err)
	}
}

func TestSelectOption_OutOfRange(t *testing.T) {
	s, _ := New(twoQuestions())
	if err := s.SelectOption(5); !errors.Is(err, ErrNoOption) {
		t.Errorf("err = %v, want ErrNoOption", err)
	}
}

func TestSelectOption_ImplicitTrueFalse(t *testing.T) {
	s, _ := New([]question.Question{{ID: "t", Kind: question.KindTF, Text: "Sky is blue", Answer: "true"}})
	if err := s.SelectOption(0); err != nil {
		t.Fatal(err)
	}
	rec, _ := s.Submit()
	if !rec.IsCorrect {
		t.Error("expected True to grade correct")
	}
}

func TestTimestamps_NonDecreasing(t *testing.T) {
	times := []time.Time{time.Unix(200, 0), time.Unix(100, 0)}
	i := 0
	clock := func() time.Time { t := times[i]; i++; return t }
	s, _ := New(twoQuestions(), WithClock(clock))

	_ = s.SetAnswer("goes")
	_, _ = s.Submit()
	_, _ = s.Next()
	_ = s.SetAnswer("spoon")
	_, _ = s.Submit()
	res, _ := s.Next()

	recs := res.(Finished).Records
	if recs[1].Timestamp.Before(recs[0].Timestamp) {
		t.Errorf("timestamp went backwards: %v < %v", recs[1].Timestamp, recs[0].Timestamp)
	}
}

func TestFinished_CompleteRecords(t *testing.T) {
	qs := question.Seed()
	s, _ := New(qs)
	for i := 0; i < len(qs); i++ {
		_ = s.SetAnswer("x")
		if _, err := s.Submit(); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		res, err := s.Next()
		if err != nil {
			t.Fatal(err)
		}
		if i < len(qs)-1 && res != nil {
			t.Fatalf("early result at %d", i)
		}
		if i == len(qs)-1 {
			fin := res.(Finished)
			if len(fin.Records) != len(qs) {
				t.Fatalf("records = %d, want %d", len(fin.Records), len(qs))
			}
			for j, r := range fin.Records {
				if r.QuestionID != qs[j].ID {
					t.Errorf("record %d question = %s, want %s", j, r.QuestionID, qs[j].ID)
				}
			}
		}
	}
}
