package quiz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/wordwise/internal/question"
)

func bankOf(category string, n int) []question.Question {
	out := make([]question.Question, n)
	for i := range out {
		out[i] = question.Question{
			ID:       fmt.Sprintf("%s-%d", category, i),
			Kind:     question.KindSpelling,
			Text:     "t",
			Answer:   "a",
			Category: category,
		}
	}
	return out
}

func TestSample_Distinct(t *testing.T) {
	qs := bankOf("Grammar", 25)
	got := NewSeededSampler(7).Sample(qs, MaxRunLength)
	if len(got) != MaxRunLength {
		t.Fatalf("len = %d, want %d", len(got), MaxRunLength)
	}
	seen := map[string]bool{}
	for _, q := range got {
		if seen[q.ID] {
			t.Errorf("duplicate %s", q.ID)
		}
		seen[q.ID] = true
	}
	if qs[0].ID != "Grammar-0" || qs[24].ID != "Grammar-24" {
		t.Error("input slice was reordered")
	}
}

func TestSample_SameSeedSameOrder(t *testing.T) {
	qs := bankOf("Grammar", 12)
	a := NewSeededSampler(42).Sample(qs, 5)
	b := NewSeededSampler(42).Sample(qs, 5)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("position %d differs: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
}

func TestSample_Bounds(t *testing.T) {
	qs := bankOf("Grammar", 3)
	s := NewSeededSampler(1)
	if got := s.Sample(qs, 10); len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
	if got := s.Sample(qs, 0); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if got := s.Sample(qs, -1); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

// Scenario A.
func TestStartBasicRun_SmallCategory(t *testing.T) {
	bank := append(bankOf("Grammar", 3), bankOf("Vocabulary", 20)...)
	s, err := StartBasicRun(bank, "Grammar", NewSeededSampler(3))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 {
		t.Errorf("len = %d, want 3", s.Len())
	}
}

func TestStartBasicRun_Caps(t *testing.T) {
	s, err := StartBasicRun(bankOf("Vocabulary", 20), "Vocabulary", NewSeededSampler(3))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != MaxRunLength {
		t.Errorf("len = %d, want %d", s.Len(), MaxRunLength)
	}
	for i := 0; i < s.Len(); i++ {
		if s.questions[i].Category != "Vocabulary" {
			t.Errorf("question %d from %q", i, s.questions[i].Category)
		}
	}
}

// Scenario B.
func TestStartBasicRun_EmptyCategory(t *testing.T) {
	s, err := StartBasicRun(bankOf("Grammar", 3), "Articles", NewSeededSampler(3))
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
	if s != nil {
		t.Error("expected no session")
	}
}
