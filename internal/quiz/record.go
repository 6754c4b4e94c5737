package quiz

import "time"

// Record is one graded answer. Records are append-only.
type Record struct {
	Timestamp  time.Time `json:"timestamp"`
	QuestionID string    `json:"question_id"`
	IsCorrect  bool      `json:"is_correct"`
	UserAnswer string    `json:"user_answer"`
	Category   string    `json:"category"`
}

// Result is what a session hands back when it stops. It is either
// Finished or Exited.
type Result interface {
	isResult()
}

// Finished is returned once, when the last question has been graded.
type Finished struct {
	Records []Record
}

// Exited is returned when the learner leaves. It carries no records.
type Exited struct{}

func (Finished) isResult() {}
func (Exited) isResult()   {}

// Score counts correct answers in records.
func Score(records []Record) (correct, total int) {
	for _, r := range records {
		if r.IsCorrect {
			correct++
		}
	}
	return correct, len(records)
}
