package sheets

import (
	"strings"
	"time"

	"github.com/abhisek/wordwise/internal/question"
)

// UncategorizedCategory is used for rows with an empty column A.
const UncategorizedCategory = "Uncategorized"

// Column layout of a bank sheet.
const (
	colCategory = iota
	colType
	colQuestion
	colOptions
	colAnswer
	colExplanation
)

// Result is the outcome of converting sheet rows.
type Result struct {
	Questions []question.Question
	Skipped   []Skipped
}

// Skipped is a data row that did not become a question. Row is 0-based
// within the fetched range.
type Skipped struct {
	Row    int
	Reason string
}

// ParseRows converts rows laid out as category, type, question, options,
// answer, explanation. It fails with ErrNoData for no rows and with
// ErrNoValidRows when every row is skipped.
func ParseRows(rows [][]string, now time.Time) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	res := &Result{}
	for i, row := range rows {
		q := question.Question{
			ID:          question.NewID(question.PrefixCloud, now, i),
			Category:    cell(row, colCategory),
			Kind:        question.Kind(cell(row, colType)),
			Text:        cell(row, colQuestion),
			Options:     splitOptions(cell(row, colOptions)),
			Answer:      cell(row, colAnswer),
			Explanation: cell(row, colExplanation),
		}
		if q.Category == "" {
			q.Category = UncategorizedCategory
		}
		if q.Text == "" || q.Answer == "" {
			res.Skipped = append(res.Skipped, Skipped{Row: i, Reason: "missing question or answer"})
			continue
		}

		q = question.Normalize(q)
		if err := q.Validate(); err != nil {
			res.Skipped = append(res.Skipped, Skipped{Row: i, Reason: strings.ReplaceAll(err.Error(), "\n", "; ")})
			continue
		}
		res.Questions = append(res.Questions, q)
	}

	if len(res.Questions) == 0 {
		return res, ErrNoValidRows
	}
	return res, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitOptions(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
