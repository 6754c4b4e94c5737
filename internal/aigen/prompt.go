package aigen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/wordwise/internal/question"
)

const systemPrompt = `You write English grammar practice questions for primary school children learning English as a second language.

Rules:
- Keep vocabulary simple and sentences short.
- MCQ, PHRASE and ERROR questions have 2 to 4 options and exactly one correct option. The answer must be the exact text of that option.
- TF questions use the options "True" and "False".
- spelling_correction questions show a misspelled word or sentence; the child types the correct spelling. Leave options empty.
- Explanations are one or two sentences in English, then the same in Traditional Chinese.
- Never repeat a question from the examples.`

// baseExample is the subset of a question shown to the model.
type baseExample struct {
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
}

func buildSimilarMessage(base []question.Question, category string, count int) string {
	examples := make([]baseExample, len(base))
	for i, q := range base {
		examples[i] = baseExample{
			Question: q.Text,
			Type:     string(q.Kind),
			Options:  q.Options,
			Answer:   q.Answer,
			Category: q.Category,
		}
	}
	js, _ := json.MarshalIndent(examples, "", "  ")

	var b strings.Builder
	fmt.Fprintf(&b, "Category: %s\n", category)
	fmt.Fprintf(&b, "Write %d NEW and DIFFERENT questions with the same grammar focus and difficulty as these examples.\n\n", count)
	b.WriteString("Examples:\n")
	b.Write(js)
	return b.String()
}

func buildAnalyzeMessage(text string) string {
	return fmt.Sprintf("Analyze this question for a primary school student and suggest its type, options (if it is a choice question), answer, explanation and grammar category:\n\n%q", text)
}

func buildExtractMessage(categories []string) string {
	var b strings.Builder
	b.WriteString("This image is an English grammar worksheet. Extract every question on it.\n\n")
	b.WriteString("1. Identify the type: MCQ, TF, ERROR, PHRASE or spelling_correction.\n")
	b.WriteString("2. Copy the options of choice questions.\n")
	b.WriteString("3. Infer the correct answer if it is not marked.\n")
	b.WriteString("4. Explain the answer in English and Traditional Chinese.\n")
	if len(categories) > 0 {
		fmt.Fprintf(&b, "5. Categorize as one of: %s.\n", strings.Join(categories, ", "))
	}
	return b.String()
}
