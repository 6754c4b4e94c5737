package aigen

import "github.com/abhisek/wordwise/internal/llm"

var questionKinds = []any{"MCQ", "PHRASE", "ERROR", "TF", "spelling_correction"}

func questionItem() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question shown to the child. Use ___ for a blank.",
			},
			"type": map[string]any{
				"type":        "string",
				"enum":        questionKinds,
				"description": "MCQ, PHRASE and ERROR pick from options; TF is true/false; spelling_correction is typed in",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Choices for MCQ, PHRASE, ERROR and TF. Empty for spelling_correction.",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct answer. For choice questions, the exact text of one option.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Short explanation in English followed by Traditional Chinese",
			},
			"category": map[string]any{
				"type":        "string",
				"description": "Grammar topic, e.g. Past Simple",
			},
		},
		"required":             []any{"question", "type", "options", "answer", "explanation", "category"},
		"additionalProperties": false,
	}
}

// questionsEnvelope wraps the item array in an object root, which every
// provider's structured output mode accepts.
func questionsEnvelope(name, description string) *llm.Schema {
	return &llm.Schema{
		Name:        name,
		Description: description,
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":  "array",
					"items": questionItem(),
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}

// SimilarSchema is the response schema for Similar.
var SimilarSchema = questionsEnvelope("similar-questions", "New grammar questions modelled on the examples")

// ExtractSchema is the response schema for Extract.
var ExtractSchema = questionsEnvelope("worksheet-questions", "Questions read from a worksheet photo")

// AnalyzeSchema is the response schema for Analyze.
var AnalyzeSchema = &llm.Schema{
	Name:        "question-analysis",
	Description: "Metadata for a single grammar question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":        map[string]any{"type": "string", "enum": questionKinds},
			"options":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"answer":      map[string]any{"type": "string"},
			"explanation": map[string]any{"type": "string"},
			"category":    map[string]any{"type": "string"},
		},
		"required":             []any{"type", "options", "answer", "explanation", "category"},
		"additionalProperties": false,
	},
}
