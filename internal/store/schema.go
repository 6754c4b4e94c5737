package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableQuestions  = "questions"
	tableAttempts   = "attempts"
	tableSettings   = "settings"
	tableLLMEvents  = "llm_request_events"
	tableSequence   = "global_sequence"
	colID           = "id"
	colSequence     = "sequence"
	colTimestamp    = "timestamp_ms"
	colPosition     = "position"
	colKind         = "kind"
	colText         = "text"
	colOptions      = "options"
	colAnswer       = "answer"
	colCategory     = "category"
	colOriginalText = "original_text"
	colExplanation  = "explanation"
	colIsAI         = "is_ai"
	colCreatedAt    = "created_at"
	colSessionID    = "session_id"
	colQuestionID   = "question_id"
	colIsCorrect    = "is_correct"
	colUserAnswer   = "user_answer"
	colKey          = "key"
	colValue        = "value"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
	colNextVal      = "next_val"
)

// tables returns the schema migrated on every Open.
func tables() []*schema.Table {
	questions := schema.NewTable(tableQuestions).
		AddPrimary(&schema.Column{Name: colID, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colPosition, Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: colKind, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colText, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colOptions, Type: field.TypeString, Default: "[]"}).
		AddColumn(&schema.Column{Name: colAnswer, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colCategory, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colOriginalText, Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: colExplanation, Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: colIsAI, Type: field.TypeBool, Default: false}).
		AddColumn(&schema.Column{Name: colCreatedAt, Type: field.TypeInt64})
	questions.AddIndex("question_position", false, []string{colPosition})
	questions.AddIndex("question_category", false, []string{colCategory})

	attempts := schema.NewTable(tableAttempts).
		AddPrimary(&schema.Column{Name: colID, Type: field.TypeInt, Increment: true}).
		AddColumn(&schema.Column{Name: colSequence, Type: field.TypeInt64, Unique: true}).
		AddColumn(&schema.Column{Name: colSessionID, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colTimestamp, Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: colQuestionID, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colIsCorrect, Type: field.TypeBool}).
		AddColumn(&schema.Column{Name: colUserAnswer, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colCategory, Type: field.TypeString})
	attempts.AddIndex("attempt_session_id", false, []string{colSessionID})
	attempts.AddIndex("attempt_timestamp_ms", false, []string{colTimestamp})

	settings := schema.NewTable(tableSettings).
		AddPrimary(&schema.Column{Name: colKey, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colValue, Type: field.TypeString})

	events := schema.NewTable(tableLLMEvents).
		AddPrimary(&schema.Column{Name: colID, Type: field.TypeInt, Increment: true}).
		AddColumn(&schema.Column{Name: colSequence, Type: field.TypeInt64, Unique: true}).
		AddColumn(&schema.Column{Name: colTimestamp, Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: colProvider, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colModel, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colPurpose, Type: field.TypeString}).
		AddColumn(&schema.Column{Name: colInputTokens, Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: colOutputTokens, Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: colLatencyMs, Type: field.TypeInt64}).
		AddColumn(&schema.Column{Name: colSuccess, Type: field.TypeBool}).
		AddColumn(&schema.Column{Name: colErrorMessage, Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: colRequestBody, Type: field.TypeString, Default: ""}).
		AddColumn(&schema.Column{Name: colResponseBody, Type: field.TypeString, Default: ""})
	events.AddIndex("llmrequestevent_purpose", false, []string{colPurpose})
	events.AddIndex("llmrequestevent_timestamp_ms", false, []string{colTimestamp})

	sequence := schema.NewTable(tableSequence).
		AddPrimary(&schema.Column{Name: colID, Type: field.TypeInt}).
		AddColumn(&schema.Column{Name: colNextVal, Type: field.TypeInt64, Default: 1})

	return []*schema.Table{questions, attempts, settings, events, sequence}
}
