package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-3-flash-preview"},
		{"gemini-pro", "gemini-3-pro-preview"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiContents_Images(t *testing.T) {
	msgs := []Message{{
		Role:    RoleUser,
		Content: "Extract the questions.",
		Images:  []Image{{Data: []byte{0xff, 0xd8}, MediaType: "image/jpeg"}},
	}}
	contents := buildGeminiContents(msgs)
	if len(contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(contents))
	}
	c := contents[0]
	if c.Role != genai.RoleUser {
		t.Errorf("role = %q, want user", c.Role)
	}
	if len(c.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(c.Parts))
	}
	if c.Parts[0].InlineData == nil || c.Parts[0].InlineData.MIMEType != "image/jpeg" {
		t.Errorf("first part should be inline jpeg, got %+v", c.Parts[0])
	}
	if c.Parts[1].Text != "Extract the questions." {
		t.Errorf("second part text = %q", c.Parts[1].Text)
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"type":     map[string]any{"type": "string", "enum": []any{"MCQ", "TF", "spelling_correction"}},
			"options": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"count": map[string]any{"type": "integer"},
		},
		"required": []any{"question", "type"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["question"].Type != genai.TypeString {
		t.Fatalf("expected STRING for question, got %s", schema.Properties["question"].Type)
	}
	if schema.Properties["count"].Type != genai.TypeInteger {
		t.Fatalf("expected INTEGER for count, got %s", schema.Properties["count"].Type)
	}
	if len(schema.Properties["type"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["type"].Enum))
	}
	if schema.Properties["options"].Items.Type != genai.TypeString {
		t.Fatalf("expected STRING for options items, got %s", schema.Properties["options"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
