package aigen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure drops the item.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// SimilarCount is how many questions Similar asks for.
	SimilarCount int

	// BaseSample is how many base questions are shown to the model.
	BaseSample int

	// OCRCategories are suggested to the model when reading worksheets.
	OCRCategories []string
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ConsistencyValidator{},
			&DedupValidator{},
		},
		MaxTokens:     4096,
		Temperature:   0.7,
		SimilarCount:  5,
		BaseSample:    3,
		OCRCategories: []string{"Present Simple", "Past Simple", "Prepositions", "Articles", "Pronouns", "Conjunctions"},
	}
}
