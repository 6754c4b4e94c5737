package question

// Seed returns the starter questions installed into a brand-new bank.
func Seed() []Question {
	return []Question{
		{
			ID:           "q_1_1",
			Kind:         KindSpelling,
			Text:         "Listen and spell out the word: 美食廣場 (f___ c___)",
			Answer:       "food court",
			Category:     "Vocabulary",
			OriginalText: "1. food court 美食廣場",
			Explanation:  "Food court means a place with many small restaurants.",
		},
		{
			ID:          "q_1_2",
			Kind:        KindMCQ,
			Text:        "She ____ to the park every Sunday.",
			Options:     []string{"go", "goes", "going"},
			Answer:      "goes",
			Category:    "Grammar",
			Explanation: "Present simple third person singular uses 'goes'.",
		},
		{
			ID:           "q_1_3",
			Kind:         KindSpelling,
			Text:         "Spell the word for a place where you watch movies: (c___m___)",
			Answer:       "cinema",
			Category:     "Vocabulary",
			OriginalText: "cinema 電影院",
			Explanation:  "Cinema is where you go to see the latest movies on a big screen.",
		},
		{
			ID:          "q_1_4",
			Kind:        KindMCQ,
			Text:        "We ____ playing football right now.",
			Options:     []string{"is", "am", "are"},
			Answer:      "are",
			Category:    "Grammar",
			Explanation: "We use 'are' with plural subjects in present continuous.",
		},
		{
			ID:          "q_1_5",
			Kind:        KindSpelling,
			Text:        "You use this to eat soup: (s___n)",
			Answer:      "spoon",
			Category:    "Vocabulary",
			Explanation: "A spoon is a common kitchen utensil used for liquids.",
		},
	}
}
