package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordwise/internal/question"
	"github.com/abhisek/wordwise/internal/ui/theme"
)

// Choices is an option picker for choice questions. Arrow keys move the
// cursor and number keys jump straight to an option. Submission is left to
// the owning screen.
type Choices struct {
	Options  []string
	Selected int

	// Set by Reveal once the answer has been graded.
	revealed bool
	answer   string
	chosen   string
}

// NewChoices creates a picker with the cursor on the first option.
func NewChoices(options []string) Choices {
	return Choices{Options: options}
}

// Update handles keyboard navigation.
func (c Choices) Update(msg tea.Msg) (Choices, tea.Cmd) {
	if c.revealed {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Selected = i
			}
		}
	}
	return c, nil
}

// Value returns the option under the cursor.
func (c Choices) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected]
}

// Reveal freezes the picker and highlights the correct option and, when
// different, the learner's choice.
func (c *Choices) Reveal(chosen, answer string) {
	c.revealed = true
	c.chosen = chosen
	c.answer = answer
}

// View renders the options.
func (c Choices) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case c.revealed && question.Grade(opt, c.answer):
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case c.revealed && opt == c.chosen:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case c.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
