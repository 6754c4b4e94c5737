package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordwise/internal/ui/theme"
)

const bannerArt = `╦ ╦╔═╗╦═╗╔╦╗╦ ╦╦╔═╗╔═╗
║║║║ ║╠╦╝ ║║║║║║╚═╗║╣
╚╩╝╚═╝╩╚══╩╝╚╩╝╩╚═╝╚═╝`

const bannerCompact = "W · O · R · D · W · I · S · E"

// RenderBanner returns the WORDWISE banner. Terminals narrower than 40
// columns get the one-line form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
