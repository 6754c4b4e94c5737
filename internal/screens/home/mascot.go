package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordwise/internal/ui/theme"
)

// MascotVariant selects which owl to draw.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // default
	MascotCheering                      // a full run answered today
	MascotSleepy                        // nothing in the bank yet
)

const mascotIdle = ` ,___,
 (O,O)
 /)_)
  ""  ABC`

const mascotCheering = `\,___,/
 (^,^)
 /)_)
  ""  ★`

const mascotSleepy = ` ,___,
 (-,-) z
 /)_)
  ""`

// RenderMascot returns the owl art for variant.
func RenderMascot(variant MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch variant {
	case MascotCheering:
		art, fg = mascotCheering, theme.Highlight
	case MascotSleepy:
		art, fg = mascotSleepy, theme.TextDim
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
