package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle    MascotVariant = iota // no assessment yet
	MascotGuiding                      // a stream has been recommended
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│  ?  │
└─────┘`

const mascotGuiding = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ─▲─ │
└─────┘`

// RenderMascot returns the mascot art. A guiding mascot takes the color of
// stream.
func RenderMascot(v MascotVariant, stream string) string {
	art := mascotIdle
	var fg color.Color = theme.Primary
	if v == MascotGuiding {
		art = mascotGuiding
		fg = theme.StreamColor(stream)
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
