package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/disha/internal/ui/theme"
)

const titleFull = ` ██████╗ ██╗███████╗██╗  ██╗ █████╗
 ██╔══██╗██║██╔════╝██║  ██║██╔══██╗
 ██║  ██║██║███████╗███████║███████║
 ██║  ██║██║╚════██║██╔══██║██╔══██║
 ██████╔╝██║███████║██║  ██║██║  ██║
 ╚═════╝ ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝`

const titleCompact = "D · I · S · H · A"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the assessment summary in a bordered box matching
// content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	latest := dimStyle.Render("no result yet")
	if st.latestTitle != "" {
		latest = lipgloss.NewStyle().
			Foreground(theme.StreamColor(st.latestStream)).
			Bold(true).
			Render(st.latestTitle)
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s  %s",
			countStyle.Render(fmt.Sprintf("✓%d", st.taken)),
			latest,
		)
	} else {
		line = fmt.Sprintf("%s  %s %s",
			countStyle.Render(fmt.Sprintf("✓ %d TAKEN", st.taken)),
			dimStyle.Render("latest:"),
			latest,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		BorderForeground(theme.Highlight)
	normalBtn := base.
		Foreground(theme.Text).
		BorderForeground(theme.Border)
	disabledBtn := base.
		Foreground(theme.TextDim).
		BorderForeground(theme.Border)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for terminals where
// bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderNotice renders a dim one-line notice, e.g. when history is off.
func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, stream string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant, stream))
}
