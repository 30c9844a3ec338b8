package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/thedittmer/article-report/internal/presenter"
)

const (
	defaultWidth = 80
	minWidth     = 40
	sectionWidth = 14
)

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// RowRenderer draws presenter rows as terminal list items.
type RowRenderer struct {
	Width    int
	Compact  bool
	ShowTime bool
}

func (r RowRenderer) width() int {
	if r.Width < minWidth {
		return minWidth
	}
	return r.Width
}

// Render draws one list item. The section badge is coloured by magnitude when
// the row carries one.
func (r RowRenderer) Render(index int, row *presenter.Row, selected bool) string {
	marker := UnselectedStyle.String()
	if selected {
		marker = SelectedStyle.String()
	}

	badge := SectionStyle
	if row.Magnitude != presenter.NoMagnitude {
		badge = MagnitudeStyle.Background(MagnitudeColor(row.Magnitude))
	}
	section := badge.Width(sectionWidth).MaxWidth(sectionWidth).Render(truncate(row.Section, sectionWidth-2))

	var when string
	switch {
	case r.Compact:
		text := row.Date
		if r.ShowTime && row.Time != "" {
			text += " " + row.Time
		}
		when = DateStyle.Render(text)
	case r.ShowTime && row.Time != "":
		when = lipgloss.JoinVertical(lipgloss.Right, DateStyle.Render(row.Date), DateStyle.Render(row.Time))
	default:
		when = DateStyle.Render(row.Date)
	}

	number := DimStyle.Render(fmt.Sprintf("%3d", index+1))
	fixed := lipgloss.Width(marker) + lipgloss.Width(number) + lipgloss.Width(section) + lipgloss.Width(when) + 3
	locWidth := r.width() - fixed
	if locWidth < 10 {
		locWidth = 10
	}

	location := TextStyle.Render(truncate(row.PrimaryLocation, locWidth))
	if row.LocationOffset != "" && !r.Compact {
		location = lipgloss.JoinVertical(lipgloss.Left,
			DimStyle.Render(truncate(strings.ToUpper(row.LocationOffset), locWidth)),
			location,
		)
	}
	location = lipgloss.NewStyle().Width(locWidth).Render(location)

	line := lipgloss.JoinHorizontal(lipgloss.Top, marker, number, " ", section, " ", location, " ", when)
	if r.Compact {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, "    "+LinkStyle.Render(row.URL))
}

// truncate shortens s to at most n cells, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 || lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
