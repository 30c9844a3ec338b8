package ui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#0969DA") // GitHub blue
	secondaryColor = lipgloss.Color("#8250DF") // Purple
	accentColor    = lipgloss.Color("#2DA44E") // Green
	errorColor     = lipgloss.Color("#CF222E") // Red
	textColor      = lipgloss.Color("#FFFFFF") // White
	lightTextColor = lipgloss.Color("#1F2328") // Near black
	dimColor       = lipgloss.Color("#6E7681") // Gray
	linkColor      = lipgloss.Color("#58A6FF") // Light blue
	dateColor      = lipgloss.Color("#A371F7") // Light purple
	sourceColor    = lipgloss.Color("#FFA657") // Light orange
	selectedBg     = lipgloss.Color("#2D333B") // Selected item background
	lightSelectBg  = lipgloss.Color("#EAEEF2") // Selected item background, light theme

	// magnitudeColors is indexed by magnitude bucket; index 0 is unused.
	magnitudeColors = []lipgloss.Color{
		"#4A7BA7",
		"#4A7BA7",
		"#04B4B3",
		"#10CAC9",
		"#F5A623",
		"#FF7D50",
		"#FC6644",
		"#E75F40",
		"#E13A20",
		"#D93218",
		"#C03823",
	}

	HeaderStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(1, 0).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor)

	CommandStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(textColor)

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	LinkStyle = lipgloss.NewStyle().
			Foreground(linkColor).
			Underline(true)

	DateStyle = lipgloss.NewStyle().
			Foreground(dateColor).
			Italic(true)

	// SectionStyle is the badge for a non-numeric section.
	SectionStyle = lipgloss.NewStyle().
			Foreground(sourceColor).
			Bold(true).
			Padding(0, 1)

	// MagnitudeStyle is the badge for a numeric section; its background is
	// set per row from magnitudeColors.
	MagnitudeStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true).
			Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Background(selectedBg).
			Bold(true).
			SetString("▶")

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			SetString(" ")

	KeyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor)

	StatusStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Background(selectedBg).
			Padding(0, 1).
			Bold(true)

	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// SetAccent recolours the borders that use the accent colour.
func SetAccent(color string) {
	if color == "" {
		return
	}
	accentColor = lipgloss.Color(color)
	HeaderStyle = HeaderStyle.BorderForeground(accentColor)
	SuccessStyle = SuccessStyle.Foreground(accentColor)
	KeyStyle = KeyStyle.BorderForeground(accentColor)
	StatusStyle = StatusStyle.Foreground(accentColor)
	BoxStyle = BoxStyle.BorderForeground(accentColor)
}

// SetDark switches the text and selection colours between the dark and the
// light terminal palette.
func SetDark(dark bool) {
	text, bg := textColor, selectedBg
	if !dark {
		text, bg = lightTextColor, lightSelectBg
	}
	TextStyle = TextStyle.Foreground(text)
	SelectedStyle = SelectedStyle.Background(bg)
	StatusStyle = StatusStyle.Background(bg)
}

// MagnitudeColor returns the badge colour for a magnitude bucket.
func MagnitudeColor(bucket int) lipgloss.Color {
	switch {
	case bucket < 1:
		return magnitudeColors[1]
	case bucket >= len(magnitudeColors):
		return magnitudeColors[len(magnitudeColors)-1]
	}
	return magnitudeColors[bucket]
}
