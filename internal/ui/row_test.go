package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/thedittmer/article-report/internal/presenter"
)

func TestRenderContainsSlots(t *testing.T) {
	row := &presenter.Row{
		Section:         "World",
		PrimaryLocation: "Cairo, Egypt",
		LocationOffset:  "5km N of",
		Date:            "2016-03-03",
		Time:            "4:30 PM",
		URL:             "https://example.com/1",
		Magnitude:       presenter.NoMagnitude,
	}

	out := RowRenderer{Width: 100, ShowTime: true}.Render(0, row, true)
	for _, want := range []string{"World", "Cairo, Egypt", "5KM N OF", "2016-03-03", "4:30 PM", "https://example.com/1", "1"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered row missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCompactIsOneLine(t *testing.T) {
	row := &presenter.Row{Section: "7.1", PrimaryLocation: "Lima, Peru", Date: "2016-03-04", URL: "u", Magnitude: 7}

	out := RowRenderer{Width: 80, Compact: true}.Render(4, row, false)
	if strings.Contains(out, "\n") {
		t.Errorf("compact row spans several lines:\n%s", out)
	}
}

func TestRenderHidesTimeUnlessEnabled(t *testing.T) {
	row := &presenter.Row{Section: "s", PrimaryLocation: "p", Date: "2016-03-03", Time: "4:30 PM", Magnitude: presenter.NoMagnitude}
	if out := (RowRenderer{Width: 80}).Render(0, row, false); strings.Contains(out, "4:30 PM") {
		t.Errorf("time shown while ShowTime is off:\n%s", out)
	}
}

func TestMagnitudeColor(t *testing.T) {
	tests := []struct {
		bucket int
		want   lipgloss.Color
	}{
		{-1, "#4A7BA7"},
		{0, "#4A7BA7"},
		{1, "#4A7BA7"},
		{4, "#F5A623"},
		{10, "#C03823"},
		{42, "#C03823"},
	}
	for _, tt := range tests {
		if got := MagnitudeColor(tt.bucket); got != tt.want {
			t.Errorf("MagnitudeColor(%d) = %s, want %s", tt.bucket, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Pacific-Antarctic Ridge", 10); lipgloss.Width(got) > 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
}

func TestSetDark(t *testing.T) {
	defer SetDark(true)

	SetDark(false)
	if got := TextStyle.GetForeground(); got != lightTextColor {
		t.Errorf("light theme text colour = %v, want %v", got, lightTextColor)
	}
	if got := StatusStyle.GetBackground(); got != lightSelectBg {
		t.Errorf("light theme status background = %v, want %v", got, lightSelectBg)
	}

	SetDark(true)
	if got := TextStyle.GetForeground(); got != textColor {
		t.Errorf("dark theme text colour = %v, want %v", got, textColor)
	}
	if got := SelectedStyle.GetBackground(); got != selectedBg {
		t.Errorf("dark theme selected background = %v, want %v", got, selectedBg)
	}
}
