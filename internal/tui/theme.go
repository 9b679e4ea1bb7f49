package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Alt     lipgloss.Color
	Border  lipgloss.Color
	Good    lipgloss.Color
	Bad     lipgloss.Color
	Neutral lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Text:    lipgloss.Color("#cdd6f4"),
		Muted:   lipgloss.Color("#a6adc8"),
		Accent:  lipgloss.Color("#cba6f7"),
		Alt:     lipgloss.Color("#f38ba8"),
		Border:  lipgloss.Color("#585b70"),
		Good:    lipgloss.Color("#94e2d5"),
		Bad:     lipgloss.Color("#f38ba8"),
		Neutral: lipgloss.Color("#f9e2af"),
	},
	"gruvbox": {
		Text:    lipgloss.Color("#ebdbb2"),
		Muted:   lipgloss.Color("#a89984"),
		Accent:  lipgloss.Color("#fabd2f"),
		Alt:     lipgloss.Color("#d3869b"),
		Border:  lipgloss.Color("#665c54"),
		Good:    lipgloss.Color("#b8bb26"),
		Bad:     lipgloss.Color("#fb4934"),
		Neutral: lipgloss.Color("#fe8019"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["catppuccin"]
}

// Themes lists the palette names.
func Themes() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	row      lipgloss.Style
	cursor   lipgloss.Style
	muted    lipgloss.Style
	card     lipgloss.Style
	cardSel  lipgloss.Style
	footer   lipgloss.Style
	errorMsg lipgloss.Style
	align    map[string]lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		header:   lipgloss.NewStyle().Bold(true).Foreground(p.Alt),
		row:      lipgloss.NewStyle().Foreground(p.Text),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		muted:    lipgloss.NewStyle().Foreground(p.Muted),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1).Width(26),
		cardSel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Accent).Padding(0, 1).Width(26),
		footer:   lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		errorMsg: lipgloss.NewStyle().Foreground(p.Bad),
		align: map[string]lipgloss.Style{
			"good":    lipgloss.NewStyle().Foreground(p.Good),
			"bad":     lipgloss.NewStyle().Foreground(p.Bad),
			"neutral": lipgloss.NewStyle().Foreground(p.Neutral),
		},
	}
}
