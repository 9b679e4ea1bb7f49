package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"herodex/internal/catalog"
	"herodex/internal/dataset"
	"herodex/internal/field"
	"herodex/internal/viewstate"
	"herodex/pkg/models"
)

func (m Model) View() string {
	if m.st.SelectedID != nil {
		if r, ok := m.data.Get(*m.st.SelectedID); ok {
			return m.renderDetail(r.Hero())
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("herodex"))
	b.WriteString("  ")
	b.WriteString(m.styles.muted.Render(m.summary()))
	b.WriteString("\n\n")

	if len(m.res.Items) == 0 {
		b.WriteString(m.styles.muted.Render("No heroes match."))
		b.WriteString("\n")
	} else if m.st.ViewMode == viewstate.Cards {
		b.WriteString(m.renderCards())
	} else {
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) summary() string {
	parts := []string{
		fmt.Sprintf("%d heroes", m.res.Total),
		fmt.Sprintf("page %d/%d", m.res.Page, max(1, m.res.PageCount)),
		fmt.Sprintf("sort %s %s", m.st.SortField, m.st.SortDir),
	}
	if m.st.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("%s ~ %q", m.st.SearchField, m.st.SearchTerm))
	}
	for _, f := range m.st.ActiveFilters() {
		parts = append(parts, fmt.Sprintf("%s=%s", f.Info.Category, f.Value))
	}
	return strings.Join(parts, " · ")
}

var listColumns = []struct {
	key   string
	label string
	width int
}{
	{"name", "Name", 22},
	{"powerstats.strength", "Str", 5},
	{"powerstats.speed", "Spd", 5},
	{"powerstats.power", "Pow", 5},
	{"appearance.race", "Race", 16},
	{"appearance.height[1]", "Height", 9},
	{"biography.alignment", "Align", 8},
	{"connections.groupAffiliation", "Affiliation", 30},
}

func (m Model) renderList() string {
	var b strings.Builder
	var head []string
	for _, c := range listColumns {
		label := c.label
		if c.key == m.st.SortField {
			if m.st.SortDir == viewstate.Asc {
				label += " ▲"
			} else {
				label += " ▼"
			}
		}
		head = append(head, pad(label, c.width))
	}
	b.WriteString("  " + m.styles.header.Render(strings.Join(head, " ")) + "\n")

	for i, r := range m.res.Items {
		var cells []string
		for _, c := range listColumns {
			cells = append(cells, pad(display(r.Resolve(catalog.PathOf(c.key))), c.width))
		}
		line := strings.Join(cells, " ")
		if i == m.cursor {
			b.WriteString(m.styles.cursor.Render("> " + line))
		} else {
			b.WriteString(m.styles.row.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCards() string {
	perRow := 3
	if m.width > 0 {
		perRow = max(1, m.width/30)
	}

	var rows []string
	var row []string
	for i, r := range m.res.Items {
		row = append(row, m.renderCard(r, i == m.cursor))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m Model) renderCard(r dataset.Record, selected bool) string {
	h := r.Hero()
	style := m.styles.card
	if selected {
		style = m.styles.cardSel
	}

	align := h.Biography.Alignment
	alignStyle, ok := m.styles.align[align]
	if !ok {
		alignStyle = m.styles.muted
	}

	ps := h.Powerstats
	body := strings.Join([]string{
		m.styles.title.Render(h.Name),
		m.styles.muted.Render(orUnknown(h.Biography.FullName)),
		fmt.Sprintf("INT %3d  STR %3d", ps.Intelligence, ps.Strength),
		fmt.Sprintf("SPD %3d  DUR %3d", ps.Speed, ps.Durability),
		fmt.Sprintf("POW %3d  CMB %3d", ps.Power, ps.Combat),
		alignStyle.Render(orUnknown(align)),
	}, "\n")
	return style.Render(body)
}

func (m Model) renderFooter() string {
	var b strings.Builder
	if m.searching {
		b.WriteString(m.styles.cursor.Render("search " + m.st.SearchField + ": " + m.input + "█"))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.footer.Render("?" + m.Query()))
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render("/ search  g group  f field  s sort  r reverse  z size  v view  1-5 filters  x clear  n/p page  enter open  R reset  q quit"))
	return b.String()
}

func (m Model) renderDetail(h models.Hero) string {
	md := HeroMarkdown(h)

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(detailWidth(m.width))}
	if m.glamourStyle != "" {
		opts = append(opts, glamour.WithStandardStyle(m.glamourStyle))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out + m.styles.muted.Render("esc back  q quit")
}

func detailWidth(w int) int {
	if w <= 0 {
		return 80
	}
	return min(w-2, 100)
}

// HeroMarkdown renders the detail overlay for h.
func HeroMarkdown(h models.Hero) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", h.Name)
	if h.Images.MD != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", h.Name, h.Images.MD)
	}

	ps := h.Powerstats
	b.WriteString("## Power stats\n\n| Stat | Value |\n|---|---|\n")
	for _, row := range []struct {
		label string
		v     int
	}{
		{"Intelligence", ps.Intelligence},
		{"Strength", ps.Strength},
		{"Speed", ps.Speed},
		{"Durability", ps.Durability},
		{"Power", ps.Power},
		{"Combat", ps.Combat},
	} {
		fmt.Fprintf(&b, "| %s | %d |\n", row.label, row.v)
	}

	a := h.Appearance
	b.WriteString("\n## Appearance\n\n")
	fmt.Fprintf(&b, "- **Gender:** %s\n", orUnknown(a.Gender))
	fmt.Fprintf(&b, "- **Race:** %s\n", orUnknown(a.RaceName()))
	fmt.Fprintf(&b, "- **Height:** %s\n", orUnknown(a.MetricHeight()))
	fmt.Fprintf(&b, "- **Weight:** %s\n", orUnknown(a.MetricWeight()))
	fmt.Fprintf(&b, "- **Eyes:** %s\n", orUnknown(a.EyeColor))
	fmt.Fprintf(&b, "- **Hair:** %s\n", orUnknown(a.HairColor))

	bio := h.Biography
	publisher := ""
	if bio.Publisher != nil {
		publisher = *bio.Publisher
	}
	b.WriteString("\n## Biography\n\n")
	fmt.Fprintf(&b, "- **Full name:** %s\n", orUnknown(bio.FullName))
	fmt.Fprintf(&b, "- **Aliases:** %s\n", orUnknown(strings.Join(bio.Aliases, ", ")))
	fmt.Fprintf(&b, "- **Place of birth:** %s\n", orUnknown(bio.PlaceOfBirth))
	fmt.Fprintf(&b, "- **First appearance:** %s\n", orUnknown(bio.FirstAppearance))
	fmt.Fprintf(&b, "- **Publisher:** %s\n", orUnknown(publisher))
	fmt.Fprintf(&b, "- **Alignment:** %s\n", orUnknown(bio.Alignment))

	b.WriteString("\n## Work & connections\n\n")
	fmt.Fprintf(&b, "- **Occupation:** %s\n", orUnknown(h.Work.Occupation))
	fmt.Fprintf(&b, "- **Base:** %s\n", orUnknown(h.Work.Base))
	fmt.Fprintf(&b, "- **Affiliation:** %s\n", orUnknown(h.Connections.GroupAffiliation))
	fmt.Fprintf(&b, "- **Relatives:** %s\n", orUnknown(h.Connections.Relatives))
	return b.String()
}

func display(v field.Value) string {
	if v.IsMissing() {
		return field.Unknown
	}
	return v.Text()
}

func orUnknown(s string) string {
	if s == "" || s == catalog.Placeholder {
		return field.Unknown
	}
	return s
}

// pad fits s into w cells, truncating with an ellipsis.
func pad(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		if w <= 1 {
			return string(r[:w])
		}
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}
