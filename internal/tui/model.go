// Package tui is a terminal front end for the hero browser. Every key maps to
// one view state transition followed by a fresh query pass.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"herodex/internal/catalog"
	"herodex/internal/dataset"
	"herodex/internal/options"
	"herodex/internal/query"
	"herodex/internal/urlcodec"
	"herodex/internal/viewstate"
)

// Page sizes the size key cycles through.
var pageSizes = []viewstate.PageSize{10, 20, 50, viewstate.All}

// Options configures a Model.
type Options struct {
	Theme string
	// GlamourStyle is a glamour standard style name; empty picks one from
	// the terminal background.
	GlamourStyle string
	// Query seeds the view state the same way a browser URL would.
	Query string
}

type Model struct {
	data *dataset.Dataset
	idx  options.Index
	st   *viewstate.State
	res  query.Result

	styles       styles
	glamourStyle string

	cursor    int
	searching bool
	input     string
	width     int
	height    int
}

func New(data *dataset.Dataset, idx options.Index, opts Options) Model {
	st := viewstate.New()
	urlcodec.Restore(st, opts.Query)

	m := Model{
		data:         data,
		idx:          idx,
		st:           st,
		styles:       newStyles(paletteFor(opts.Theme)),
		glamourStyle: opts.GlamourStyle,
	}
	m.refresh()
	return m
}

// State exposes the current view state.
func (m Model) State() *viewstate.State { return m.st }

// Result is the last query pass.
func (m Model) Result() query.Result { return m.res }

// Query is the encoded view state, the address a browser would show.
func (m Model) Query() string { return urlcodec.Encode(m.st) }

func (m *Model) refresh() {
	m.res = query.Evaluate(m.data.Records(), m.st)
	if m.cursor >= len(m.res.Items) {
		m.cursor = len(m.res.Items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		k := msg.String()
		if k == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			m.updateSearch(msg)
			return m, nil
		}
		if m.st.SelectedID != nil {
			switch k {
			case "esc", "enter", "backspace":
				m.st.Deselect()
			case "q":
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateBrowse(k)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.st.SetSearchTerm(m.input)
		m.cursor = 0
		m.refresh()
	case tea.KeyEsc:
		m.searching = false
		m.input = m.st.SearchTerm
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
}

func (m Model) updateBrowse(k string) (tea.Model, tea.Cmd) {
	switch k {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.input = m.st.SearchTerm
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.res.Items)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.cursor < len(m.res.Items) {
			m.st.Select(m.res.Items[m.cursor].ID())
		}
		return m, nil
	case "right", "n":
		m.st.NextPage()
	case "left", "p":
		m.st.PrevPage()
	case "home":
		m.st.GoToPage(1)
	case "end":
		m.st.GoToPage(m.res.PageCount)
	case "g":
		m.st.SetSearchGroup(nextGroup(m.st.SearchGroup))
	case "f":
		m.st.SetSearchField(nextField(m.st.SearchGroup, m.st.SearchField))
	case "s":
		m.st.SetSort(nextSortField(m.st.SortField), m.st.SortDir)
	case "r":
		m.st.ToggleSort(m.st.SortField)
	case "z":
		m.st.SetPageSize(nextPageSize(m.st.PageSize))
	case "v":
		m.st.ToggleViewMode()
	case "x":
		for _, info := range catalog.Categories {
			m.st.SetFilter(info.Category, "")
		}
	case "R":
		m.st.Reset()
	case "1", "2", "3", "4", "5":
		info := catalog.Categories[int(k[0]-'1')]
		m.st.SetFilter(info.Category, nextValue(m.idx.Values(info.Category), m.st.Filter(info.Category)))
	default:
		return m, nil
	}
	m.cursor = 0
	m.refresh()
	return m, nil
}

func nextGroup(cur string) string {
	for i, g := range catalog.Groups {
		if g.Key == cur {
			return catalog.Groups[(i+1)%len(catalog.Groups)].Key
		}
	}
	return catalog.Groups[0].Key
}

func nextField(group, cur string) string {
	opts := catalog.OptionsFor(group)
	for i, f := range opts {
		if f.Key == cur {
			return opts[(i+1)%len(opts)].Key
		}
	}
	return opts[0].Key
}

func nextSortField(cur string) string {
	for i, f := range catalog.SortFields {
		if f.Key == cur {
			return catalog.SortFields[(i+1)%len(catalog.SortFields)].Key
		}
	}
	return catalog.SortFields[0].Key
}

func nextPageSize(cur viewstate.PageSize) viewstate.PageSize {
	for i, p := range pageSizes {
		if p == cur {
			return pageSizes[(i+1)%len(pageSizes)]
		}
	}
	return pageSizes[0]
}

// nextValue cycles any -> first -> ... -> last -> any.
func nextValue(values []string, cur string) string {
	if cur == "" {
		if len(values) == 0 {
			return ""
		}
		return values[0]
	}
	for i, v := range values {
		if v == cur {
			if i+1 < len(values) {
				return values[i+1]
			}
			return ""
		}
	}
	return ""
}
