// Package session runs interactive browse sessions over websocket and TCP.
// Each connection owns one view state; actions on it are applied in order
// on the connection's read loop and nothing is shared between connections.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"herodex/internal/catalog"
	"herodex/internal/dataset"
	"herodex/internal/query"
	"herodex/internal/urlcodec"
	"herodex/internal/viewstate"
)

type Session struct {
	ID    string
	State *viewstate.State
	data  *dataset.Dataset
}

// New starts a session over data, restoring its state from a query string.
func New(data *dataset.Dataset, rawQuery string) *Session {
	st := viewstate.New()
	urlcodec.Restore(st, rawQuery)
	return &Session{ID: uuid.NewString(), State: st, data: data}
}

// Handle applies a and returns the frame to send back. An invalid action
// yields an error frame and leaves the state as it was.
func (s *Session) Handle(a Action) Frame {
	if err := s.apply(a); err != nil {
		return Frame{Type: FrameError, Session: s.ID, Error: err.Error(), At: time.Now().UTC()}
	}
	return s.View()
}

// View evaluates the current state.
func (s *Session) View() Frame {
	res := query.Evaluate(s.data.Records(), s.State)
	st := s.State.Clone()
	f := Frame{
		Type:    FrameView,
		Session: s.ID,
		Query:   urlcodec.Encode(s.State),
		State:   &st,
		Result:  &res,
		At:      time.Now().UTC(),
	}
	if s.State.SelectedID != nil {
		if r, ok := s.data.Get(*s.State.SelectedID); ok {
			h := r.Hero()
			f.Selected = &h
		}
	}
	return f
}

func (s *Session) apply(a Action) error {
	st := s.State
	switch a.Action {
	case ActSearch:
		st.SetSearchTerm(a.Value)
	case ActGroup:
		st.SetSearchGroup(a.Value)
	case ActField:
		st.SetSearchField(a.Value)
	case ActFilter:
		info, ok := catalog.Lookup(catalog.Category(a.Category))
		if !ok {
			return fmt.Errorf("unknown category %q", a.Category)
		}
		st.SetFilter(info.Category, a.Value)
	case ActSort:
		dir := st.SortDir
		if a.Dir != "" {
			d, ok := viewstate.ParseDirection(a.Dir)
			if !ok {
				return fmt.Errorf("unknown sort direction %q", a.Dir)
			}
			dir = d
		}
		if a.Value == "" {
			return fmt.Errorf("sort needs a field")
		}
		st.SetSort(a.Value, dir)
	case ActToggleSort:
		if a.Value == "" {
			return fmt.Errorf("toggle_sort needs a field")
		}
		st.ToggleSort(a.Value)
	case ActSize:
		size, ok := viewstate.ParsePageSize(a.Value)
		if !ok {
			return fmt.Errorf("invalid page size %q", a.Value)
		}
		st.SetPageSize(size)
	case ActView:
		m, ok := viewstate.ParseMode(a.Value)
		if !ok {
			return fmt.Errorf("unknown view mode %q", a.Value)
		}
		st.SetViewMode(m)
	case ActToggleView:
		st.ToggleViewMode()
	case ActNext:
		st.NextPage()
	case ActPrev:
		st.PrevPage()
	case ActPage:
		st.GoToPage(a.Page)
	case ActSelect:
		if _, ok := s.data.Get(a.ID); !ok {
			return fmt.Errorf("hero %d not found", a.ID)
		}
		st.Select(a.ID)
	case ActDeselect:
		st.Deselect()
	case ActReset:
		st.Reset()
	case ActRestore:
		p := urlcodec.Decode(a.Value)
		if p.Empty() {
			return fmt.Errorf("restore query %q sets nothing", a.Value)
		}
		p.Apply(st)
	default:
		return fmt.Errorf("unknown action %q", a.Action)
	}
	return nil
}
