package session

import (
	"time"

	"herodex/internal/query"
	"herodex/internal/viewstate"
	"herodex/pkg/models"
)

// Action names accepted from clients.
const (
	ActSearch     = "search"
	ActGroup      = "group"
	ActField      = "field"
	ActFilter     = "filter"
	ActSort       = "sort"
	ActToggleSort = "toggle_sort"
	ActSize       = "size"
	ActView       = "view"
	ActToggleView = "toggle_view"
	ActNext       = "next"
	ActPrev       = "prev"
	ActPage       = "page"
	ActSelect     = "select"
	ActDeselect   = "deselect"
	ActReset      = "reset"
	ActRestore    = "restore"
)

// Action is one inbound user interaction.
type Action struct {
	Action   string `json:"action"`
	Value    string `json:"value,omitempty"`
	Category string `json:"category,omitempty"`
	Dir      string `json:"dir,omitempty"`
	Page     int    `json:"page,omitempty"`
	ID       int    `json:"id,omitempty"`
}

// Frame types.
const (
	FrameView  = "view"
	FrameError = "error"
)

// Frame is sent after every action: the re-evaluated view, or an error that
// left the state untouched.
type Frame struct {
	Type     string           `json:"type"`
	Session  string           `json:"session"`
	Query    string           `json:"query,omitempty"`
	State    *viewstate.State `json:"state,omitempty"`
	Result   *query.Result    `json:"result,omitempty"`
	Selected *models.Hero     `json:"selected,omitempty"`
	Error    string           `json:"error,omitempty"`
	At       time.Time        `json:"at"`
}
