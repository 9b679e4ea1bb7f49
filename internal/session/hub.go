package session

import (
	"log"
	"sync"
	"time"

	"herodex/internal/dataset"
)

// Transport names.
const (
	TransportWS  = "websocket"
	TransportTCP = "tcp"
)

// Hub tracks live sessions. It never touches session state.
type Hub struct {
	Data   *dataset.Dataset
	Logger *log.Logger

	mu       sync.Mutex
	sessions map[string]entry
}

type entry struct {
	transport string
	since     time.Time
}

type Stats struct {
	Sessions   int `json:"sessions"`
	WSClients  int `json:"ws_clients"`
	TCPClients int `json:"tcp_clients"`
}

func NewHub(data *dataset.Dataset, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		Data:     data,
		Logger:   logger,
		sessions: make(map[string]entry),
	}
}

// Open creates and registers a session.
func (h *Hub) Open(transport, rawQuery string) *Session {
	s := New(h.Data, rawQuery)

	h.mu.Lock()
	h.sessions[s.ID] = entry{transport: transport, since: time.Now().UTC()}
	h.mu.Unlock()

	h.Logger.Printf("[session] %s opened over %s", s.ID, transport)
	return s
}

func (h *Hub) Close(s *Session) {
	h.mu.Lock()
	e, ok := h.sessions[s.ID]
	delete(h.sessions, s.ID)
	h.mu.Unlock()

	if ok {
		h.Logger.Printf("[session] %s closed after %s", s.ID, time.Since(e.since).Round(time.Second))
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	st := Stats{Sessions: len(h.sessions)}
	for _, e := range h.sessions {
		switch e.transport {
		case TransportWS:
			st.WSClients++
		case TransportTCP:
			st.TCPClients++
		}
	}
	return st
}
