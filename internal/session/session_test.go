package session

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herodex/internal/catalog"
	"herodex/internal/dataset"
	"herodex/internal/viewstate"
	"herodex/pkg/models"
)

var quiet = log.New(io.Discard, "", 0)

func testData(t *testing.T) *dataset.Dataset {
	t.Helper()
	records, err := (&dataset.FileSource{Path: "../dataset/testdata/heroes.json"}).FetchAll(context.Background())
	require.NoError(t, err)
	return dataset.New("test", records)
}

func itemNames(f Frame) []string {
	var out []string
	for _, r := range f.Result.Items {
		out = append(out, r.Name())
	}
	return out
}

func TestNewRestoresQuery(t *testing.T) {
	s := New(testData(t), "q=bat&view=cards")
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "bat", s.State.SearchTerm)
	assert.Equal(t, viewstate.Cards, s.State.ViewMode)

	f := s.View()
	assert.Equal(t, FrameView, f.Type)
	assert.Equal(t, []string{"Batgirl", "Batman", "Combat Suit"}, itemNames(f))
	assert.Contains(t, f.Query, "q=bat")
}

func TestHandleActions(t *testing.T) {
	s := New(testData(t), "")

	f := s.Handle(Action{Action: ActFilter, Category: "race", Value: "Human"})
	require.Equal(t, FrameView, f.Type)
	assert.Equal(t, 5, f.Result.Total)

	f = s.Handle(Action{Action: ActSort, Value: "powerstats.strength", Dir: "desc"})
	assert.Equal(t, "A-Bomb", itemNames(f)[0])

	f = s.Handle(Action{Action: ActToggleSort, Value: "powerstats.strength"})
	assert.Equal(t, viewstate.Asc, f.State.SortDir)
	assert.Equal(t, "Batgirl", itemNames(f)[0])

	f = s.Handle(Action{Action: ActSize, Value: "2"})
	assert.Equal(t, 3, f.Result.PageCount)

	s.Handle(Action{Action: ActNext})
	f = s.Handle(Action{Action: ActNext})
	assert.Equal(t, 3, f.Result.Page)
	f = s.Handle(Action{Action: ActNext})
	assert.Equal(t, 3, f.Result.Page, "clamped by the engine")
	f = s.Handle(Action{Action: ActPrev})
	assert.Equal(t, 2, f.Result.Page)
	f = s.Handle(Action{Action: ActPage, Page: 1})
	assert.Equal(t, 1, f.Result.Page)

	f = s.Handle(Action{Action: ActSelect, ID: 70})
	require.NotNil(t, f.Selected)
	assert.Equal(t, "Batman", f.Selected.Name)
	assert.Equal(t, 1, f.Result.Page)

	f = s.Handle(Action{Action: ActDeselect})
	assert.Nil(t, f.Selected)

	f = s.Handle(Action{Action: ActToggleView})
	assert.Equal(t, viewstate.Cards, f.State.ViewMode)
	f = s.Handle(Action{Action: ActView, Value: "list"})
	assert.Equal(t, viewstate.List, f.State.ViewMode)

	f = s.Handle(Action{Action: ActGroup, Value: "appearance"})
	assert.Equal(t, "appearance.race", f.State.SearchField)
	f = s.Handle(Action{Action: ActField, Value: "work.occupation"})
	assert.Equal(t, "biography", f.State.SearchGroup)
	f = s.Handle(Action{Action: ActSearch, Value: "x"})
	assert.Equal(t, "x", f.State.SearchTerm)

	f = s.Handle(Action{Action: ActReset})
	assert.Equal(t, viewstate.Default(), *f.State)
	assert.Equal(t, 7, f.Result.Total)

	f = s.Handle(Action{Action: ActRestore, Value: "?eye=blue"})
	assert.Equal(t, []string{"Batman"}, itemNames(f))
}

func TestHandleErrorsKeepState(t *testing.T) {
	s := New(testData(t), "")
	s.Handle(Action{Action: ActFilter, Category: string(catalog.Gender), Value: "Female"})
	before := s.State.Clone()

	for _, a := range []Action{
		{Action: "fly"},
		{Action: ActFilter, Category: "planet", Value: "Earth"},
		{Action: ActSort, Value: "name", Dir: "up"},
		{Action: ActSort},
		{Action: ActToggleSort},
		{Action: ActSize, Value: "0"},
		{Action: ActView, Value: "grid"},
		{Action: ActSelect, ID: 12345},
		{Action: ActRestore, Value: "size=zero&planet=earth"},
		{Action: ActRestore},
	} {
		f := s.Handle(a)
		assert.Equal(t, FrameError, f.Type, a.Action)
		assert.NotEmpty(t, f.Error, a.Action)
		assert.Equal(t, s.ID, f.Session)
	}
	assert.Equal(t, before, *s.State)
}

func TestHubStats(t *testing.T) {
	hub := NewHub(testData(t), quiet)
	a := hub.Open(TransportWS, "")
	b := hub.Open(TransportTCP, "")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, Stats{Sessions: 2, WSClients: 1, TCPClients: 1}, hub.Stats())

	hub.Close(a)
	hub.Close(a)
	assert.Equal(t, 1, hub.Count())
}

type wireFrame struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Query   string `json:"query"`
	Error   string `json:"error"`
	Result  struct {
		Items []models.Hero `json:"items"`
		Total int           `json:"total"`
		Page  int           `json:"page"`
	} `json:"result"`
	Selected *models.Hero `json:"selected"`
}

func TestWSSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(testData(t), quiet)
	r := gin.New()
	r.GET("/ws", WSHandler(hub))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?align=bad"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	var f wireFrame
	require.NoError(t, ws.ReadJSON(&f))
	assert.Equal(t, FrameView, f.Type)
	assert.Equal(t, 1, f.Result.Total)
	assert.Equal(t, "Bane", f.Result.Items[0].Name)
	assert.Equal(t, 1, hub.Stats().WSClients)

	require.NoError(t, ws.WriteJSON(Action{Action: ActSelect, ID: 38}))
	require.NoError(t, ws.ReadJSON(&f))
	require.NotNil(t, f.Selected)
	assert.Equal(t, "Bane", f.Selected.Name)
	assert.Contains(t, f.Query, "hero=38")

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("not json")))
	f = wireFrame{}
	require.NoError(t, ws.ReadJSON(&f))
	assert.Equal(t, FrameError, f.Type)

	require.NoError(t, ws.WriteJSON(Action{Action: "teleport"}))
	f = wireFrame{}
	require.NoError(t, ws.ReadJSON(&f))
	assert.Equal(t, FrameError, f.Type)
	assert.Contains(t, f.Error, "teleport")
}

func TestTCPSession(t *testing.T) {
	hub := NewHub(testData(t), quiet)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(ln.Addr().String(), hub)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	rd := bufio.NewReader(conn)
	read := func() wireFrame {
		line, err := rd.ReadBytes('\n')
		require.NoError(t, err)
		var f wireFrame
		require.NoError(t, json.Unmarshal(line, &f))
		return f
	}

	f := read()
	assert.Equal(t, FrameView, f.Type)
	assert.Equal(t, 7, f.Result.Total)

	_, err = conn.Write([]byte(`{"action":"restore","value":"q=spider"}` + "\n"))
	require.NoError(t, err)
	f = read()
	require.Len(t, f.Result.Items, 1)
	assert.Equal(t, "Spider-Man", f.Result.Items[0].Name)

	require.NoError(t, srv.Close())
	assert.NoError(t, <-done)
}
