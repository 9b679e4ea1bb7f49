package session

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 5 * time.Second

// WSHandler upgrades the request and runs one session on it. The upgrade
// query string seeds the session state.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		s := hub.Open(TransportWS, c.Request.URL.RawQuery)
		defer hub.Close(s)

		if err := writeFrame(ws, s.View()); err != nil {
			return
		}

		for {
			_, payload, err := ws.ReadMessage()
			if err != nil {
				break
			}

			var a Action
			var f Frame
			if err := json.Unmarshal(payload, &a); err != nil {
				f = Frame{Type: FrameError, Session: s.ID, Error: "invalid action: " + err.Error(), At: time.Now().UTC()}
			} else {
				f = s.Handle(a)
			}
			if err := writeFrame(ws, f); err != nil {
				hub.Logger.Printf("[ws] write to %s failed: %v", s.ID, err)
				break
			}
		}
	}
}

func writeFrame(ws *websocket.Conn, f Frame) error {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	return ws.WriteJSON(f)
}
