package cyclorama

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// minStreamInterval caps the frame stream at 20 messages a second
const minStreamInterval = 50 * time.Millisecond

// ClientMessage is a control request sent up the websocket
type ClientMessage struct {
	Op    string `json:"op"` // goto | next | prev | hover | unhover | events-next | events-prev
	Index int    `json:"index"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebsocketHandler streams Frames and accepts ClientMessages
func (v *View) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go v.readClient(conn, done)

	ticker := time.NewTicker(max(v.frameInterval(), minStreamInterval))
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteJSON(v.Timeline.Frame()); err != nil {
				return // Connection closed
			}
		case <-done:
			return
		}
	}
}

// readClient applies control messages until the client goes away
func (v *View) readClient(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("Websocket read failed", slog.Any("Error", err))
			}
			return
		}
		v.Apply(msg)
	}
}

// Apply performs one ClientMessage, returning whether anything moved
func (v *View) Apply(msg ClientMessage) bool {
	tl := v.Timeline
	switch msg.Op {
	case "goto":
		return tl.GoTo(msg.Index) == nil
	case "next":
		return tl.Next()
	case "prev":
		return tl.Prev()
	case "hover":
		return tl.Hover(msg.Index, true)
	case "unhover":
		return tl.Hover(msg.Index, false)
	case "events-next":
		return tl.EventsNext()
	case "events-prev":
		return tl.EventsPrev()
	default:
		slog.Debug("Unknown websocket op", slog.String("op", msg.Op))
		return false
	}
}
