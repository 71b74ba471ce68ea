package cyclorama_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	Cd "github.com/maroda/cyclorama/display"
	Ct "github.com/maroda/cyclorama/types"
)

func TestView_WebsocketHandler(t *testing.T) {
	view := makeTestView(t)
	srv := httptest.NewServer(view.SetupMux())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("could not dial websocket: %v", err)
	}
	defer conn.Close()

	t.Run("Streams frames", func(t *testing.T) {
		var frame Ct.Frame
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		err := conn.ReadJSON(&frame)
		assertError(t, err, nil)
		assertInt(t, frame.Total, 6)
	})

	t.Run("Accepts control messages", func(t *testing.T) {
		err := conn.WriteJSON(Cd.ClientMessage{Op: "goto", Index: 4})
		assertError(t, err, nil)

		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			var frame Ct.Frame
			conn.SetReadDeadline(deadline)
			if err := conn.ReadJSON(&frame); err != nil {
				t.Fatalf("read failed: %v", err)
			}
			if frame.Active == 4 {
				return
			}
		}
		t.Errorf("never saw active period 4")
	})
}

func TestView_Apply(t *testing.T) {
	view := makeTestView(t)

	tests := []struct {
		name   string
		msg    Cd.ClientMessage
		moved  bool
		active int
	}{
		{"goto", Cd.ClientMessage{Op: "goto", Index: 1}, true, 1},
		{"next while locked", Cd.ClientMessage{Op: "next"}, false, 1},
		{"events forward", Cd.ClientMessage{Op: "events-next"}, true, 1},
		{"events back", Cd.ClientMessage{Op: "events-prev"}, true, 1},
		{"events back at start", Cd.ClientMessage{Op: "events-prev"}, false, 1},
		{"hover", Cd.ClientMessage{Op: "hover", Index: 3}, true, 1},
		{"unhover", Cd.ClientMessage{Op: "unhover", Index: 3}, true, 1},
		{"hover out of range", Cd.ClientMessage{Op: "hover", Index: 9}, false, 1},
		{"unhover out of range", Cd.ClientMessage{Op: "unhover", Index: -1}, false, 1},
		{"unknown", Cd.ClientMessage{Op: "spin"}, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertBool(t, view.Apply(tt.msg), tt.moved)
			assertInt(t, view.Timeline.Active(), tt.active)
		})
	}

	t.Run("prev once settled", func(t *testing.T) {
		view.Step(testDuration)
		assertBool(t, view.Apply(Cd.ClientMessage{Op: "prev"}), true)
		assertInt(t, view.Timeline.Active(), 0)
	})

	t.Run("Nothing moves after unmount", func(t *testing.T) {
		view.Step(testDuration)
		view.Timeline.Unmount()
		for _, op := range []string{"next", "prev", "hover", "unhover", "events-next", "events-prev"} {
			assertBool(t, view.Apply(Cd.ClientMessage{Op: op, Index: 1}), false)
		}
		assertBool(t, view.Timeline.Locked(), false)
		assertInt(t, view.Timeline.Active(), 0)
	})
}
