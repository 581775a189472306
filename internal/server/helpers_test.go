package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/sagythepigy/LAN-Poker/internal/game"
	"github.com/sagythepigy/LAN-Poker/internal/stats"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// testRooms builds a registry with a deterministic shuffle seed and a
// restart delay long enough to keep the real clock out of test windows.
func testRooms() *Rooms {
	cfg := game.DefaultConfig()
	cfg.RestartDelay = time.Minute
	seed := int64(42)
	return NewRooms(cfg, testLogger(), quartz.NewReal(), stats.NewNopRecorder(), &seed)
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	rooms := testRooms()
	srv := NewServer("127.0.0.1:0", testLogger(), rooms)
	rooms.SetNotifier(srv)
	go srv.run()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.cancel()
	})
	return srv, ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func sendMessage(t *testing.T, ws *websocket.Conn, mt MessageType, data any) {
	t.Helper()
	msg, err := NewMessage(mt, data)
	if err != nil {
		t.Fatalf("build %s message: %v", mt, err)
	}
	if err := ws.WriteJSON(msg); err != nil {
		t.Fatalf("send %s message: %v", mt, err)
	}
}

// readUntil reads messages until one of the wanted type arrives, discarding
// interleaved broadcasts.
func readUntil(t *testing.T, ws *websocket.Conn, want MessageType) *Message {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", want, err)
		}
		if msg.Type == want {
			return &msg
		}
	}
}

// readStateUntil reads state broadcasts until one satisfies the predicate.
func readStateUntil(t *testing.T, ws *websocket.Conn, pred func(*game.Snapshot) bool) *game.Snapshot {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for state: %v", err)
		}
		if msg.Type != MessageTypeState {
			continue
		}
		var snap game.Snapshot
		if err := json.Unmarshal(msg.Data, &snap); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		if pred(&snap) {
			return &snap
		}
	}
}

// joinRoom joins and returns the minted seat id.
func joinRoom(t *testing.T, ws *websocket.Conn, roomID, name string) string {
	t.Helper()
	sendMessage(t, ws, MessageTypeJoin, JoinData{RoomID: roomID, Name: name})
	msg := readUntil(t, ws, MessageTypeJoined)
	var data JoinedData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		t.Fatalf("decode joined: %v", err)
	}
	if data.SeatID == "" {
		t.Fatal("joined ack carries no seat id")
	}
	return data.SeatID
}

func readError(t *testing.T, ws *websocket.Conn) ErrorData {
	t.Helper()
	msg := readUntil(t, ws, MessageTypeError)
	var data ErrorData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	return data
}
