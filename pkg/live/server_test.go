//go:build !wasm

package live

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/recera/panzoom/pkg/viewport"
)

func dial(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + PathPrefix + id
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readHello(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if mt != websocket.BinaryMessage || data[0] != byte(FrameControl) {
		t.Fatalf("unexpected first message type=%d data=%x", mt, data)
	}
	dec := NewDecoder(bytes.NewReader(data[1:]))
	if kind, err := dec.ReadString(); err != nil || kind != "HELLO" {
		t.Fatalf("hello kind = %q, %v", kind, err)
	}
	id, err := dec.ReadString()
	if err != nil {
		t.Fatalf("hello id: %v", err)
	}
	return id
}

func TestServer_RoundTrip(t *testing.T) {
	live := NewServer(viewport.DefaultOptions())
	srv := httptest.NewServer(http.HandlerFunc(live.HandleWebSocket))
	defer srv.Close()
	defer live.Close()

	conn := dial(t, srv, "abc")
	defer conn.Close()

	if id := readHello(t, conn); id != "abc" {
		t.Errorf("session id = %q, want abc", id)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, EncodeEvent(Event{Type: EventOpen})); err != nil {
		t.Fatalf("write: %v", err)
	}
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	if mt != websocket.TextMessage {
		t.Fatalf("state message type = %d", mt)
	}
	var msg StateMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if msg.Type != "state" || !msg.Open || msg.Zoom != "200%" {
		t.Errorf("state = %+v", msg)
	}

	if _, ok := live.GetSession("abc"); !ok {
		t.Error("session not registered")
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for live.SessionCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session not removed after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServer_GeneratesSessionID(t *testing.T) {
	live := NewServer(viewport.DefaultOptions())
	srv := httptest.NewServer(http.HandlerFunc(live.HandleWebSocket))
	defer srv.Close()
	defer live.Close()

	conn := dial(t, srv, "")
	defer conn.Close()

	id := readHello(t, conn)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated id %q is not a UUID: %v", id, err)
	}
}

func TestServer_RejectsOtherPaths(t *testing.T) {
	live := NewServer(viewport.DefaultOptions())
	rec := httptest.NewRecorder()
	live.HandleWebSocket(rec, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServer_AllowedOrigins(t *testing.T) {
	live := NewServer(viewport.DefaultOptions())
	live.SetAllowedOrigins([]string{"http://localhost:7420/"})
	srv := httptest.NewServer(http.HandlerFunc(live.HandleWebSocket))
	defer srv.Close()
	defer live.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + PathPrefix + "origin"
	dialFrom := func(origin string) (*websocket.Conn, *http.Response, error) {
		h := http.Header{}
		if origin != "" {
			h.Set("Origin", origin)
		}
		return websocket.DefaultDialer.Dial(url, h)
	}

	if _, resp, err := dialFrom("http://evil.example"); err == nil {
		t.Fatal("foreign origin was accepted")
	} else if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("foreign origin: resp=%v err=%v, want 403", resp, err)
	}

	for _, origin := range []string{"http://localhost:7420", ""} {
		conn, _, err := dialFrom(origin)
		if err != nil {
			t.Fatalf("origin %q rejected: %v", origin, err)
		}
		conn.Close()
	}

	// Clearing the list accepts anything again.
	live.SetAllowedOrigins(nil)
	conn, _, err := dialFrom("http://evil.example")
	if err != nil {
		t.Fatalf("open server rejected origin: %v", err)
	}
	conn.Close()
}
