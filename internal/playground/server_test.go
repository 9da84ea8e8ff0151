package playground

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-go/popup/internal/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Popup.TransitionDurationMS = 30
	return cfg
}

func dialPlayground(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitFor reads messages until pred matches or the deadline passes.
func waitFor(t *testing.T, conn *websocket.Conn, pred func(Message) bool) Message {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(deadline)
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if pred(msg) {
			return msg
		}
	}
	t.Fatal("expected message never arrived")
	return Message{}
}

func TestOpenCommandEmitsEventAndState(t *testing.T) {
	srv := New(testConfig(), slog.Default())
	conn := dialPlayground(t, srv)

	if err := conn.WriteJSON(Command{
		Op:       "anchor",
		Anchor:   &RectPayload{X: 100, Y: 100, W: 80, H: 20},
		Viewport: &RectPayload{W: 800, H: 600},
	}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Command{Op: "open"}); err != nil {
		t.Fatal(err)
	}

	waitFor(t, conn, func(m Message) bool {
		return m.Type == "event" && m.Name == "open"
	})
	state := waitFor(t, conn, func(m Message) bool {
		return m.Type == "state" && m.IsOpen
	})

	if state.Direction == "" || state.Alignment == "" {
		t.Errorf("open state missing placement tokens: %+v", state)
	}
}

func TestCloseCommandEmitsDelayedCloseEvent(t *testing.T) {
	srv := New(testConfig(), slog.Default())
	conn := dialPlayground(t, srv)

	if err := conn.WriteJSON(Command{Op: "open"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, conn, func(m Message) bool {
		return m.Type == "event" && m.Name == "open"
	})

	start := time.Now()
	if err := conn.WriteJSON(Command{Op: "close"}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, conn, func(m Message) bool {
		return m.Type == "event" && m.Name == "close"
	})

	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("close event after %v, want at least the transition duration", elapsed)
	}
}

func TestAnimationFramesReachClient(t *testing.T) {
	srv := New(testConfig(), slog.Default())
	conn := dialPlayground(t, srv)

	if err := conn.WriteJSON(Command{Op: "open"}); err != nil {
		t.Fatal(err)
	}

	frame := waitFor(t, conn, func(m Message) bool {
		return m.Type == "frame" && m.Visible && m.Opacity == 1
	})
	if frame.Scale == 0 {
		t.Errorf("settled frame has zero scale: %+v", frame)
	}
}

func TestConfigureChangesPlacement(t *testing.T) {
	srv := New(testConfig(), slog.Default())
	conn := dialPlayground(t, srv)

	cmds := []Command{
		{Op: "anchor", Anchor: &RectPayload{X: 300, Y: 300, W: 40, H: 20}, Viewport: &RectPayload{W: 800, H: 600}},
		{Op: "configure", Config: &ConfigPayload{Placement: "bottom center", Transition: "fade", TransitionDurationMS: 30}},
		{Op: "open"},
	}
	for _, cmd := range cmds {
		if err := conn.WriteJSON(cmd); err != nil {
			t.Fatal(err)
		}
	}

	state := waitFor(t, conn, func(m Message) bool {
		return m.Type == "state" && m.IsOpen && m.Direction == "bottom"
	})
	if state.Alignment != "center" {
		t.Errorf("alignment = %q, want center", state.Alignment)
	}
}

func TestHealthzAndIndex(t *testing.T) {
	srv := New(testConfig(), slog.Default())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("index content type = %q", ct)
	}
}

func TestSessionRegistryTracksConnections(t *testing.T) {
	srv := New(testConfig(), slog.Default())
	conn := dialPlayground(t, srv)

	waitForCount := func(want int) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if srv.SessionCount() == want {
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
		t.Fatalf("session count never reached %d", want)
	}

	waitForCount(1)
	conn.Close()
	waitForCount(0)
}
