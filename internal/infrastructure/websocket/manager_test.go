package websocket

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, m *Manager) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(r.URL.Query().Get("uid"), conn)
		if !m.Add(client) {
			return
		}
		go client.WritePump()
		go client.ReadPump(m)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, uid string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?uid=" + uid
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitConnected(t *testing.T, m *Manager, uid string, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return m.Connected(uid) == n }, time.Second, 10*time.Millisecond)
}

func TestManagerDeliversToUserAndBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)
	srv := startServer(t, m)

	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")
	waitConnected(t, m, "alice", 1)
	waitConnected(t, m, "bob", 1)

	m.SendToUser("alice", Event{Type: "notification", Data: "hello"})

	alice.SetReadDeadline(time.Now().Add(time.Second))
	var got Event
	require.NoError(t, alice.ReadJSON(&got))
	assert.Equal(t, "notification", got.Type)
	assert.Equal(t, "hello", got.Data)

	m.Broadcast(Event{Type: "notification", Data: "all"})
	for _, conn := range []*websocket.Conn{alice, bob} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		var e Event
		require.NoError(t, conn.ReadJSON(&e))
		assert.Equal(t, "all", e.Data)
	}
}

func TestManagerUnregistersClosedConnections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)
	srv := startServer(t, m)

	conn := dial(t, srv, "carol")
	waitConnected(t, m, "carol", 1)

	conn.Close()
	waitConnected(t, m, "carol", 0)
}

func TestManagerRefusesClientsAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager()
	m.Start(ctx)
	srv := startServer(t, m)

	cancel()
	select {
	case <-m.done:
	case <-time.After(time.Second):
		t.Fatal("manager did not stop")
	}

	conn := dial(t, srv, "dave")
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	var netErr net.Error
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "connection should be closed, not left hanging")
	}
	assert.Equal(t, 0, m.Connected("dave"))
}
