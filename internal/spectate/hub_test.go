package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snap struct {
	Score int `json:"score"`
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	ts := httptest.NewServer(NewServer(hub))
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return hub, ts
}

func waitForSession(t *testing.T, hub *Hub, id string) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Has(id) }, time.Second, 5*time.Millisecond)
}

func dial(t *testing.T, ts *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/" + id
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHealthz(t *testing.T) {
	_, ts := startHub(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionsListsPublished(t *testing.T) {
	hub, ts := startHub(t)
	hub.Publish("abc", snap{Score: 100})
	waitForSession(t, hub, "abc")

	resp, err := http.Get(ts.URL + "/sessions")
	require.NoError(t, err)
	defer resp.Body.Close()

	var sessions []SessionInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, "abc", sessions[0].ID)
	assert.Equal(t, 0, sessions[0].Spectators)
}

func TestWatchUnknownSession(t *testing.T) {
	_, ts := startHub(t)

	resp, err := http.Get(ts.URL + "/ws/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSpectatorReceivesLatestThenUpdates(t *testing.T) {
	hub, ts := startHub(t)
	hub.Publish("abc", snap{Score: 100})
	hub.Publish("abc", snap{Score: 200})
	waitForSession(t, hub, "abc")

	conn := dial(t, ts, "abc")

	first := readMessage(t, conn)
	assert.Equal(t, EventSnapshot, first.Event)
	assert.Equal(t, "abc", first.SessionID)
	var got snap
	require.NoError(t, json.Unmarshal(first.Data, &got))
	if got.Score == 100 {
		// The connection raced the second publish; the next frame is the latest.
		require.NoError(t, json.Unmarshal(readMessage(t, conn).Data, &got))
	}
	assert.Equal(t, 200, got.Score)

	require.Eventually(t, func() bool {
		s := hub.Sessions()
		return len(s) == 1 && s[0].Spectators == 1
	}, time.Second, 5*time.Millisecond)

	hub.Publish("abc", snap{Score: 300})
	next := readMessage(t, conn)
	require.NoError(t, json.Unmarshal(next.Data, &got))
	assert.Equal(t, 300, got.Score)
}

func TestCloseEndsFeed(t *testing.T) {
	hub, ts := startHub(t)
	hub.Publish("abc", snap{Score: 1})
	waitForSession(t, hub, "abc")

	conn := dial(t, ts, "abc")
	readMessage(t, conn)
	require.Eventually(t, func() bool {
		s := hub.Sessions()
		return len(s) == 1 && s[0].Spectators == 1
	}, time.Second, 5*time.Millisecond)

	hub.Close("abc")
	msg := readMessage(t, conn)
	assert.Equal(t, EventClosed, msg.Event)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "expected normal close, got %v", err)
	assert.False(t, hub.Has("abc"))
}

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(log.New(io.Discard))

	done := make(chan struct{})
	go func() {
		for i := range broadcastBuffer + 10 {
			hub.Publish("abc", snap{Score: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked without a running hub")
	}
}
