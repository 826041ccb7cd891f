package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hexmatch-go/internal/model"
	"github.com/mcoot/hexmatch-go/internal/testutil"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		hub:         hub,
		send:        make(chan []byte, sendBufferSize),
		remoteAddr:  "test",
		connectedAt: time.Now(),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub("game-1", testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		require.True(t, ok, "client channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return nil
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(hub)
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte("hello"))

	assert.Equal(t, "hello", string(receive(t, client)))
}

func TestHub_BroadcastEventsSendsOneMessagePerEvent(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(hub)
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvents([]model.Event{
		{Type: model.EventPlacedWithoutMerge, GameID: "game-1"},
		{Type: model.EventTurnComplete, GameID: "game-1"},
	})

	for _, want := range []model.EventType{model.EventPlacedWithoutMerge, model.EventTurnComplete} {
		var ev model.Event
		require.NoError(t, json.Unmarshal(receive(t, client), &ev))
		assert.Equal(t, want, ev.Type)
		assert.Equal(t, model.GameID("game-1"), ev.GameID)
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(hub)
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Unregister(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, ok := <-client.send
	assert.False(t, ok, "send channel should be closed")
}

func TestHub_CloseDeliversQueuedMessagesThenDisconnects(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(hub)
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast([]byte("last"))
	hub.Close()

	var got []string
	for msg := range client.send {
		got = append(got, string(msg))
	}
	assert.Equal(t, []string{"last"}, got)
}

func TestHub_RegisterAfterCloseFails(t *testing.T) {
	hub := startHub(t)
	hub.Close()

	assert.False(t, hub.Register(newTestClient(hub)))
	hub.Unregister(newTestClient(hub))
}

func TestHub_CloseIsIdempotent(t *testing.T) {
	hub := startHub(t)
	hub.Close()
	assert.NotPanics(t, hub.Close)
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	t.Cleanup(manager.Close)

	hub1 := manager.GetOrCreateHub("game-1")
	hub2 := manager.GetOrCreateHub("game-1")
	hub3 := manager.GetOrCreateHub("game-2")

	assert.Same(t, hub1, hub2)
	assert.NotSame(t, hub1, hub3)
	assert.Same(t, hub1, manager.GetHub("game-1"))
	assert.Nil(t, manager.GetHub("game-3"))
}

func TestHubManager_PublishWithoutWatchersIsNoop(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.Publish("nobody", []model.Event{{Type: model.EventTurnComplete}})

	assert.Nil(t, manager.GetHub("nobody"))
}

func TestHubManager_RemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	hub := manager.GetOrCreateHub("game-1")

	client := newTestClient(hub)
	require.True(t, hub.Register(client))

	manager.RemoveHub("game-1")

	assert.Nil(t, manager.GetHub("game-1"))
	_, ok := <-client.send
	assert.False(t, ok, "removing the hub should disconnect its clients")
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	t.Cleanup(manager.Close)

	manager.GetOrCreateHub("empty")
	watched := manager.GetOrCreateHub("watched")
	require.True(t, watched.Register(newTestClient(watched)))
	require.Eventually(t, func() bool { return watched.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	manager.CleanupEmptyHubs()

	assert.Nil(t, manager.GetHub("empty"))
	assert.NotNil(t, manager.GetHub("watched"))
}

func TestHubManager_PublishGameOverDeliversThenRemovesHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	t.Cleanup(manager.Close)

	hub := manager.GetOrCreateHub("game-1")
	client := newTestClient(hub)
	require.True(t, hub.Register(client))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	manager.Publish("game-1", []model.Event{
		{Type: model.EventTurnComplete, GameID: "game-1"},
		{Type: model.EventGameOver, GameID: "game-1"},
	})

	assert.Nil(t, manager.GetHub("game-1"))

	var got []model.Event
	for msg := range client.send {
		var ev model.Event
		require.NoError(t, json.Unmarshal(msg, &ev))
		got = append(got, ev)
	}
	require.Len(t, got, 2)
	assert.Equal(t, model.EventGameOver, got[1].Type)
}

func TestHubManager_PublishAbandonRemovesHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	t.Cleanup(manager.Close)

	manager.GetOrCreateHub("game-1")

	manager.Publish("game-1", []model.Event{{Type: model.EventGameAbandoned, GameID: "game-1"}})

	assert.Nil(t, manager.GetHub("game-1"))
}

func TestHubManager_PublishKeepsHubWhileGameRuns(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	t.Cleanup(manager.Close)

	hub := manager.GetOrCreateHub("game-1")

	manager.Publish("game-1", []model.Event{{Type: model.EventTurnComplete, GameID: "game-1"}})

	assert.Same(t, hub, manager.GetHub("game-1"))
}

func TestHubManager_RunCleanupDropsEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	t.Cleanup(manager.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.RunCleanup(ctx, 5*time.Millisecond)
		close(done)
	}()

	manager.GetOrCreateHub("empty")

	require.Eventually(t, func() bool { return manager.GetHub("empty") == nil }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
