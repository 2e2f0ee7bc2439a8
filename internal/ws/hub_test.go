package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, userID uuid.UUID) *Client {
	return &Client{hub: hub, userID: userID, send: make(chan []byte, 4)}
}

func TestHub_DeliversOnlyToAddressee(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	alice, bob := uuid.New(), uuid.New()
	ca := newTestClient(hub, alice)
	cb := newTestClient(hub, bob)
	require.True(t, hub.Register(ca))
	require.True(t, hub.Register(cb))
	assert.Eventually(t, func() bool { return hub.Online(alice) == 1 && hub.Online(bob) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, hub.BroadcastToUser(alice, "notification", map[string]string{"title": "hi"}))

	select {
	case raw := <-ca.send:
		var msg struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "notification", msg.Type)
		assert.Equal(t, "hi", msg.Data["title"])
	case <-time.After(time.Second):
		t.Fatal("сообщение не доставлено")
	}

	select {
	case <-cb.send:
		t.Fatal("чужое сообщение доставлено")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	userID := uuid.New()
	c := newTestClient(hub, userID)
	require.True(t, hub.Register(c))
	hub.Unregister(c)

	assert.Eventually(t, func() bool { return hub.Online(userID) == 0 }, time.Second, 10*time.Millisecond)
	_, ok := <-c.send
	assert.False(t, ok)
}

func TestHub_StoppedHubRejectsClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	assert.False(t, hub.Register(newTestClient(hub, uuid.New())))
	hub.Unregister(newTestClient(hub, uuid.New()))
}
