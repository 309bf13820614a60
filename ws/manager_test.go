package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gym_backend/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startManager(t *testing.T) *WebSocketManager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	m := NewWebSocketManager()
	go m.Run(ctx)
	return m
}

func TestManager_FiltersByGym(t *testing.T) {
	m := startManager(t)

	gym1 := &Client{ID: "a", GymID: 1, Send: make(chan events.Event, 4), Manager: m}
	gym2 := &Client{ID: "b", GymID: 2, Send: make(chan events.Event, 4), Manager: m}
	all := &Client{ID: "c", Send: make(chan events.Event, 4), Manager: m}
	m.Register(gym1)
	m.Register(gym2)
	m.Register(all)

	ev := events.Event{Entity: events.EntityMember, Action: events.ActionCreated, ID: 5, GymID: 1}
	m.Publish(ev)

	select {
	case got := <-gym1.Send:
		assert.Equal(t, ev, got)
	case <-time.After(time.Second):
		t.Fatal("gym 1 client did not receive event")
	}
	select {
	case got := <-all.Send:
		assert.Equal(t, ev, got)
	case <-time.After(time.Second):
		t.Fatal("unscoped client did not receive event")
	}
	select {
	case <-gym2.Send:
		t.Fatal("gym 2 client received foreign event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManager_UnregisterClosesSend(t *testing.T) {
	m := startManager(t)

	c := &Client{ID: "a", Send: make(chan events.Event, 1), Manager: m}
	m.Register(c)
	m.Unregister(c)

	_, ok := <-c.Send
	assert.False(t, ok)
	assert.Equal(t, 0, m.GetClientCount())
}

func TestServeWS_DeliversEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := startManager(t)

	r := gin.New()
	r.GET("/ws", NewWebSocketHandler(m, nil).ServeWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?gymId=3"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return m.GetClientCount() == 1 }, time.Second, 10*time.Millisecond)

	m.Publish(events.Event{Entity: events.EntityEquipment, Action: events.ActionDeleted, ID: 9, GymID: 3})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got events.Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, events.EntityEquipment, got.Entity)
	assert.Equal(t, events.ActionDeleted, got.Action)
	assert.Equal(t, uint(9), got.ID)
}

func TestServeWS_BadGymID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", NewWebSocketHandler(NewWebSocketManager(), nil).ServeWS)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ws?gymId=abc", nil))
	assert.Equal(t, 400, w.Code)
}
