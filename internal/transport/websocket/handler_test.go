package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, bus *events.EventBus[any]) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(NewHandler(hclog.NewNullLogger(), bus).HandleWebSocket))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return bus.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg map[string]any
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg
}

func TestHandler_StreamsQueryEvents(t *testing.T) {
	bus := events.NewEventBus[any]()
	conn := dial(t, bus)

	bus.Publish("not an event")
	bus.Publish(events.FilterIgnored{QueryID: "q1", Raw: "UnknownShape", Dropped: []string{"unknownshape"}})
	bus.Publish(events.QueryCompleted{QueryID: "q1", Page: 1, Sort: "id:asc", Count: 10})

	msg := readMessage(t, conn)
	assert.Equal(t, EventFilterIgnored, msg["event-type"])
	data := msg["data"].(map[string]any)
	assert.Equal(t, "UnknownShape", data["raw"])

	msg = readMessage(t, conn)
	assert.Equal(t, EventQueryCompleted, msg["event-type"])
	data = msg["data"].(map[string]any)
	assert.Equal(t, "q1", data["query_id"])
	assert.EqualValues(t, 10, data["count"])
}

func TestHandler_UnsubscribesOnClose(t *testing.T) {
	bus := events.NewEventBus[any]()
	conn := dial(t, bus)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	assert.Eventually(t, func() bool { return bus.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}

func TestToMessage(t *testing.T) {
	tests := []struct {
		event any
		want  string
	}{
		{events.PageRequested{Page: 1, Attempt: 1}, EventPageRequested},
		{events.PageFailed{Page: 1, Attempt: 2}, EventPageFailed},
		{events.FilterIgnored{Raw: "x"}, EventFilterIgnored},
		{events.QueryCompleted{}, EventQueryCompleted},
		{events.QueryFailed{}, EventQueryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			msg, ok := toMessage(tt.event)
			require.True(t, ok)
			assert.Equal(t, tt.want, msg.EventType)
			assert.Equal(t, tt.event, msg.Data)
		})
	}

	_, ok := toMessage(42)
	assert.False(t, ok)
}
