package websocket

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/events"
)

// Event type names sent to clients
const (
	EventPageRequested  = "page_requested"
	EventPageFailed     = "page_failed"
	EventFilterIgnored  = "filter_ignored"
	EventQueryCompleted = "query_completed"
	EventQueryFailed    = "query_failed"
)

type Handler struct {
	Upgrader websocket.Upgrader
	Log      hclog.Logger
	EventBus *events.EventBus[any]
}

type Message struct {
	EventType string      `json:"event-type"`
	Data      interface{} `json:"data"`
}

func NewHandler(log hclog.Logger, eventBus *events.EventBus[any]) *Handler {
	return &Handler{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Origins are restricted by the CORS configuration of the router
				return true
			},
		},
		Log:      log,
		EventBus: eventBus,
	}
}

// HandleWebSocket streams the query diagnostics to the client until
// either side closes the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Error("Unable to upgrade to WebSocket", "error", err)
		return
	}
	defer conn.Close()

	subscriber := h.EventBus.Subscribe()
	defer h.EventBus.Unsubscribe(subscriber)

	// done is closed once the client goes away
	done := make(chan struct{})
	go h.readPump(conn, done)

	for {
		select {
		case event, ok := <-subscriber:
			if !ok {
				return
			}

			message, known := toMessage(event)
			if !known {
				h.Log.Warn("Unknown event type", "event", event)
				continue
			}

			payload, err := json.Marshal(message)
			if err != nil {
				h.Log.Error("Error marshalling message", "error", err)
				continue
			}

			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.Log.Error("Error writing message to WebSocket", "error", err)
				return
			}
		case <-done:
			h.Log.Info("WebSocket connection closed by the client")
			return
		}
	}
}

func toMessage(event any) (Message, bool) {
	var eventType string
	switch event.(type) {
	case events.PageRequested:
		eventType = EventPageRequested
	case events.PageFailed:
		eventType = EventPageFailed
	case events.FilterIgnored:
		eventType = EventFilterIgnored
	case events.QueryCompleted:
		eventType = EventQueryCompleted
	case events.QueryFailed:
		eventType = EventQueryFailed
	default:
		return Message{}, false
	}
	return Message{EventType: eventType, Data: event}, true
}

func (h *Handler) readPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Error("Error reading message", "error", err)
			}
			break
		}
	}
}
