package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/coder/websocket"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
)

// Client is one viewer connection subscribed to a single election's live
// tally feed.
type Client struct {
	Hub        *Hub
	Conn       *websocket.Conn
	Send       chan []byte
	ID         string
	ElectionID string
}

// Hub fans tally events out to every client subscribed to the event's
// election. Delivery is best-effort and at-most-once: there is no replay, a
// reconnecting client re-fetches current stats over HTTP to resynchronize.
// A single goroutine owns the subscription maps, which also keeps events for
// one election in publish order.
type Hub struct {
	clients    map[string]map[*Client]bool
	broadcast  chan entity.TallyEvent
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan entity.TallyEvent, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Subscribe joins a client to its election's fan-out group. Subscribing the
// same client twice is a no-op.
func (h *Hub) Subscribe(c *Client) {
	h.register <- c
}

func (h *Hub) Unsubscribe(c *Client) {
	h.unregister <- c
}

// Publish hands a committed tally update to the fan-out loop. It never
// blocks the caller: when the hub is backed up the event is dropped, since
// stats stay correct in the store regardless of who was listening.
func (h *Hub) Publish(event entity.TallyEvent) {
	select {
	case h.broadcast <- event:
	default:
		slog.Warn("dropping tally event, broadcast backlog full", "election_id", event.ElectionID)
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for _, conns := range h.clients {
				for c := range conns {
					close(c.Send)
				}
			}
			return

		case client := <-h.register:
			conns := h.clients[client.ElectionID]
			if conns == nil {
				conns = make(map[*Client]bool)
				h.clients[client.ElectionID] = conns
			}
			conns[client] = true

		case client := <-h.unregister:
			conns := h.clients[client.ElectionID]
			if conns != nil {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.Send)
					if len(conns) == 0 {
						delete(h.clients, client.ElectionID)
					}
				}
			}

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				slog.Error("failed to marshal tally event", "error", err)
				continue
			}
			conns := h.clients[event.ElectionID]
			for c := range conns {
				select {
				case c.Send <- data:
				default:
					// Slow consumer: drop it rather than stall the loop.
					close(c.Send)
					delete(conns, c)
				}
			}
		}
	}
}

// WritePump sends messages from the hub to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.Conn.Close(websocket.StatusNormalClosure, "")
	}()

	for m := range c.Send {
		if err := c.Conn.Write(context.Background(), websocket.MessageText, m); err != nil {
			slog.Debug("failed to write to subscriber", "client_id", c.ID, "error", err)
			break
		}
	}
}

// ReadPump drains the WebSocket connection and unsubscribes the client when
// it goes away. Inbound messages are ignored; the feed is one-way.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unsubscribe(c)
		c.Conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		if _, _, err := c.Conn.Read(context.Background()); err != nil {
			break
		}
	}
}
