package handler

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ibasrj23/PilihJagoanMu/internal/realtime"
)

type WSHandler struct {
	hub *realtime.Hub
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Subscribe handles GET /ws?election_id=... by upgrading the connection and
// joining it to the election's live tally feed. A client that reconnects
// gets no replay; it should re-fetch current stats over HTTP first.
func (h *WSHandler) Subscribe(c *gin.Context) {
	electionID := c.Query("election_id")
	if electionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "election_id query param is required"})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		// CORS policy is enforced at the router level.
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "websocket upgrade failed"})
		return
	}

	client := &realtime.Client{
		Hub:        h.hub,
		Conn:       conn,
		Send:       make(chan []byte, 16),
		ID:         uuid.New().String(),
		ElectionID: electionID,
	}

	h.hub.Subscribe(client)

	go client.WritePump()
	client.ReadPump()
}
