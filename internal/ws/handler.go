package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/servetrainer/backend/internal/config"
	"github.com/servetrainer/backend/internal/serve"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin enforced by WebSocketCORSCheck middleware
	},
}

// Client represents a connected WebSocket client
type Client struct {
	conn         *websocket.Conn
	sessionToken string
	send         chan []byte
}

// Hub maintains the set of active clients grouped into coaching sessions.
// A session is a shared room: any client may push parameter changes, and
// every client in the room receives the recomputed solution.
type Hub struct {
	sessions map[string]map[*Client]bool // sessionToken -> clients
	mu       sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]map[*Client]bool),
	}
}

// SessionHub is the process-wide hub for live sessions.
var SessionHub = NewHub()

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, exists := h.sessions[c.sessionToken]
	if !exists {
		room = make(map[*Client]bool)
		h.sessions[c.sessionToken] = room
	}
	room[c] = true
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, exists := h.sessions[c.sessionToken]; exists {
		delete(room, c)
		if len(room) == 0 {
			delete(h.sessions, c.sessionToken)
		}
	}
}

// BroadcastToSession sends a raw payload to every client in a session
func (h *Hub) BroadcastToSession(sessionToken string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.sessions[sessionToken] {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] Send buffer full in session %s, dropping message", sessionToken)
		}
	}
}

// WSMessage is the envelope for messages in both directions.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// solutionPayload is broadcast to a session after each parameter change.
type solutionPayload struct {
	Type     string         `json:"type"`
	Request  serve.Request  `json:"request"`
	Solution serve.Solution `json:"solution"`
	Samples  []serve.Sample `json:"samples"`
}

// HandleSessionWebSocket upgrades the connection and joins the client to a
// coaching session room identified by the path token.
func HandleSessionWebSocket(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session token required"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade failed for session %s: %v", token, err)
			return
		}

		client := &Client{
			conn:         conn,
			sessionToken: token,
			send:         make(chan []byte, 16),
		}
		SessionHub.add(client)
		log.Printf("[WS] Client joined session %s", token)

		go client.writePump()
		client.readPump(cfg)
	}
}

// readPump handles incoming parameter updates until the connection drops.
func (c *Client) readPump(cfg *config.Config) {
	defer func() {
		SessionHub.remove(c)
		c.conn.Close()
		close(c.send)
		log.Printf("[WS] Client left session %s", c.sessionToken)
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Read error in session %s: %v", c.sessionToken, err)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("invalid message")
			continue
		}

		switch msg.Type {
		case "params":
			var req serve.Request
			if err := json.Unmarshal(msg.Data, &req); err != nil || !req.Target.Valid() {
				c.sendError("invalid serve parameters")
				continue
			}

			sol := serve.Solve(req)
			v, h0 := serve.NormalizedLaunch(req)
			payload := solutionPayload{
				Type:     "solution",
				Request:  req,
				Solution: sol,
				Samples:  serve.SampleTrajectory(v, sol.ElevationRad, h0, sol.LandingDistanceM, 160),
			}
			data, err := json.Marshal(payload)
			if err != nil {
				log.Printf("[WS] Failed to marshal solution: %v", err)
				continue
			}

			// Fan out via Redis so every instance's room sees the update;
			// fall back to the local room when Redis is unavailable.
			if !PublishSessionEvent(c.sessionToken, data) {
				SessionHub.BroadcastToSession(c.sessionToken, data)
			}

		case "ping":
			c.send <- []byte(`{"type":"pong"}`)

		default:
			c.sendError("unknown message type")
		}
	}
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error in session %s: %v", c.sessionToken, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
	select {
	case c.send <- data:
	default:
	}
}
