package realtime

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// Event is what dashboard clients receive.
type Event struct {
	Topic   string    `json:"topic"`
	Payload any       `json:"payload,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

type command struct {
	Type   string   `json:"type"`
	Topics []string `json:"topics"`
}

type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]bool
}

// Hub fans domain events out to connected websocket clients. It satisfies the
// Publisher interface of every domain package.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	upgrader    websocket.Upgrader
	log         *zap.Logger
}

func NewHub(allowedOrigins []string, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Hub{
		connections: make(map[*connection]struct{}),
		log:         log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(origins) == 0 || origins[origin]
			},
		},
	}
}

// Publish delivers payload to every client subscribed to topic. Slow clients
// drop the event rather than block the caller.
func (h *Hub) Publish(topic string, payload any) {
	data, err := json.Marshal(Event{Topic: topic, Payload: payload, SentAt: time.Now().UTC()})
	if err != nil {
		h.log.Error("marshal realtime event", zap.String("topic", topic), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if !c.topics[topic] {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Warn("realtime client too slow, event dropped", zap.Int64("user_id", c.userID), zap.String("topic", topic))
		}
	}
}

// Subscribers counts clients listening on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for c := range h.connections {
		if c.topics[topic] {
			n++
		}
	}
	return n
}

// Handle upgrades the request. It must run behind JWTAuth. Initial topics
// come from ?topics=a,b and clients may send
// {"type":"subscribe","topics":[...]} or "unsubscribe" later.
func (h *Hub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &connection{
		userID: c.GetInt64("user_id"),
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		topics: make(map[string]bool),
	}
	for _, t := range strings.Split(c.Query("topics"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			client.topics[t] = true
		}
	}

	h.register(client)
	go h.writePump(client)
	h.readPump(client)
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			continue
		}

		h.mu.Lock()
		for _, t := range cmd.Topics {
			switch cmd.Type {
			case "subscribe":
				c.topics[t] = true
			case "unsubscribe":
				delete(c.topics, t)
			}
		}
		h.mu.Unlock()
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
