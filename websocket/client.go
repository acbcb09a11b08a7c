package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

// Client is one authenticated websocket connection. The joined-room set is
// owned by the hub and mutated only under the hub's lock; the send queue is
// owned by the client and guarded by its own mutex so a late broadcaster
// can never race the queue's close.
type Client struct {
	UserID uuid.UUID

	conn  *websocket.Conn
	rooms map[uuid.UUID]struct{}

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewClient(userID uuid.UUID, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		rooms:  make(map[uuid.UUID]struct{}),
	}
}

// enqueue hands a frame to the write pump without blocking. Delivery to an
// already-closed client is a no-op. A full buffer reports false so the hub
// can drop the client; it is not reported for closed clients, which are
// already gone.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close releases the outbound queue exactly once. The closed flag shares
// c.mu with enqueue, so no frame can land on the closed channel.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// WritePump drains the send queue onto the wire and keeps the connection
// alive with pings. Runs as the connection's single writer goroutine; a
// closed queue flushes a close frame and tears the connection down.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
