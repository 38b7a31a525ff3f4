package inspect

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// connection wraps one websocket subscriber with its outgoing queue.
type connection struct {
	ws   *websocket.Conn
	send chan []byte
	log  *zap.Logger
}

func newConnection(ws *websocket.Conn, log *zap.Logger) *connection {
	return &connection{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
		log:  log,
	}
}

// readPump discards client messages and returns when the peer goes away.
func (c *connection) readPump() {
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("read failed", zap.Error(err))
			}
			return
		}
	}
}

// writePump drains send until it is closed.
func (c *connection) writePump() {
	defer c.ws.Close()

	for message := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			c.log.Debug("write failed", zap.Error(err))
			// closing the socket ends readPump, which unregisters us and
			// closes send
			c.ws.Close()
			for range c.send {
			}
			return
		}
	}
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// offer queues message without blocking. It reports false when the client
// has fallen behind.
func (c *connection) offer(message []byte) bool {
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}
