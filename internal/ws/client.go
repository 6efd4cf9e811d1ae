package ws

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
	sendBufferSize = 64
)

// Client is one connected player socket. The hub owns the client set; the
// read and write pumps own the connection I/O.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	// alive is flipped true by any inbound traffic and false by each
	// liveness probe. Read traffic and the hub tick race on it, hence
	// the atomic.
	alive  atomic.Bool
	logger *slog.Logger
}

func newClient(hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	id := uuid.NewString()
	c := &Client{
		ID:     id,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger.With(slog.String("conn_id", id)),
	}
	c.alive.Store(true)
	return c
}

// readPump relays inbound frames to the hub until the connection dies, then
// triggers unregistration. Pongs and regular frames both refresh the alive
// flag.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.alive.Store(true)
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "error", err)
			}
			return
		}
		c.alive.Store(true)
		c.hub.inbound <- inboundFrame{connID: c.ID, raw: raw}
	}
}

// writePump drains the send buffer onto the socket. Closing the send
// channel stops the pump and closes the connection.
func (c *Client) writePump() {
	defer c.conn.Close()

	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			c.logger.Warn("write failed", "error", err)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
}

// ping sends a liveness probe. WriteControl is documented safe to call
// concurrently with the write pump.
func (c *Client) ping() {
	if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
		c.logger.Warn("ping failed", "error", err)
	}
}
