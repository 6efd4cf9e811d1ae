package ws

import (
	"context"
	"log/slog"
	"time"
)

// DefaultLivenessInterval matches the original server's 3-second probe loop.
const DefaultLivenessInterval = 3 * time.Second

// MessageHandler consumes inbound frames and connection teardowns. The hub
// invokes it from its single Run goroutine only.
type MessageHandler interface {
	HandleMessage(ctx context.Context, connID string, raw []byte)
	HandleDisconnect(ctx context.Context, connID string)
}

type inboundFrame struct {
	connID string
	raw    []byte
}

// Hub owns the connected client set. Registration, unregistration, inbound
// frames and liveness ticks are all drained by one goroutine, so the message
// handler never runs concurrently with itself and broadcasts for one event
// are enqueued before the next event is picked up.
type Hub struct {
	clients          map[string]*Client
	register         chan *Client
	unregister       chan *Client
	inbound          chan inboundFrame
	done             chan struct{}
	handler          MessageHandler
	livenessInterval time.Duration
	logger           *slog.Logger
}

// NewHub creates a new Hub. The message handler is attached separately
// because it needs the hub as its frame sender.
func NewHub(livenessInterval time.Duration, logger *slog.Logger) *Hub {
	if livenessInterval <= 0 {
		livenessInterval = DefaultLivenessInterval
	}
	return &Hub{
		clients:          make(map[string]*Client),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		inbound:          make(chan inboundFrame, 256),
		done:             make(chan struct{}),
		livenessInterval: livenessInterval,
		logger:           logger,
	}
}

// SetHandler attaches the message handler. Must be called before Run.
func (h *Hub) SetHandler(handler MessageHandler) {
	h.handler = handler
}

// Run drives the hub until the context is cancelled. All client-set and game
// state mutation happens on this goroutine.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.livenessInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Unblocks read pumps still trying to unregister after this
			// loop stops draining
			close(h.done)
			for _, c := range h.clients {
				h.drop(ctx, c)
			}
			return
		case c := <-h.register:
			h.clients[c.ID] = c
			h.logger.Info("connection opened", "conn_id", c.ID, "connections", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c.ID]; ok {
				h.drop(ctx, c)
			}
		case frame := <-h.inbound:
			h.handler.HandleMessage(ctx, frame.connID, frame.raw)
		case <-ticker.C:
			h.probe()
		}
	}
}

// Send delivers a frame to one connection's send buffer. Implements the
// handler's Sender. A client that cannot keep up has the frame dropped
// rather than blocking the event loop.
func (h *Hub) Send(connID string, frame []byte) {
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	select {
	case c.send <- frame:
	default:
		h.logger.Warn("send buffer full, dropping frame", "conn_id", c.ID)
	}
}

// probe enforces the two-state liveness protocol: a connection that never
// answered the previous probe is closed; everyone else is marked
// unresponsive and pinged. Any traffic before the next tick restores them.
func (h *Hub) probe() {
	for _, c := range h.clients {
		if !c.alive.Swap(false) {
			h.logger.Info("liveness probe missed, closing connection", "conn_id", c.ID)
			// The read pump notices the close and runs unregistration
			c.conn.Close()
			continue
		}
		c.ping()
	}
}

// drop removes a client and runs the disconnect cleanup path.
func (h *Hub) drop(ctx context.Context, c *Client) {
	delete(h.clients, c.ID)
	close(c.send)
	h.handler.HandleDisconnect(ctx, c.ID)
	h.logger.Info("connection closed", "conn_id", c.ID, "connections", len(h.clients))
}
