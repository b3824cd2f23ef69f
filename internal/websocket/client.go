package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // 1 MB
)

type Client struct {
	ID       string
	UserID   string
	Username string
	RoomCode string

	Conn *websocket.Conn
	Send chan []byte

	hub    *Hub
	router *Router

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	lastSeenMu sync.RWMutex
	lastSeen   time.Time
}

func NewClient(id, userID, username, roomCode string, conn *websocket.Conn, hub *Hub, router *Router) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:       id,
		UserID:   userID,
		Username: username,
		RoomCode: roomCode,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		hub:      hub,
		router:   router,
		ctx:      ctx,
		cancel:   cancel,
		lastSeen: time.Now(),
	}
}

// Start launches the read and write pumps. The handler calls it once the
// client is registered; clients without a live socket never start pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) IsActive() bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
		return true
	}
}

func (c *Client) LastSeen() time.Time {
	c.lastSeenMu.RLock()
	defer c.lastSeenMu.RUnlock()
	return c.lastSeen
}

func (c *Client) touch() {
	c.lastSeenMu.Lock()
	c.lastSeen = time.Now()
	c.lastSeenMu.Unlock()
}

// Close is safe to call from any goroutine, any number of times. It only
// tears down the socket; room bookkeeping happens in the readPump defer so
// unregistration runs exactly once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		if c.Conn != nil {
			_ = c.Conn.Close()
		}
	})
}

// writePump drains c.Send onto the socket and keeps the connection alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-c.ctx.Done():
			return

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads inbound frames and dispatches them to the router in this
// goroutine, so a client's actions are applied in the order it sent them.
// Its defer is the single cleanup funnel: whatever killed the connection,
// unregistration happens here and only here.
func (c *Client) readPump() {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("clientID", c.ID).Msg("ws: read pump panicked")
		}
		c.Close()
		c.hub.Unregister(c.RoomCode, c)
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.touch()
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("clientID", c.ID).Str("roomCode", c.RoomCode).Msg("ws: unexpected close")
			}
			return
		}

		c.touch()
		c.router.Dispatch(c.ctx, c, data)
	}
}
