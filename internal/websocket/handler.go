package websocket

import (
	"net/http"
	"sync"
	"time"

	room_service "github.com/Javier1520/share-board/internal/use-case/room-case"
	ticket_service "github.com/Javier1520/share-board/internal/use-case/ticket-case"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Application close codes. Clients branch on these, so they are part of the
// wire contract and must stay stable.
const (
	CloseTicketInvalid   = 4001
	CloseInternalError   = 4002
	CloseUnauthenticated = 4003
	CloseRoomNotFound    = 4004
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: limit your cors, don't get true so easy in production
	CheckOrigin: func(r *http.Request) bool { return true },
}

type RateLimitConfig struct {
	Enabled          bool
	ConnectionsPerIP int
	WindowSize       time.Duration
}

type RateLimiter struct {
	mu          sync.RWMutex
	connections map[string]int
	lastSeen    time.Time
}

type WebSocketHandler struct {
	Hub    *Hub
	Rooms  room_service.RoomServiceContract
	Router *Router

	authenticator  AuthenticatorFunc
	MaxConnections int
	RateLimit      RateLimitConfig

	rateLimiters  map[string]*RateLimiter
	rateLimiterMu sync.RWMutex
}

func NewWebSocketHandler(hub *Hub, rooms room_service.RoomServiceContract, router *Router, authenticator AuthenticatorFunc) *WebSocketHandler {
	return &WebSocketHandler{
		Hub:            hub,
		Rooms:          rooms,
		Router:         router,
		authenticator:  authenticator,
		MaxConnections: 10000,
		RateLimit: RateLimitConfig{
			Enabled:          true,
			ConnectionsPerIP: 32,
			WindowSize:       time.Minute,
		},
		rateLimiters: make(map[string]*RateLimiter),
	}
}

// HandleConnection upgrades the request and binds the session to a room.
// Ticket redemption happens after the upgrade so a failure can be reported
// with an application close code instead of a bare HTTP status.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	roomCode := h.extractRoomCode(r)
	if roomCode == "" {
		http.Error(w, "room code is required", http.StatusBadRequest)
		return
	}

	clientIP := h.getClientIP(r)
	if !h.checkRateLimit(clientIP) {
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}

	stats := h.Hub.GetHubStats()
	if stats.TotalClients >= h.MaxConnections {
		http.Error(w, "server at capacity", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}

	ticket, authErr := h.authenticator(r)
	if authErr != nil {
		log.Warn().Str("roomCode", roomCode).Str("kind", authErrKindString(authErr.Kind)).Msg("ws: ticket rejected")
		h.closeWith(conn, closeCodeFor(authErr), authErr.Message)
		return
	}

	if _, appErr := h.Rooms.CanAttach(r.Context(), roomCode, ticket.UserID); appErr != nil {
		code := CloseRoomNotFound
		if appErr.Code >= http.StatusInternalServerError {
			code = CloseInternalError
		}
		log.Warn().Str("roomCode", roomCode).Str("userID", ticket.UserID).Int("status", appErr.Code).Msg("ws: room attach refused")
		h.closeWith(conn, code, appErr.Message)
		return
	}

	client := NewClient(uuid.NewString(), ticket.UserID, ticket.Username, roomCode, conn, h.Hub, h.Router)

	h.updateConnectionCount(clientIP, 1)
	h.Hub.Register(roomCode, client)
	client.Start()

	go func() {
		<-client.ctx.Done()
		h.updateConnectionCount(clientIP, -1)
	}()
}

// closeWith sends an application close frame, then drops the socket. The
// handshake succeeded, so the only clean way to signal failure is a close
// code the client can branch on.
func (h *WebSocketHandler) closeWith(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, msg)
	_ = conn.Close()
}

func closeCodeFor(err *ticket_service.AuthError) int {
	switch err.Kind {
	case ticket_service.AuthMissing:
		return CloseUnauthenticated
	case ticket_service.AuthNotFound, ticket_service.AuthExpired, ticket_service.AuthMalformed:
		return CloseTicketInvalid
	case ticket_service.AuthInternal:
		return CloseInternalError
	default:
		return CloseInternalError
	}
}

func authErrKindString(kind ticket_service.AuthErrorKind) string {
	switch kind {
	case ticket_service.AuthNotFound:
		return "not_found"
	case ticket_service.AuthExpired:
		return "expired"
	case ticket_service.AuthMalformed:
		return "malformed"
	case ticket_service.AuthMissing:
		return "missing"
	case ticket_service.AuthInternal:
		return "internal"
	default:
		return "unknown"
	}
}
