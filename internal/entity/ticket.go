package entity

// Ticket is a single-use websocket credential. It lives only in Redis and is
// consumed atomically on first redemption.
type Ticket struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}
