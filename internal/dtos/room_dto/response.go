package room_dto

import (
	"encoding/json"
	"time"
)

type RoomResponse struct {
	Code        string          `json:"code"`
	HostID      string          `json:"host_id"`
	IsActive    bool            `json:"is_active"`
	SharedText  string          `json:"shared_text"`
	DrawingData json.RawMessage `json:"drawing_data,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type LeaveRoomResponse struct {
	// Status is "left" for a participant and "closed" when the host
	// leaves and the room is deactivated.
	Status string `json:"status"`
}

type TicketResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type MessageResponse struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type MessagesPageResponse struct {
	Messages []MessageResponse `json:"messages"`
	// NextBeforeID is the cursor for fetching the previous page, empty
	// when the oldest message has been reached.
	NextBeforeID string `json:"next_before_id,omitempty"`
}
