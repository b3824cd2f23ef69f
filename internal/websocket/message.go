package websocket

import "encoding/json"

// Client -> server actions. ActionChatMessage and ActionDrawing are the
// names older clients still send for the same operations.
const (
	ActionMessage       = "message"
	ActionChatMessage   = "chat_message"
	ActionUpdateText    = "update_shared_text"
	ActionSaveText      = "save_shared_text"
	ActionUpdateDrawing = "update_drawing"
	ActionSaveDrawing   = "save_drawing"
	ActionDrawing       = "drawing"
)

// Server -> client event types.
const (
	EventMessage    = ActionChatMessage
	EventSharedText = ActionUpdateText
	EventDrawing    = ActionUpdateDrawing
	EventUserJoin   = "user_join"
	EventUserLeave  = "user_leave"
	EventError      = "error"
)

// Envelope is an inbound frame. Older clients send "type" instead of
// "action" and "data" instead of "drawing_data"; Kind and Drawing resolve
// whichever is present.
type Envelope struct {
	Action      string          `json:"action"`
	Type        string          `json:"type"`
	Content     string          `json:"content"`
	SharedText  string          `json:"shared_text"`
	DrawingData json.RawMessage `json:"drawing_data"`
	Data        json.RawMessage `json:"data"`
}

func (e *Envelope) Kind() string {
	if e.Action != "" {
		return e.Action
	}
	return e.Type
}

func (e *Envelope) Drawing() json.RawMessage {
	if len(e.DrawingData) > 0 {
		return e.DrawingData
	}
	return e.Data
}

// Event is an outbound frame broadcast to room members.
type Event struct {
	Type        string          `json:"type"`
	RoomCode    string          `json:"room_code"`
	SenderID    string          `json:"sender_id,omitempty"`
	Username    string          `json:"username,omitempty"`
	Content     string          `json:"content,omitempty"`
	SharedText  string          `json:"shared_text,omitempty"`
	DrawingData json.RawMessage `json:"drawing_data,omitempty"`
	Timestamp   int64           `json:"timestamp"`
}
