package types

const (
	JobCompactDrawing = "compact_drawing"
	JobTouchRoom      = "touch_room"
)

type CompactDrawingPayload struct {
	RoomCode string `json:"room_code"`
}

type TouchRoomPayload struct {
	RoomCode string `json:"room_code"`
}
