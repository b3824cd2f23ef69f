package entity

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawingStroke is one entry of the append-only drawing log. Strokes are
// attributed to the submitting user but the room owns the merged state.
type DrawingStroke struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RoomCode  string             `bson:"room_code"`
	UserID    string             `bson:"user_id"`
	Payload   json.RawMessage    `bson:"payload"`
	CreatedAt time.Time          `bson:"created_at"`
}
