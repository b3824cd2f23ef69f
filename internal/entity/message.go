package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	RoomCode   string             `bson:"room_code"`
	SenderID   string             `bson:"sender_id"`
	SenderName string             `bson:"sender_name"`
	Content    string             `bson:"content"`
	CreatedAt  time.Time          `bson:"created_at"`
}
