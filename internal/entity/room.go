package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Room is the unit of collaboration. Code is the public identity and never
// changes; rooms are deactivated, never hard-deleted.
type Room struct {
	ID          int64           `gorm:"primaryKey"`
	Code        uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	HostID      string          `gorm:"not null"`
	IsActive    bool            `gorm:"not null;default:true"`
	SharedText  string          `gorm:"type:text"`
	DrawingData json.RawMessage `gorm:"type:jsonb"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

type RoomParticipant struct {
	ID       int64     `gorm:"primaryKey"`
	RoomCode string    `gorm:"index;not null"`
	UserID   string    `gorm:"not null"`
	Role     string    `gorm:"not null"` // "host" or "participant"
	JoinedAt time.Time `gorm:"autoCreateTime"`
}
