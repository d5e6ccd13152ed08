package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Event types recorded by the services. Best-effort audit trail.
const (
	EventFlashcardsImported = "flashcards_imported"
	EventAnswerRecorded     = "answer_recorded"
)

type UserEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   string         `gorm:"column:owner_id;not null;index" json:"owner_id"`
	EventType string         `gorm:"column:event_type;not null" json:"event_type"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (UserEvent) TableName() string { return "user_event" }
