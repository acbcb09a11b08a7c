package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat is either a direct two-person conversation (IsGroup=false, PairKey
// set) or a named group conversation, optionally bound to an event.
type Chat struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	IsGroup bool      `gorm:"not null;default:false" json:"is_group"`
	Name    *string   `gorm:"size:255" json:"name"`

	// PairKey is "minID:maxID" of the two participants for direct chats,
	// nil for group chats. The unique index is what stops two racing
	// first-contact requests from creating duplicate direct chats.
	PairKey *string `gorm:"size:80;uniqueIndex" json:"-"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	EventID   *uuid.UUID `gorm:"type:uuid;index" json:"event_id"`

	Participants []*User `gorm:"many2many:chat_participants;" json:"participants,omitempty"`

	LastMessage   *string    `gorm:"type:text" json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
