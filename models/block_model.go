package models

import (
	"time"

	"github.com/google/uuid"
)

// Block is a directed relation: Blocker has blocked Blocked. The messaging
// core only reads these; they are created and removed by the block handlers.
type Block struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocks_pair" json:"blocker_id"`
	BlockedID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocks_pair" json:"blocked_id"`

	Blocker User `gorm:"foreignkey:BlockerID" json:"-"`
	Blocked User `gorm:"foreignkey:BlockedID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
