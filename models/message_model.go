package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ChatID   uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_chat_created" json:"chat_id"`
	SenderID uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`

	Sender User `gorm:"foreignkey:SenderID" json:"sender"`
	Chat   Chat `gorm:"foreignkey:ChatID" json:"-"`

	CreatedAt time.Time `gorm:"index:idx_messages_chat_created" json:"created_at"`
}
