package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	Bio               *string `gorm:"type:text" json:"bio"`
	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`
	City              *string `gorm:"size:100" json:"city"`

	Chats []*Chat `gorm:"many2many:chat_participants;" json:"-"`

	IsActive bool `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
