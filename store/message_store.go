package store

import (
	"strings"
	"time"

	"github.com/buddylink/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

type MessageStore struct {
	DB *gorm.DB
}

// ClampLimit normalizes a requested page size into [1, MaxPageSize],
// falling back to DefaultPageSize when the request carries none.
func ClampLimit(limit int) int {
	if limit == 0 {
		return DefaultPageSize
	}
	if limit < 1 {
		return 1
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// ParseCursor parses a "before" pagination token. Accepts RFC3339 with or
// without sub-second precision; anything else is ErrInvalidCursor.
func ParseCursor(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, ErrInvalidCursor
}

// CreateMessage persists a message after trimming its content. Whitespace
// only content never reaches the database.
func (s *MessageStore) CreateMessage(chatID, senderID uuid.UUID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	msg := models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// MessagesForChat returns one page of history newest-first. One extra row
// is fetched beyond the page to compute hasMore exactly, then trimmed.
func (s *MessageStore) MessagesForChat(chatID uuid.UUID, limit int, before *time.Time) ([]models.Message, bool, error) {
	limit = ClampLimit(limit)

	q := s.DB.
		Preload("Sender").
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Limit(limit + 1)
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}

	var messages []models.Message
	if err := q.Find(&messages).Error; err != nil {
		return nil, false, err
	}

	page, hasMore := trimPage(messages, limit)
	return page, hasMore, nil
}

// trimPage converts a limit+1 fetch into the page to return plus an exact
// hasMore flag.
func trimPage(messages []models.Message, limit int) ([]models.Message, bool) {
	if len(messages) > limit {
		return messages[:limit], true
	}
	return messages, false
}

// GetMessageByID re-fetches a message with its sender populated, for the
// response and broadcast payloads.
func (s *MessageStore) GetMessageByID(id uuid.UUID) (*models.Message, error) {
	var msg models.Message
	if err := s.DB.Preload("Sender").First(&msg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
