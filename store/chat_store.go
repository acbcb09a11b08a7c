package store

import (
	"errors"
	"time"

	"github.com/buddylink/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatStore struct {
	DB *gorm.DB
}

// FindDirectPair looks up the unique non-group chat between two users.
// Lookup goes through the normalized pair key, so argument order is
// irrelevant. Returns ErrChatNotFound when no such chat exists.
func (s *ChatStore) FindDirectPair(a, b uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.
		Preload("Participants").
		Where("pair_key = ? AND is_group = ?", PairKey(a, b), false).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// CreatePair creates the direct chat between the creator and an active
// peer; ErrPeerNotFound when the peer is missing or deactivated. If a
// concurrent request already created the chat, the unique pair-key index
// rejects the insert and the existing chat is returned instead.
func (s *ChatStore) CreatePair(creatorID, peerID uuid.UUID, name *string) (*models.Chat, error) {
	var creator, peer models.User
	if err := s.DB.First(&creator, "id = ?", creatorID).Error; err != nil {
		return nil, err
	}
	if err := s.DB.First(&peer, "id = ? AND is_active = ?", peerID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeerNotFound
		}
		return nil, err
	}

	pairKey := PairKey(creatorID, peerID)
	chat := models.Chat{
		IsGroup:      false,
		Name:         name,
		PairKey:      &pairKey,
		CreatedBy:    creatorID,
		Participants: []*models.User{&creator, &peer},
	}
	if err := s.DB.Create(&chat).Error; err != nil {
		if existing, ferr := s.FindDirectPair(creatorID, peerID); ferr == nil {
			return existing, nil
		}
		return nil, err
	}
	return &chat, nil
}

// GetForUser returns the chat only if the user is a participant. A chat the
// user cannot see and a chat that does not exist are indistinguishable here,
// so existence is never leaked.
func (s *ChatStore) GetForUser(chatID, userID uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.
		Preload("Participants").
		Joins("JOIN chat_participants cp ON cp.chat_id = chats.id AND cp.user_id = ?", userID).
		Where("chats.id = ?", chatID).
		First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// ListForUser returns every chat the user participates in, most recently
// active first. Chats with no messages yet sort by creation time.
func (s *ChatStore) ListForUser(userID uuid.UUID) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.DB.
		Preload("Participants").
		Joins("JOIN chat_participants cp ON cp.chat_id = chats.id AND cp.user_id = ?", userID).
		Order("COALESCE(chats.last_message_at, chats.created_at) DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// FindOrCreateEventChat returns the group chat bound to an event, creating
// it on first access. EventID carries a unique index, so a racing create
// fails and falls back to the fetch.
func (s *ChatStore) FindOrCreateEventChat(eventID uuid.UUID, title string, creator *models.User) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.
		Preload("Participants").
		Where("event_id = ?", eventID).
		First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chat = models.Chat{
		IsGroup:      true,
		Name:         &title,
		CreatedBy:    creator.ID,
		EventID:      &eventID,
		Participants: []*models.User{creator},
	}
	if err := s.DB.Create(&chat).Error; err != nil {
		var existing models.Chat
		if ferr := s.DB.Preload("Participants").Where("event_id = ?", eventID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &chat, nil
}

func (s *ChatStore) AddParticipant(chatID uuid.UUID, user *models.User) error {
	return s.DB.Model(&models.Chat{ID: chatID}).Association("Participants").Append(user)
}

// RemoveParticipant drops a user from the chat's participant set. The chat
// itself survives even when the last participant leaves.
func (s *ChatStore) RemoveParticipant(chatID uuid.UUID, user *models.User) error {
	return s.DB.Model(&models.Chat{ID: chatID}).Association("Participants").Delete(user)
}

// TouchLastMessage refreshes the denormalized preview snapshot after a send.
func (s *ChatStore) TouchLastMessage(chatID uuid.UUID, content string, at time.Time) error {
	return s.DB.Model(&models.Chat{}).
		Where("id = ?", chatID).
		Updates(map[string]interface{}{
			"last_message":    content,
			"last_message_at": at,
		}).Error
}

// DeleteChat removes a chat together with its messages and participant
// rows. The store enforces no foreign keys, so cleanup is explicit.
func (s *ChatStore) DeleteChat(chatID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", chatID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM chat_participants WHERE chat_id = ?", chatID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Chat{}, "id = ?", chatID).Error
	})
}

// FindByEvent returns the chat bound to an event, or ErrChatNotFound.
func (s *ChatStore) FindByEvent(eventID uuid.UUID) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.Where("event_id = ?", eventID).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &chat, nil
}
