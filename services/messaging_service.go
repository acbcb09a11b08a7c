package services

import (
	"strings"
	"time"

	"github.com/buddylink/backend/models"
	"github.com/buddylink/backend/store"
	"github.com/google/uuid"
)

// The send pipeline talks to the stores through these interfaces so the
// block-precedence logic can be exercised without a database.
type ChatReader interface {
	GetForUser(chatID, userID uuid.UUID) (*models.Chat, error)
	TouchLastMessage(chatID uuid.UUID, content string, at time.Time) error
}

type MessageWriter interface {
	CreateMessage(chatID, senderID uuid.UUID, content string) (*models.Message, error)
	GetMessageByID(id uuid.UUID) (*models.Message, error)
}

type BlockChecker interface {
	BlockedBy(userID, otherID uuid.UUID) (bool, error)
	HasBlocked(userID, otherID uuid.UUID) (bool, error)
}

// Messaging is the one send path shared by the socket layer and the REST
// handlers, so block enforcement cannot drift between the two.
type Messaging struct {
	Chats    ChatReader
	Messages MessageWriter
	Blocks   BlockChecker
}

// Send runs the full pipeline: participant-gated chat lookup, both block
// directions against every other participant, persist, snapshot update,
// then a re-fetch with the sender populated for the response payload.
//
// "They blocked you" is checked before "you blocked them" across all
// participants, so the reported reason is deterministic.
func (m *Messaging) Send(chatID, senderID uuid.UUID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, store.ErrEmptyContent
	}

	chat, err := m.Chats.GetForUser(chatID, senderID)
	if err != nil {
		return nil, err
	}

	others := make([]uuid.UUID, 0, len(chat.Participants))
	for _, p := range chat.Participants {
		if p.ID != senderID {
			others = append(others, p.ID)
		}
	}

	for _, other := range others {
		blocked, err := m.Blocks.BlockedBy(senderID, other)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, store.ErrBlockedByPeer
		}
	}
	for _, other := range others {
		blocked, err := m.Blocks.HasBlocked(senderID, other)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, store.ErrHasBlockedPeer
		}
	}

	msg, err := m.Messages.CreateMessage(chatID, senderID, content)
	if err != nil {
		return nil, err
	}

	if err := m.Chats.TouchLastMessage(chatID, msg.Content, msg.CreatedAt); err != nil {
		return nil, err
	}

	return m.Messages.GetMessageByID(msg.ID)
}
