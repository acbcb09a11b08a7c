package services

import (
	"errors"
	"testing"
	"time"

	"github.com/buddylink/backend/models"
	"github.com/buddylink/backend/store"
	"github.com/google/uuid"
)

type fakeChats struct {
	chat        *models.Chat
	getErr      error
	touched     bool
	touchedWith string
}

func (f *fakeChats) GetForUser(chatID, userID uuid.UUID) (*models.Chat, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.chat, nil
}

func (f *fakeChats) TouchLastMessage(chatID uuid.UUID, content string, at time.Time) error {
	f.touched = true
	f.touchedWith = content
	return nil
}

type fakeMessages struct {
	created *models.Message
	calls   int
}

func (f *fakeMessages) CreateMessage(chatID, senderID uuid.UUID, content string) (*models.Message, error) {
	f.calls++
	f.created = &models.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	return f.created, nil
}

func (f *fakeMessages) GetMessageByID(id uuid.UUID) (*models.Message, error) {
	return f.created, nil
}

type fakeBlocks struct {
	blockedBy  bool
	hasBlocked bool
}

func (f *fakeBlocks) BlockedBy(userID, otherID uuid.UUID) (bool, error)  { return f.blockedBy, nil }
func (f *fakeBlocks) HasBlocked(userID, otherID uuid.UUID) (bool, error) { return f.hasBlocked, nil }

func directChat(a, b uuid.UUID) *models.Chat {
	return &models.Chat{
		ID:           uuid.New(),
		Participants: []*models.User{{ID: a}, {ID: b}},
	}
}

func TestSendEmptyContentNeverReachesStores(t *testing.T) {
	sender := uuid.New()
	chats := &fakeChats{chat: directChat(sender, uuid.New())}
	msgs := &fakeMessages{}
	m := &Messaging{Chats: chats, Messages: msgs, Blocks: &fakeBlocks{}}

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := m.Send(uuid.New(), sender, content)
		if !errors.Is(err, store.ErrEmptyContent) {
			t.Fatalf("content %q: expected ErrEmptyContent, got %v", content, err)
		}
	}
	if msgs.calls != 0 {
		t.Fatalf("expected no message writes, got %d", msgs.calls)
	}
}

func TestSendBlockedByPeerTakesPrecedence(t *testing.T) {
	sender := uuid.New()
	chats := &fakeChats{chat: directChat(sender, uuid.New())}
	msgs := &fakeMessages{}
	m := &Messaging{
		Chats:    chats,
		Messages: msgs,
		Blocks:   &fakeBlocks{blockedBy: true, hasBlocked: true},
	}

	_, err := m.Send(uuid.New(), sender, "hello")
	if !errors.Is(err, store.ErrBlockedByPeer) {
		t.Fatalf("expected ErrBlockedByPeer, got %v", err)
	}
	if msgs.calls != 0 {
		t.Fatal("blocked send must not create a message")
	}
}

func TestSendHasBlockedPeer(t *testing.T) {
	sender := uuid.New()
	chats := &fakeChats{chat: directChat(sender, uuid.New())}
	msgs := &fakeMessages{}
	m := &Messaging{
		Chats:    chats,
		Messages: msgs,
		Blocks:   &fakeBlocks{hasBlocked: true},
	}

	_, err := m.Send(uuid.New(), sender, "hello")
	if !errors.Is(err, store.ErrHasBlockedPeer) {
		t.Fatalf("expected ErrHasBlockedPeer, got %v", err)
	}
	if msgs.calls != 0 {
		t.Fatal("blocked send must not create a message")
	}
}

func TestSendChatNotFoundShortCircuits(t *testing.T) {
	msgs := &fakeMessages{}
	m := &Messaging{
		Chats:    &fakeChats{getErr: store.ErrChatNotFound},
		Messages: msgs,
		Blocks:   &fakeBlocks{},
	}

	_, err := m.Send(uuid.New(), uuid.New(), "hello")
	if !errors.Is(err, store.ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
	if msgs.calls != 0 {
		t.Fatal("no write after a failed chat lookup")
	}
}

func TestSendSuccessTouchesSnapshot(t *testing.T) {
	sender := uuid.New()
	chats := &fakeChats{chat: directChat(sender, uuid.New())}
	msgs := &fakeMessages{}
	m := &Messaging{Chats: chats, Messages: msgs, Blocks: &fakeBlocks{}}

	msg, err := m.Send(uuid.New(), sender, "  hello  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Content != "hello" {
		t.Fatalf("expected trimmed content, got %q", msg.Content)
	}
	if !chats.touched {
		t.Fatal("expected last-message snapshot update")
	}
	if chats.touchedWith != "hello" {
		t.Fatalf("snapshot updated with %q", chats.touchedWith)
	}
}
