package websocket

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/buddylink/backend/models"
	"github.com/buddylink/backend/store"
	"github.com/google/uuid"
)

type ChatFinder interface {
	GetForUser(chatID, userID uuid.UUID) (*models.Chat, error)
}

type MessageSender interface {
	Send(chatID, senderID uuid.UUID, content string) (*models.Message, error)
}

// EventHandler is the per-event state machine behind every authenticated
// connection. Room membership changes are pure in-memory hub operations;
// store calls happen before any hub lock is taken.
type EventHandler struct {
	Hub      *Hub
	Chats    ChatFinder
	Messages MessageSender
}

func NewEventHandler(hub *Hub, chats ChatFinder, messages MessageSender) *EventHandler {
	return &EventHandler{Hub: hub, Chats: chats, Messages: messages}
}

func (h *EventHandler) Handle(c *Client, evt InboundEvent) {
	switch evt.Type {
	case EventJoinRoom:
		h.handleJoin(c, evt)
	case EventLeaveRoom:
		h.handleLeave(c, evt)
	case EventSendMessage:
		h.handleSend(c, evt)
	default:
		h.reply(c, newErrorEvent("Unknown event type"))
	}
}

func (h *EventHandler) handleJoin(c *Client, evt InboundEvent) {
	chatID, err := uuid.Parse(evt.ChatID)
	if err != nil {
		h.reply(c, newErrorEvent(store.ErrInvalidID.Error()))
		return
	}

	chat, err := h.Chats.GetForUser(chatID, c.UserID)
	if err != nil {
		h.reply(c, newErrorEvent(err.Error()))
		return
	}

	h.Hub.JoinRoom(chatID, c)
	h.reply(c, JoinedRoomEvent{Type: EventJoinedRoom, ChatID: evt.ChatID, Chat: chat})
}

// handleLeave never fails: leaving a room the connection was not in, or
// naming a malformed id, is a no-op that still acknowledges.
func (h *EventHandler) handleLeave(c *Client, evt InboundEvent) {
	if chatID, err := uuid.Parse(evt.ChatID); err == nil {
		h.Hub.LeaveRoom(chatID, c)
	}
	h.reply(c, LeftRoomEvent{Type: EventLeftRoom, ChatID: evt.ChatID})
}

func (h *EventHandler) handleSend(c *Client, evt InboundEvent) {
	chatID, err := uuid.Parse(evt.ChatID)
	if err != nil {
		h.reply(c, newErrorEvent(store.ErrInvalidID.Error()))
		return
	}
	if strings.TrimSpace(evt.Content) == "" {
		h.reply(c, newErrorEvent(store.ErrEmptyContent.Error()))
		return
	}

	msg, err := h.Messages.Send(chatID, c.UserID, evt.Content)
	if err != nil {
		h.reply(c, newErrorEvent(err.Error()))
		return
	}

	h.Hub.BroadcastToRoom(chatID, NewMessageEvent{
		Type:    EventNewMessage,
		ChatID:  evt.ChatID,
		Message: msg,
	})
}

// reply delivers an event to the one connection that triggered it.
func (h *EventHandler) reply(c *Client, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal reply for client %s: %v", c.UserID, err)
		return
	}
	c.enqueue(data)
}
