package websocket

import "github.com/buddylink/backend/models"

// Inbound event types accepted from an authenticated connection.
const (
	EventJoinRoom    = "join_room"
	EventLeaveRoom   = "leave_room"
	EventSendMessage = "send_message"
)

// Outbound event types.
const (
	EventJoinedRoom = "joined_room"
	EventLeftRoom   = "left_room"
	EventNewMessage = "new_message"
	EventError      = "error"
)

type InboundEvent struct {
	Type    string `json:"type"`
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}

type JoinedRoomEvent struct {
	Type   string       `json:"type"`
	ChatID string       `json:"chat_id"`
	Chat   *models.Chat `json:"chat"`
}

type LeftRoomEvent struct {
	Type   string `json:"type"`
	ChatID string `json:"chat_id"`
}

type NewMessageEvent struct {
	Type    string          `json:"type"`
	ChatID  string          `json:"chat_id"`
	Message *models.Message `json:"message"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: EventError, Message: message}
}
