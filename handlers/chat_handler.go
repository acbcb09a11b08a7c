package handlers

import (
	"errors"
	"strconv"

	"github.com/buddylink/backend/models"
	"github.com/buddylink/backend/store"
	"github.com/buddylink/backend/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ChatDirectory is what the chat and event handlers need from the chat
// store, kept narrow so handler behavior is testable without Postgres.
type ChatDirectory interface {
	FindDirectPair(a, b uuid.UUID) (*models.Chat, error)
	CreatePair(creatorID, peerID uuid.UUID, name *string) (*models.Chat, error)
	GetForUser(chatID, userID uuid.UUID) (*models.Chat, error)
	ListForUser(userID uuid.UUID) ([]models.Chat, error)
	FindOrCreateEventChat(eventID uuid.UUID, title string, creator *models.User) (*models.Chat, error)
	AddParticipant(chatID uuid.UUID, user *models.User) error
	RemoveParticipant(chatID uuid.UUID, user *models.User) error
	FindByEvent(eventID uuid.UUID) (*models.Chat, error)
	DeleteChat(chatID uuid.UUID) error
}

type CreateDirectChatRequest struct {
	PeerID string  `json:"peer_id" validate:"required,uuid"`
	Name   *string `json:"name"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateOrGetDirectChat is the idempotent first-contact endpoint: 200 with
// the existing chat when the pair already talked, 201 when a new chat was
// created, so callers can tell the two apart.
func CreateOrGetDirectChat(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req CreateDirectChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	peerID, err := uuid.Parse(req.PeerID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid peer ID"})
	}
	if peerID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": store.ErrSelfChat.Error()})
	}

	if existing, err := chatStore.FindDirectPair(userID, peerID); err == nil {
		return c.JSON(existing)
	} else if !errors.Is(err, store.ErrChatNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	chat, err := chatStore.CreatePair(userID, peerID, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrPeerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(chat)
}

// GetUserChats lists the caller's chats, most recently active first.
func GetUserChats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	chats, err := chatStore.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(chats)
}

func GetChat(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	chatID, err := uuid.Parse(c.Params("chatId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": store.ErrInvalidID.Error()})
	}

	chat, err := chatStore.GetForUser(chatID, userID)
	if err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(chat)
}

// SendChatMessage is the non-live send path. It runs the same pipeline as
// the socket path and still fans out to any connections in the room.
func SendChatMessage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	chatID, err := uuid.Parse(c.Params("chatId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": store.ErrInvalidID.Error()})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	msg, err := messaging.Send(chatID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyContent):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, store.ErrChatNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, store.ErrBlockedByPeer), errors.Is(err, store.ErrHasBlockedPeer):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	chatHub.BroadcastToRoom(chatID, websocket.NewMessageEvent{
		Type:    websocket.EventNewMessage,
		ChatID:  chatID.String(),
		Message: msg,
	})

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetChatMessages is the history API: cursor-paginated backfill, newest
// first, bypassing the room registry entirely.
func GetChatMessages(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	chatID, err := uuid.Parse(c.Params("chatId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": store.ErrInvalidID.Error()})
	}

	if _, err := chatStore.GetForUser(chatID, userID); err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	limit = store.ClampLimit(limit)

	before, err := store.ParseCursor(c.Query("before"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	messages, hasMore, err := messageStore.MessagesForChat(chatID, limit, before)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"messages": messages,
		"chat_id":  chatID,
		"limit":    limit,
		"count":    len(messages),
		"has_more": hasMore,
	})
}
