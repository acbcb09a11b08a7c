package handlers

import (
	"errors"
	"time"

	"github.com/buddylink/backend/database"
	"github.com/buddylink/backend/models"
	"github.com/buddylink/backend/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=2"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
}

// CreateEvent creates an event together with its group chat. The chat is
// bound to the event and outlives membership churn.
func CreateEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var creator models.User
	if err := database.DB.First(&creator, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		CreatedBy:   userID,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create event"})
	}

	chat, err := chatStore.FindOrCreateEventChat(event.ID, event.Title, &creator)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": event, "chat": chat})
}

// JoinEvent adds the caller to the event's group chat.
func JoinEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	var event models.Event
	if err := database.DB.First(&event, "id = ?", eventID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	chat, err := chatStore.FindOrCreateEventChat(event.ID, event.Title, &user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := chatStore.AddParticipant(chat.ID, &user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "joined", "chat_id": chat.ID})
}

// LeaveEvent removes the caller from the event's chat participant set and
// kicks their live connections out of the room. The chat itself survives.
func LeaveEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	chat, err := chatStore.FindByEvent(eventID)
	if err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event chat not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	user := models.User{ID: userID}
	if err := chatStore.RemoveParticipant(chat.ID, &user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	chatHub.KickUser(chat.ID, userID)

	return c.JSON(fiber.Map{"status": "left"})
}

// DeleteEvent is the administrative cleanup path: only the event's creator
// may delete it, and the bound chat goes down with its messages.
func DeleteEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid event ID"})
	}

	var event models.Event
	if err := database.DB.First(&event, "id = ?", eventID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Event not found"})
	}
	if event.CreatedBy != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only the event creator can delete it"})
	}

	if chat, err := chatStore.FindByEvent(eventID); err == nil {
		if err := chatStore.DeleteChat(chat.ID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if err := database.DB.Delete(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}
