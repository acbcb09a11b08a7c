package handlers

import (
	"errors"

	"github.com/buddylink/backend/database"
	"github.com/buddylink/backend/models"
	"github.com/buddylink/backend/store"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BlockRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// BlockUser records the caller blocking another user. The messaging core
// picks the relation up on the next send; no live connections are touched.
func BlockUser(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req BlockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	blockedID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var count int64
	if err := database.DB.Model(&models.User{}).Where("id = ?", blockedID).Count(&count).Error; err != nil || count == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if err := blockStore.Block(userID, blockedID); err != nil {
		if errors.Is(err, store.ErrSelfBlock) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "blocked"})
}

func UnblockUser(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	blockedID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := blockStore.Unblock(userID, blockedID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "unblocked"})
}
