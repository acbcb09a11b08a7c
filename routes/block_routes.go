package routes

import (
	"github.com/buddylink/backend/handlers"
	"github.com/buddylink/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func BlockRoutes(app *fiber.App) {
	blocks := app.Group("/api/v1/blocks", middleware.Protected())
	blocks.Post("", handlers.BlockUser)
	blocks.Delete("/:userId", handlers.UnblockUser)
}
