package routes

import (
	"github.com/buddylink/backend/handlers"
	"github.com/buddylink/backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func EventRoutes(app *fiber.App) {
	events := app.Group("/api/v1/events", middleware.Protected())
	events.Post("", handlers.CreateEvent)
	events.Post("/:eventId/join", handlers.JoinEvent)
	events.Post("/:eventId/leave", handlers.LeaveEvent)
	events.Delete("/:eventId", handlers.DeleteEvent)
}
