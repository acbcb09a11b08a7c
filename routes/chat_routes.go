package routes

import (
	"github.com/buddylink/backend/handlers"
	"github.com/buddylink/backend/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ChatRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	chats := api.Group("/chats", middleware.Protected())
	chats.Get("", handlers.GetUserChats)
	chats.Post("/direct", handlers.CreateOrGetDirectChat)
	chats.Get("/:chatId", handlers.GetChat)
	chats.Get("/:chatId/messages", handlers.GetChatMessages)
	chats.Post("/:chatId/messages", handlers.SendChatMessage)

	// The websocket handshake authenticates via ?token= before the upgrade;
	// jwtware is for the REST routes only.
	api.Use("/ws", handlers.SocketAuth())
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
