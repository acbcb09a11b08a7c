package handlers

import (
	"context"
	"log"
	"time"

	"github.com/buddylink/backend/database"
	"github.com/buddylink/backend/models"
	"github.com/buddylink/backend/services"
	"github.com/buddylink/backend/store"
	"github.com/buddylink/backend/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	socketReadLimit   = 8 * 1024
	socketReadWait    = 60 * time.Second
	handshakeDBWindow = 5 * time.Second
)

var (
	chatHub      = websocket.NewHub()
	chatStore    ChatDirectory
	messageStore *store.MessageStore
	blockStore   *store.BlockStore
	messaging    *services.Messaging
	socketEvents *websocket.EventHandler
)

// InitMessaging wires the stores, the send pipeline and the socket state
// machine. Called once from main after the database is up.
func InitMessaging() {
	cs := &store.ChatStore{DB: database.DB}
	chatStore = cs
	messageStore = &store.MessageStore{DB: database.DB}
	blockStore = &store.BlockStore{DB: database.DB}
	messaging = &services.Messaging{Chats: cs, Messages: messageStore, Blocks: blockStore}
	socketEvents = websocket.NewEventHandler(chatHub, cs, messaging)
}

// SocketAuth is the connection gate. It runs before the upgrade, so a bad
// credential or a deleted user is rejected with plain HTTP and no protocol
// event ever reaches an unauthenticated connection. The user-directory
// lookup runs under a bounded timeout so a slow store cannot hold the
// handshake open indefinitely.
func SocketAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocketcontrib.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		claims, err := parseToken(c.Query("token"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing token"})
		}
		raw, _ := claims["user_id"].(string)
		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
		}

		ctx, cancel := context.WithTimeout(context.Background(), handshakeDBWindow)
		defer cancel()
		var count int64
		if err := database.DB.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ? AND is_active = ?", userID, true).
			Count(&count).Error; err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Authentication check failed"})
		}
		if count == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

// ServeWs runs the read loop for one authenticated connection. The gate has
// already attached the user id; the first thing that happens here is the
// auto-subscription to the user's private channel via Connect.
func ServeWs(conn *websocketcontrib.Conn) {
	userID, ok := conn.Locals("userID").(uuid.UUID)
	if !ok {
		conn.Close()
		return
	}

	client := websocket.NewClient(userID, conn)
	chatHub.Connect(client)
	go client.WritePump()
	defer func() {
		chatHub.Disconnect(client)
		conn.Close()
	}()

	conn.SetReadLimit(socketReadLimit)
	conn.SetReadDeadline(time.Now().Add(socketReadWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(socketReadWait))
	})

	for {
		var evt websocket.InboundEvent
		if err := conn.ReadJSON(&evt); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket closed for client %s: %v", userID, err)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}
		conn.SetReadDeadline(time.Now().Add(socketReadWait))
		socketEvents.Handle(client, evt)
	}
}
