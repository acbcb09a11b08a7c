package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub is the in-process room registry: chat id -> subscribed clients, plus
// a private per-user channel every authenticated connection is placed in.
// Membership lives only in memory; after a restart clients re-issue
// join_room themselves. The mutex guards maps only — nothing under it
// blocks on I/O or on a client's send buffer.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*Client]struct{}
	users map[uuid.UUID]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]map[*Client]struct{}),
		users: make(map[uuid.UUID]map[*Client]struct{}),
	}
}

// Connect registers an authenticated connection and subscribes it to its
// user's private channel.
func (h *Hub) Connect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[c.UserID] == nil {
		h.users[c.UserID] = make(map[*Client]struct{})
	}
	h.users[c.UserID][c] = struct{}{}
}

func (h *Hub) JoinRoom(chatID uuid.UUID, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[chatID] == nil {
		h.rooms[chatID] = make(map[*Client]struct{})
	}
	h.rooms[chatID][c] = struct{}{}
	c.rooms[chatID] = struct{}{}
}

func (h *Hub) LeaveRoom(chatID uuid.UUID, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropFromRoom(chatID, c)
}

// Disconnect removes the connection from every room it joined and from its
// private channel, then releases its outbound queue. Idempotent: both the
// connection's own read loop and a broadcaster dropping a slow client may
// call it.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	for chatID := range c.rooms {
		h.dropFromRoom(chatID, c)
	}
	if conns, ok := h.users[c.UserID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.users, c.UserID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// KickUser force-unsubscribes every live connection of a user from one
// room. Used when a participant is removed from a chat, so a removed user
// stops receiving broadcasts immediately rather than at next send attempt.
func (h *Hub) KickUser(chatID, userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[chatID] {
		if c.UserID == userID {
			h.dropFromRoom(chatID, c)
		}
	}
}

// dropFromRoom must run with h.mu held.
func (h *Hub) dropFromRoom(chatID uuid.UUID, c *Client) {
	if room, ok := h.rooms[chatID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, chatID)
		}
	}
	delete(c.rooms, chatID)
}

// BroadcastToRoom fans a payload out to every connection subscribed to the
// room, the sender's own included. The payload is marshalled once; enqueue
// is non-blocking and in-memory, so fan-out runs under the read lock.
// Clients whose buffers overflow are disconnected once it is released.
func (h *Hub) BroadcastToRoom(chatID uuid.UUID, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal broadcast for chat %s: %v", chatID, err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.rooms[chatID] {
		if !c.enqueue(data) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	h.dropSlow(slow)
}

// SendToUser delivers a payload on a user's private channel.
func (h *Hub) SendToUser(userID uuid.UUID, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal payload for user %s: %v", userID, err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.users[userID] {
		if !c.enqueue(data) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	h.dropSlow(slow)
}

// dropSlow disconnects clients too far behind to keep. They leave the hub
// immediately rather than lingering until their read loop notices.
func (h *Hub) dropSlow(slow []*Client) {
	for _, c := range slow {
		log.Printf("Dropping slow websocket client %s", c.UserID)
		h.Disconnect(c)
	}
}

// RoomSize reports how many connections are currently subscribed to a room.
func (h *Hub) RoomSize(chatID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[chatID])
}
