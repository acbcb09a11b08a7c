package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/buddylink/backend/models"
	"github.com/buddylink/backend/store"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type fakeDirectory struct {
	pairs   map[string]*models.Chat
	creates int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{pairs: make(map[string]*models.Chat)}
}

func (f *fakeDirectory) FindDirectPair(a, b uuid.UUID) (*models.Chat, error) {
	if chat, ok := f.pairs[store.PairKey(a, b)]; ok {
		return chat, nil
	}
	return nil, store.ErrChatNotFound
}

func (f *fakeDirectory) CreatePair(creatorID, peerID uuid.UUID, name *string) (*models.Chat, error) {
	f.creates++
	chat := &models.Chat{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: creatorID,
		Participants: []*models.User{
			{ID: creatorID},
			{ID: peerID},
		},
	}
	f.pairs[store.PairKey(creatorID, peerID)] = chat
	return chat, nil
}

func (f *fakeDirectory) GetForUser(chatID, userID uuid.UUID) (*models.Chat, error) {
	for _, chat := range f.pairs {
		if chat.ID != chatID {
			continue
		}
		for _, p := range chat.Participants {
			if p.ID == userID {
				return chat, nil
			}
		}
	}
	return nil, store.ErrChatNotFound
}

func (f *fakeDirectory) ListForUser(userID uuid.UUID) ([]models.Chat, error) {
	var chats []models.Chat
	for _, chat := range f.pairs {
		for _, p := range chat.Participants {
			if p.ID == userID {
				chats = append(chats, *chat)
			}
		}
	}
	return chats, nil
}

func (f *fakeDirectory) FindOrCreateEventChat(eventID uuid.UUID, title string, creator *models.User) (*models.Chat, error) {
	return nil, store.ErrChatNotFound
}
func (f *fakeDirectory) AddParticipant(chatID uuid.UUID, user *models.User) error    { return nil }
func (f *fakeDirectory) RemoveParticipant(chatID uuid.UUID, user *models.User) error { return nil }
func (f *fakeDirectory) FindByEvent(eventID uuid.UUID) (*models.Chat, error) {
	return nil, store.ErrChatNotFound
}
func (f *fakeDirectory) DeleteChat(chatID uuid.UUID) error { return nil }

// newChatTestApp mounts the chat handlers behind a stand-in for the jwtware
// middleware that authenticates every request as userID.
func newChatTestApp(userID uuid.UUID, dir ChatDirectory) *fiber.App {
	chatStore = dir
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID.String()})
		c.Locals("user", token)
		return c.Next()
	})
	app.Post("/chats/direct", CreateOrGetDirectChat)
	app.Get("/chats/:chatId", GetChat)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestCreateDirectChatIdempotent(t *testing.T) {
	caller := uuid.New()
	peer := uuid.New()
	dir := newFakeDirectory()
	app := newChatTestApp(caller, dir)

	status, first := doJSON(t, app, "POST", "/chats/direct", fiber.Map{"peer_id": peer.String()})
	if status != fiber.StatusCreated {
		t.Fatalf("first request: expected 201, got %d", status)
	}

	status, second := doJSON(t, app, "POST", "/chats/direct", fiber.Map{"peer_id": peer.String()})
	if status != fiber.StatusOK {
		t.Fatalf("second request: expected 200 for the existing chat, got %d", status)
	}
	if first["id"] != second["id"] {
		t.Fatalf("expected the same chat both times, got %v and %v", first["id"], second["id"])
	}
	if dir.creates != 1 {
		t.Fatalf("expected exactly one create, got %d", dir.creates)
	}
}

func TestCreateDirectChatSelfRejected(t *testing.T) {
	caller := uuid.New()
	dir := newFakeDirectory()
	app := newChatTestApp(caller, dir)

	status, body := doJSON(t, app, "POST", "/chats/direct", fiber.Map{"peer_id": caller.String()})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body["error"] != "You cannot start a chat with yourself" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
	if dir.creates != 0 {
		t.Fatal("self-chat must never create a chat")
	}
}

func TestGetChatHiddenFromNonParticipant(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	outsider := uuid.New()
	dir := newFakeDirectory()
	chat, _ := dir.CreatePair(a, b, nil)

	app := newChatTestApp(outsider, dir)
	status, body := doJSON(t, app, "GET", "/chats/"+chat.ID.String(), nil)
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for an outsider, got %d", status)
	}
	if body["error"] != "Chat not found or access denied" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}

	app = newChatTestApp(a, dir)
	status, _ = doJSON(t, app, "GET", "/chats/"+chat.ID.String(), nil)
	if status != fiber.StatusOK {
		t.Fatalf("participant should see the chat, got %d", status)
	}
}
