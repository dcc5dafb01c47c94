package core

import (
	"context"
	"errors"
	"log/slog"

	"FoodScout/bot/dialog"
	"FoodScout/entity"
	"FoodScout/internal/lib/sl"
)

// TranscriptRepository persists conversation transcripts.
type TranscriptRepository interface {
	SaveChatMessage(msg entity.ChatMessage) error
	LoadChatHistory(userID, chatID string, limit int64) ([]entity.ChatMessage, error)
}

// Broadcaster pushes transcript events to live monitoring clients.
type Broadcaster interface {
	BroadcastMessage(msg entity.ChatMessage)
}

// Injector feeds a normalized message into the bot's routing chain.
type Injector interface {
	Handle(ctx context.Context, msg dialog.Message) (bool, error)
}

// Core backs the ops API and fans transcript events out to storage and the
// websocket hub.
type Core struct {
	log      *slog.Logger
	apiKey   string
	repo     TranscriptRepository
	hub      Broadcaster
	engine   *dialog.Engine
	injector Injector
}

func New(log *slog.Logger) *Core {
	return &Core{
		log: log.With(sl.Module("core")),
	}
}

func (c *Core) SetAuthKey(key string)                   { c.apiKey = key }
func (c *Core) SetRepository(repo TranscriptRepository) { c.repo = repo }
func (c *Core) SetHub(hub Broadcaster)                  { c.hub = hub }
func (c *Core) SetEngine(engine *dialog.Engine)         { c.engine = engine }
func (c *Core) SetInjector(i Injector)                  { c.injector = i }

// RecordChatMessage saves a transcript message and broadcasts it. Implements
// dialog.TranscriptListener; storage failures are logged, never propagated
// into the conversation.
func (c *Core) RecordChatMessage(msg entity.ChatMessage) {
	if c.repo != nil {
		if err := c.repo.SaveChatMessage(msg); err != nil {
			c.log.Error("failed to save chat message",
				slog.String("user_id", msg.UserID),
				slog.String("chat_id", msg.ChatID),
				sl.Err(err),
			)
		}
	}

	if c.hub != nil {
		c.hub.BroadcastMessage(msg)
	}
}

// ActiveSessions lists the dialog sessions currently awaiting a reply.
func (c *Core) ActiveSessions() []dialog.SessionInfo {
	if c.engine == nil {
		return nil
	}
	return c.engine.Active()
}

// InjectMessage runs an inbound message through the bot as if it had arrived
// from the transport.
func (c *Core) InjectMessage(ctx context.Context, msg dialog.Message) (bool, error) {
	if c.injector == nil {
		return false, errors.New("bot not running")
	}
	return c.injector.Handle(ctx, msg)
}

// ChatHistory returns recent transcript messages for a conversation.
func (c *Core) ChatHistory(userID, chatID string, limit int64) ([]entity.ChatMessage, error) {
	if c.repo == nil {
		return nil, errors.New("transcript storage not enabled")
	}
	return c.repo.LoadChatHistory(userID, chatID, limit)
}

// AuthenticateByToken validates an ops API bearer token.
func (c *Core) AuthenticateByToken(token string) (string, error) {
	if c.apiKey == "" || token != c.apiKey {
		return "", errors.New("invalid token")
	}
	return "ops", nil
}

// ValidateToken implements ws.Authenticator with the same key.
func (c *Core) ValidateToken(token string) (string, error) {
	return c.AuthenticateByToken(token)
}
