package bot

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"FoodScout/bot/dialog"
	"FoodScout/bot/telegram"
	"FoodScout/entity"
	"FoodScout/internal/lib/sl"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"
)

// UserBot is the Telegram front of the dialog engine. It polls for updates,
// classifies each message's context, and routes it through the engine; when
// the engine declines, the canned responders get a shot.
type UserBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	engine      *dialog.Engine
	canned      *CannedResponder
	messenger   dialog.Messenger
	listener    dialog.TranscriptListener
}

func NewUserBot(botName, apiKey string, log *slog.Logger) (*UserBot, error) {
	b := &UserBot{
		log:         log.With(sl.Module("userbot")),
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	b.api = api
	b.messenger = telegram.NewMessenger(api)
	b.canned = NewCannedResponder(b, log)

	return b, nil
}

// SetEngine sets the dialog engine for the bot.
func (b *UserBot) SetEngine(engine *dialog.Engine) {
	b.engine = engine
}

// SetTranscriptListener sets the listener notified of every message.
func (b *UserBot) SetTranscriptListener(l dialog.TranscriptListener) {
	b.listener = l
}

// Start begins polling for updates and handling them. Blocks.
func (b *UserBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(bot *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Println("an error occurred while handling update:", err.Error())
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewMessage(message.Text, b.handleMessage))

	err := updater.StartPolling(b.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	b.log.Info("user bot started", slog.String("username", b.botUsername))

	// Idle, to keep updates coming in
	updater.Idle()

	return nil
}

// handleMessage routes one text message through the engine and canned
// responders.
func (b *UserBot) handleMessage(bot *tgbotapi.Bot, ctx *ext.Context) error {
	msg := dialog.Message{
		Text:   ctx.EffectiveMessage.Text,
		UserID: strconv.FormatInt(ctx.EffectiveUser.Id, 10),
		ChatID: strconv.FormatInt(ctx.EffectiveChat.Id, 10),
		Kind:   b.classify(ctx),
	}

	_, err := b.Handle(context.Background(), msg)
	if err != nil {
		b.log.Error("handling message",
			slog.String("user_id", msg.UserID),
			slog.String("kind", string(msg.Kind)),
			sl.Err(err),
		)
	}
	return err
}

// Handle runs one normalized inbound message through the full routing chain.
// Also used by the ops API to inject messages.
func (b *UserBot) Handle(ctx context.Context, msg dialog.Message) (bool, error) {
	if b.listener != nil {
		b.listener.RecordChatMessage(entity.ChatMessage{
			UserID:    msg.UserID,
			ChatID:    msg.ChatID,
			Direction: "incoming",
			Text:      msg.Text,
			CreatedAt: time.Now(),
		})
	}

	m := recordOutbound(b.messenger, b.listener, msg.UserID)

	if b.engine != nil {
		handled, err := b.engine.Dispatch(ctx, m, msg)
		if handled || err != nil {
			return handled, err
		}
	}

	return b.canned.Respond(m, msg)
}

// classify maps a Telegram update onto a message context kind. Private chats
// are direct messages; in groups the bot only counts as addressed when its
// @username appears in the text.
func (b *UserBot) classify(ctx *ext.Context) dialog.ContextKind {
	if ctx.EffectiveChat.Type == "private" {
		return dialog.KindDirectMessage
	}

	handle := "@" + b.botUsername
	text := ctx.EffectiveMessage.Text
	switch {
	case strings.HasPrefix(text, handle):
		return dialog.KindDirectMention
	case strings.Contains(text, handle):
		return dialog.KindMention
	default:
		return dialog.KindAmbient
	}
}

// DisplayName implements UserDirectory via the Telegram API.
func (b *UserBot) DisplayName(userID string) (string, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return "", err
	}

	chat, err := b.api.GetChat(id, nil)
	if err != nil {
		return "", fmt.Errorf("user lookup: %w", err)
	}

	name := strings.TrimSpace(strings.TrimSpace(chat.FirstName) + " " + strings.TrimSpace(chat.LastName))
	if name == "" {
		name = chat.Username
	}
	return name, nil
}
