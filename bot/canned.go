package bot

import (
	"fmt"
	"log/slog"

	"FoodScout/bot/dialog"
	"FoodScout/entity"
	"FoodScout/internal/lib/sl"
)

// UserDirectory looks up a display name for a user id. Implemented by the
// transport.
type UserDirectory interface {
	DisplayName(userID string) (string, error)
}

// cannedHandler is a single keyword-triggered one-shot reply.
type cannedHandler struct {
	trigger dialog.Trigger
	respond func(m dialog.Messenger, msg dialog.Message) error
}

// CannedResponder answers messages the dialog engine declined: greetings,
// the dog picture, help, and a catch-all. First registered match wins, so
// the catch-all goes last.
type CannedResponder struct {
	handlers  []cannedHandler
	directory UserDirectory
	log       *slog.Logger
}

func NewCannedResponder(directory UserDirectory, log *slog.Logger) *CannedResponder {
	c := &CannedResponder{
		directory: directory,
		log:       log.With(sl.Module("bot.canned")),
	}

	anywhere := []dialog.ContextKind{dialog.KindDirectMessage, dialog.KindDirectMention, dialog.KindMention}

	c.handlers = []cannedHandler{
		{
			trigger: dialog.Trigger{Keywords: []string{"hello", "hi", "howdy", "whatsup"}, Contexts: anywhere},
			respond: c.greet,
		},
		{
			trigger: dialog.Trigger{
				Keywords: []string{"dog"},
				Contexts: []dialog.ContextKind{dialog.KindDirectMessage, dialog.KindDirectMention},
			},
			respond: func(m dialog.Messenger, msg dialog.Message) error {
				if err := m.SendText(msg.ChatID, "You requested a dog."); err != nil {
					return err
				}
				return m.SendAttachment(msg.ChatID, entity.Attachment{
					Fallback: "To be useful, I need you to invite me in a channel.",
					Title:    "Magic Carpet Dog",
					Text:     "Be happy ",
					Color:    "#FF5733",
					ImageURL: "https://media.giphy.com/media/yXBqba0Zx8S4/giphy.gif",
				})
			},
		},
		{
			trigger: dialog.Trigger{Keywords: []string{"help"}, Contexts: anywhere},
			respond: func(m dialog.Messenger, msg dialog.Message) error {
				return m.SendText(msg.ChatID, "Hello there. I see you need some assistance! I can provide restaurant recommendations near you. I can also talk about the weather!")
			},
		},
		{
			// Catch-all: announce presence whenever addressed.
			trigger: dialog.Trigger{Keywords: []string{""}, Contexts: anywhere},
			respond: func(m dialog.Messenger, msg dialog.Message) error {
				return m.SendText(msg.ChatID, "what do you need?")
			},
		},
	}

	return c
}

// Respond runs the first handler whose trigger matches. It reports whether
// any handler fired.
func (c *CannedResponder) Respond(m dialog.Messenger, msg dialog.Message) (bool, error) {
	for _, h := range c.handlers {
		if !h.trigger.Matches(msg.Text, msg.Kind) {
			continue
		}
		return true, h.respond(m, msg)
	}
	return false, nil
}

func (c *CannedResponder) greet(m dialog.Messenger, msg dialog.Message) error {
	if c.directory != nil {
		if name, err := c.directory.DisplayName(msg.UserID); err == nil && name != "" {
			return m.SendText(msg.ChatID, fmt.Sprintf("Hello, %s!", name))
		}
	}
	return m.SendText(msg.ChatID, "Hello there!")
}
