package bot

import (
	"time"

	"FoodScout/bot/dialog"
	"FoodScout/entity"
)

// recordingMessenger decorates a dialog.Messenger, reporting every outbound
// message to the transcript listener.
type recordingMessenger struct {
	dialog.Messenger
	listener dialog.TranscriptListener
	userID   string
}

func recordOutbound(m dialog.Messenger, listener dialog.TranscriptListener, userID string) dialog.Messenger {
	if listener == nil {
		return m
	}
	return &recordingMessenger{Messenger: m, listener: listener, userID: userID}
}

func (r *recordingMessenger) SendText(chatID, text string) error {
	err := r.Messenger.SendText(chatID, text)
	if err == nil {
		r.listener.RecordChatMessage(entity.ChatMessage{
			UserID:    r.userID,
			ChatID:    chatID,
			Direction: "outgoing",
			Text:      text,
			CreatedAt: time.Now(),
		})
	}
	return err
}

func (r *recordingMessenger) SendAttachment(chatID string, att entity.Attachment) error {
	err := r.Messenger.SendAttachment(chatID, att)
	if err == nil {
		r.listener.RecordChatMessage(entity.ChatMessage{
			UserID:    r.userID,
			ChatID:    chatID,
			Direction: "outgoing",
			Text:      att.Fallback,
			CreatedAt: time.Now(),
		})
	}
	return err
}
