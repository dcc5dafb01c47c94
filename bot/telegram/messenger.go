package telegram

import (
	"fmt"
	"strconv"

	"FoodScout/bot/dialog"
	"FoodScout/entity"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

// TelegramAPI defines the Telegram bot methods needed by the messenger.
// This avoids importing the concrete bot type and keeps the messenger
// testable.
type TelegramAPI interface {
	SendMessage(chatId int64, text string, opts *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error)
	SendPhoto(chatId int64, photo tgbotapi.InputFileOrString, opts *tgbotapi.SendPhotoOpts) (*tgbotapi.Message, error)
	SendChatAction(chatId int64, action string, opts *tgbotapi.SendChatActionOpts) (bool, error)
}

// Messenger implements dialog.Messenger for Telegram.
type Messenger struct {
	api TelegramAPI
}

func NewMessenger(api TelegramAPI) *Messenger {
	return &Messenger{api: api}
}

func (m *Messenger) SendText(chatID, text string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return err
	}
	_, err = m.api.SendMessage(id, text, nil)
	return err
}

// SendAttachment sends the image by URL with the title and text as caption.
// If Telegram refuses the photo the Fallback line goes out as plain text.
func (m *Messenger) SendAttachment(chatID string, att entity.Attachment) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return err
	}

	caption := att.Title
	if att.Text != "" {
		caption = fmt.Sprintf("%s\n%s", att.Title, att.Text)
	}

	_, err = m.api.SendPhoto(id, tgbotapi.InputFileByURL(att.ImageURL), &tgbotapi.SendPhotoOpts{
		Caption: caption,
	})
	if err != nil && att.Fallback != "" {
		_, err = m.api.SendMessage(id, att.Fallback, nil)
	}
	return err
}

func (m *Messenger) SendTyping(chatID string) error {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return err
	}
	_, err = m.api.SendChatAction(id, "typing", nil)
	return err
}

var _ dialog.Messenger = (*Messenger)(nil)
