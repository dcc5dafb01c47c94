package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage represents a single message in a bot conversation transcript.
type ChatMessage struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	ChatID    string             `json:"chat_id" bson:"chat_id"`
	Direction string             `json:"direction" bson:"direction"` // "incoming" | "outgoing"
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Attachment is a structured reply with an optional image.
type Attachment struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	Color    string `json:"color"`
	ImageURL string `json:"image_url"`
	Fallback string `json:"fallback"`
}
