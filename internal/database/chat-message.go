package repository

import (
	"time"

	"FoodScout/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveChatMessage appends one message to the conversation transcript.
func (m *MongoDB) SaveChatMessage(msg entity.ChatMessage) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(transcriptsCollection)

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	_, err = collection.InsertOne(m.ctx, msg)
	return err
}

// LoadChatHistory returns the most recent transcript messages for a chat,
// newest first.
func (m *MongoDB) LoadChatHistory(userID, chatID string, limit int64) ([]entity.ChatMessage, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(transcriptsCollection)

	filter := bson.D{{Key: "user_id", Value: userID}, {Key: "chat_id", Value: chatID}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := collection.Find(m.ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(m.ctx)

	var messages []entity.ChatMessage
	if err := cursor.All(m.ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
