package weather_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"FoodScout/bot/dialog"
	"FoodScout/bot/dialog/weather"
	"FoodScout/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessenger struct {
	sent []string
}

func (m *fakeMessenger) SendText(chatID, text string) error {
	m.sent = append(m.sent, text)
	return nil
}

func (m *fakeMessenger) SendAttachment(chatID string, att entity.Attachment) error { return nil }
func (m *fakeMessenger) SendTyping(chatID string) error                            { return nil }

func TestWeatherTriggers(t *testing.T) {
	d := weather.New()

	assert.True(t, d.Matches("lovely weather today", dialog.KindDirectMessage))
	assert.True(t, d.Matches("will it rain?", dialog.KindDirectMention))
	assert.False(t, d.Matches("lovely weather today", dialog.KindMention))
	assert.False(t, d.Matches("hungry", dialog.KindDirectMessage))
}

func TestWeatherSmallTalk(t *testing.T) {
	m := &fakeMessenger{}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	s, err := dialog.NewSession(weather.New(), "u1@c1", "c1", m, log)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Resume(ctx, "sure is"))
	require.NoError(t, s.Resume(ctx, "will do"))
	require.NoError(t, s.Resume(ctx, "bye"))

	assert.True(t, s.Terminated())
	assert.Equal(t, 3, s.Store().Len())
	assert.Equal(t, []string{
		"The weather is nice today, isn't it?",
		"I just love seeing the sun!",
		"Make sure to put on sunscreen!",
		"It would be a shame to get burnt",
		"Enjoy your day, my friend.",
		"Talk to you soon!",
	}, m.sent)
}
