package bot

import (
	"fmt"
	"log/slog"
	"os"
	"testing"

	"FoodScout/bot/dialog"
	"FoodScout/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessenger struct {
	sent        []string
	attachments []entity.Attachment
}

func (m *fakeMessenger) SendText(chatID, text string) error {
	m.sent = append(m.sent, text)
	return nil
}

func (m *fakeMessenger) SendAttachment(chatID string, att entity.Attachment) error {
	m.attachments = append(m.attachments, att)
	return nil
}

func (m *fakeMessenger) SendTyping(chatID string) error { return nil }

type fakeDirectory struct {
	names map[string]string
}

func (d *fakeDirectory) DisplayName(userID string) (string, error) {
	name, ok := d.names[userID]
	if !ok {
		return "", fmt.Errorf("not found")
	}
	return name, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func dm(text string) dialog.Message {
	return dialog.Message{Text: text, UserID: "u1", ChatID: "c1", Kind: dialog.KindDirectMessage}
}

func TestGreetingUsesDisplayName(t *testing.T) {
	m := &fakeMessenger{}
	c := NewCannedResponder(&fakeDirectory{names: map[string]string{"u1": "Edwards"}}, testLogger())

	handled, err := c.Respond(m, dm("hello there"))
	require.NoError(t, err)
	assert.True(t, handled)
	require.Equal(t, []string{"Hello, Edwards!"}, m.sent)
}

func TestGreetingFallsBackWhenLookupFails(t *testing.T) {
	m := &fakeMessenger{}
	c := NewCannedResponder(&fakeDirectory{}, testLogger())

	handled, err := c.Respond(m, dm("hi"))
	require.NoError(t, err)
	assert.True(t, handled)
	require.Equal(t, []string{"Hello there!"}, m.sent)
}

func TestDogReplySendsAttachment(t *testing.T) {
	m := &fakeMessenger{}
	c := NewCannedResponder(nil, testLogger())

	handled, err := c.Respond(m, dm("dog please"))
	require.NoError(t, err)
	assert.True(t, handled)

	require.Equal(t, []string{"You requested a dog."}, m.sent)
	require.Len(t, m.attachments, 1)
	assert.Equal(t, "Magic Carpet Dog", m.attachments[0].Title)
	assert.NotEmpty(t, m.attachments[0].ImageURL)
	assert.NotEmpty(t, m.attachments[0].Fallback)
}

func TestHelpReply(t *testing.T) {
	m := &fakeMessenger{}
	c := NewCannedResponder(nil, testLogger())

	handled, err := c.Respond(m, dm("help"))
	require.NoError(t, err)
	assert.True(t, handled)
	require.Len(t, m.sent, 1)
	assert.Contains(t, m.sent[0], "restaurant recommendations")
}

func TestCatchAllAnnouncesPresence(t *testing.T) {
	m := &fakeMessenger{}
	c := NewCannedResponder(nil, testLogger())

	handled, err := c.Respond(m, dm("gibberish nobody asked about"))
	require.NoError(t, err)
	assert.True(t, handled)
	require.Equal(t, []string{"what do you need?"}, m.sent)
}

func TestAmbientGroupChatterIsIgnored(t *testing.T) {
	m := &fakeMessenger{}
	c := NewCannedResponder(nil, testLogger())

	msg := dm("hello everyone")
	msg.Kind = dialog.KindAmbient

	handled, err := c.Respond(m, msg)
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Empty(t, m.sent)
}

func TestFirstRegisteredHandlerWins(t *testing.T) {
	m := &fakeMessenger{}
	c := NewCannedResponder(&fakeDirectory{names: map[string]string{"u1": "Edwards"}}, testLogger())

	// "hello" outranks the catch-all
	handled, err := c.Respond(m, dm("hello, got a dog?"))
	require.NoError(t, err)
	assert.True(t, handled)
	require.Equal(t, []string{"Hello, Edwards!"}, m.sent)
	assert.Empty(t, m.attachments)
}
