package restaurant_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"FoodScout/bot/dialog"
	"FoodScout/bot/dialog/restaurant"
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

type fakeSearch struct {
	term      string
	location  string
	results   []entity.Business
	err       error
	callCount int
}

func (f *fakeSearch) Search(ctx context.Context, term, location string) ([]entity.Business, error) {
	f.callCount++
	f.term = term
	f.location = location
	return f.results, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func startSession(t *testing.T, search restaurant.SearchService, m *fakeMessenger) *dialog.Session {
	t.Helper()
	d := restaurant.New(search, testLogger())
	s, err := dialog.NewSession(d, dialog.NewSessionKey("u1", "c1"), "c1", m, testLogger())
	require.NoError(t, err)
	return s
}

func TestDialogTriggers(t *testing.T) {
	d := restaurant.New(&fakeSearch{}, testLogger())

	assert.True(t, d.Matches("I am so hungry", dialog.KindDirectMessage))
	assert.True(t, d.Matches("feed me", dialog.KindDirectMention))
	assert.False(t, d.Matches("I am so hungry", dialog.KindMention))
	assert.False(t, d.Matches("Hungry", dialog.KindDirectMessage)) // case-sensitive
	assert.False(t, d.Matches("hello", dialog.KindDirectMessage))
}

func TestEndToEndRecommendation(t *testing.T) {
	search := &fakeSearch{results: []entity.Business{
		{Name: "Sakura", Snippet: "Great rolls", Rating: 4.5},
		{Name: "Wasabi", Snippet: "Decent", Rating: 3.0},
		{Name: "Fish Hut", Snippet: "Meh", Rating: 2.0},
	}}
	m := &fakeMessenger{}
	s := startSession(t, search, m)

	assert.Equal(t, restaurant.StepFood, s.PendingStep())
	require.Equal(t, []string{"What type of food do you want?"}, m.sent)

	ctx := context.Background()
	require.NoError(t, s.Resume(ctx, "sushi"))
	assert.Equal(t, restaurant.StepRating, s.PendingStep())

	require.NoError(t, s.Resume(ctx, "3.0"))
	assert.Equal(t, restaurant.StepLocation, s.PendingStep())

	require.NoError(t, s.Resume(ctx, "Boston"))
	assert.True(t, s.Terminated())

	// The provider was queried once with the collected answers
	assert.Equal(t, 1, search.callCount)
	assert.Equal(t, "sushi", search.term)
	assert.Equal(t, "Boston", search.location)

	// Answers stored in visitation order
	assert.Equal(t, []dialog.Answer{
		{Step: restaurant.StepFood, Text: "sushi"},
		{Step: restaurant.StepRating, Text: "3.0"},
		{Step: restaurant.StepLocation, Text: "Boston"},
	}, s.Store().Entries())

	// Strictly-above filter: only Sakura (4.5 > 3.0) is reported
	var reports []string
	for _, text := range m.sent {
		if strings.HasPrefix(text, "Business name:") {
			reports = append(reports, text)
		}
	}
	require.Len(t, reports, 1)
	assert.Contains(t, reports[0], "Sakura")
	assert.Contains(t, reports[0], "Great rolls")

	// Full conversation shape, acknowledgements included
	assert.Equal(t, "Awesome.", m.sent[1])
	assert.Equal(t, "What minimum average rating can you handle?", m.sent[2])
	assert.Equal(t, "Ok.", m.sent[3])
	assert.Equal(t, "So where are you?", m.sent[4])
	assert.Equal(t, "Ok! Searching Yelp!", m.sent[5])
}

func TestNoResultsMessage(t *testing.T) {
	search := &fakeSearch{results: []entity.Business{
		{Name: "Wasabi", Rating: 3.0}, // equal is not above
	}}
	m := &fakeMessenger{}
	s := startSession(t, search, m)

	ctx := context.Background()
	require.NoError(t, s.Resume(ctx, "sushi"))
	require.NoError(t, s.Resume(ctx, "3.0"))
	require.NoError(t, s.Resume(ctx, "Boston"))

	last := m.sent[len(m.sent)-1]
	assert.Contains(t, last, "No sushi places rated above 3.0")
}

func TestInvalidRatingTerminates(t *testing.T) {
	search := &fakeSearch{}
	m := &fakeMessenger{}
	s := startSession(t, search, m)

	ctx := context.Background()
	require.NoError(t, s.Resume(ctx, "sushi"))

	err := s.Resume(ctx, "plenty")

	var ve *dialog.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, s.Terminated())
	assert.Equal(t, 0, search.callCount)

	// Exactly one failure message after the rating prompt
	last := m.sent[len(m.sent)-1]
	assert.Contains(t, last, "plenty")
}

func TestProviderFailure(t *testing.T) {
	search := &fakeSearch{err: fmt.Errorf("503 from provider")}
	m := &fakeMessenger{}
	s := startSession(t, search, m)

	ctx := context.Background()
	require.NoError(t, s.Resume(ctx, "sushi"))
	require.NoError(t, s.Resume(ctx, "4"))

	sentBefore := len(m.sent)
	err := s.Resume(ctx, "Boston")

	var pe *dialog.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.True(t, s.Terminated())

	// "Ok! Searching Yelp!" plus exactly one failure message, no reports
	require.Len(t, m.sent, sentBefore+2)
	assert.Contains(t, m.sent[len(m.sent)-1], "search service")
}
