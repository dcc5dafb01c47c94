package dialog_test

import (
	"testing"

	"FoodScout/bot/dialog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerStorePutGet(t *testing.T) {
	store := dialog.NewAnswerStore()

	require.NoError(t, store.Put("food", "sushi"))

	got, err := store.Get("food")
	require.NoError(t, err)
	assert.Equal(t, "sushi", got)
}

func TestAnswerStoreDuplicate(t *testing.T) {
	store := dialog.NewAnswerStore()

	require.NoError(t, store.Put("food", "sushi"))

	err := store.Put("food", "ramen")
	require.ErrorIs(t, err, dialog.ErrDuplicateAnswer)

	// First answer is untouched
	got, err := store.Get("food")
	require.NoError(t, err)
	assert.Equal(t, "sushi", got)
}

func TestAnswerStoreNotFound(t *testing.T) {
	store := dialog.NewAnswerStore()

	_, err := store.Get("rating")
	require.ErrorIs(t, err, dialog.ErrAnswerNotFound)
}

func TestAnswerStoreOrder(t *testing.T) {
	store := dialog.NewAnswerStore()

	require.NoError(t, store.Put("food", "sushi"))
	require.NoError(t, store.Put("rating", "4"))
	require.NoError(t, store.Put("location", "Boston"))

	assert.Equal(t, 3, store.Len())
	assert.Equal(t, []dialog.Answer{
		{Step: "food", Text: "sushi"},
		{Step: "rating", Text: "4"},
		{Step: "location", Text: "Boston"},
	}, store.Entries())
}
