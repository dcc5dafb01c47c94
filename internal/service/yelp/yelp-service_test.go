package yelp

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"FoodScout/internal/config"
	"FoodScout/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(baseURL string) *Service {
	return &Service{
		ApiKey:  "test-key",
		BaseURL: baseURL,
		Limit:   5,
		Log:     slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
}

func TestNewServiceRequiresApiKey(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	assert.Nil(t, NewService(&config.Config{}, log))

	conf := &config.Config{}
	conf.Yelp.ApiKey = "key"
	conf.Yelp.BaseURL = "https://api.yelp.com/v3"
	assert.NotNil(t, NewService(conf, log))
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/businesses/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "sushi", r.URL.Query().Get("term"))
		assert.Equal(t, "Boston", r.URL.Query().Get("location"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"businesses": [
				{"name": "Sakura", "snippet_text": "Great rolls", "rating": 4.5},
				{"name": "Wasabi", "snippet_text": "Decent", "rating": 3.0}
			],
			"total": 2
		}`))
	}))
	defer srv.Close()

	businesses, err := testService(srv.URL).Search(context.Background(), "sushi", "Boston")
	require.NoError(t, err)

	require.Len(t, businesses, 2)
	assert.Equal(t, "Sakura", businesses[0].Name)
	assert.Equal(t, "Great rolls", businesses[0].Snippet)
	assert.Equal(t, 4.5, businesses[0].Rating)
}

func TestSearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	before := testutil.ToFloat64(metrics.ProviderErrors)

	_, err := testService(srv.URL).Search(context.Background(), "sushi", "Boston")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ProviderErrors))
}

func TestSearchBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := testService(srv.URL).Search(context.Background(), "sushi", "Boston")
	require.Error(t, err)
}
