package yelp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"FoodScout/entity"
	"FoodScout/internal/config"
	"FoodScout/internal/lib/sl"
	"FoodScout/internal/metrics"
)

// requestTimeout bounds every provider call so a stalled connection cannot
// hang a conversation.
const requestTimeout = 10 * time.Second

// Service queries the Yelp-style business-search API.
type Service struct {
	ApiKey  string
	BaseURL string
	Limit   int
	Log     *slog.Logger
}

func NewService(conf *config.Config, logger *slog.Logger) *Service {
	if conf.Yelp.ApiKey == "" {
		return nil
	}
	return &Service{
		ApiKey:  conf.Yelp.ApiKey,
		BaseURL: conf.Yelp.BaseURL,
		Limit:   conf.Yelp.Limit,
		Log:     logger.With(sl.Module("yelp service")),
	}
}

// Search runs a business search for a term near a location. Transport,
// status, and decoding failures are counted in the provider-error metric and
// returned as plain errors for the dialog layer to wrap.
func (r *Service) Search(ctx context.Context, term, location string) ([]entity.Business, error) {
	query := url.Values{}
	query.Set("term", term)
	query.Set("location", location)
	if r.Limit > 0 {
		query.Set("limit", strconv.Itoa(r.Limit))
	}
	searchURL := fmt.Sprintf("%s/businesses/search?%s", r.BaseURL, query.Encode())

	// Create request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, searchError("failed to create request: %v", err)
	}

	// Add headers
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.ApiKey))
	req.Header.Set("Content-Type", "application/json")

	// Send request
	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, searchError("failed to send request: %v", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	// Handle response
	if resp.StatusCode != http.StatusOK {
		r.Log.With(
			slog.Int("status", resp.StatusCode),
			slog.String("term", term),
			slog.String("location", location),
		).Error("invalid response code")
		return nil, searchError("request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, searchError("failed to read response body: %v", err)
	}

	response, err := ParseSearchResponse(body)
	if err != nil {
		return nil, searchError("failed to parse response: %v", err)
	}

	r.Log.With(
		slog.String("term", term),
		slog.String("location", location),
		slog.Int("businesses", len(response.Businesses)),
	).Debug("business search")

	return response.Businesses, nil
}

// searchError counts a failed provider call and formats the error.
func searchError(format string, args ...any) error {
	metrics.ProviderErrors.Inc()
	return fmt.Errorf(format, args...)
}
