package restaurant

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"FoodScout/bot/dialog"
)

// FoodStep — ask what to eat. Any non-empty reply is accepted as a search
// term.
type FoodStep struct{}

func (s *FoodStep) Name() dialog.StepName { return StepFood }

func (s *FoodStep) Prompt() string { return "What type of food do you want?" }

func (s *FoodStep) HandleReply(ctx context.Context, conv dialog.Responder, reply string, store *dialog.AnswerStore) dialog.StepResult {
	if strings.TrimSpace(reply) == "" {
		return dialog.StepResult{Err: &dialog.ValidationError{
			Step:   StepFood,
			Reason: "I need a food type to search for",
		}}
	}

	_ = conv.Say("Awesome.")
	return dialog.StepResult{Answer: reply, Next: StepRating}
}

// RatingStep — ask for the minimum acceptable average rating. The reply must
// parse as a number; the raw text is what gets stored.
type RatingStep struct{}

func (s *RatingStep) Name() dialog.StepName { return StepRating }

func (s *RatingStep) Prompt() string { return "What minimum average rating can you handle?" }

func (s *RatingStep) HandleReply(ctx context.Context, conv dialog.Responder, reply string, store *dialog.AnswerStore) dialog.StepResult {
	if _, err := strconv.ParseFloat(strings.TrimSpace(reply), 64); err != nil {
		return dialog.StepResult{Err: &dialog.ValidationError{
			Step:   StepRating,
			Reason: fmt.Sprintf("%q doesn't look like a rating to me", reply),
		}}
	}

	_ = conv.Say("Ok.")
	return dialog.StepResult{Answer: reply, Next: StepLocation}
}

// LocationStep — ask where the user is, then run the search and report every
// business rated strictly above the collected minimum.
type LocationStep struct {
	search SearchService
	log    *slog.Logger
}

func (s *LocationStep) Name() dialog.StepName { return StepLocation }

func (s *LocationStep) Prompt() string { return "So where are you?" }

func (s *LocationStep) HandleReply(ctx context.Context, conv dialog.Responder, reply string, store *dialog.AnswerStore) dialog.StepResult {
	food, err := store.Get(StepFood)
	if err != nil {
		return dialog.StepResult{Err: err}
	}
	rawRating, err := store.Get(StepRating)
	if err != nil {
		return dialog.StepResult{Err: err}
	}
	minRating, err := strconv.ParseFloat(strings.TrimSpace(rawRating), 64)
	if err != nil {
		return dialog.StepResult{Err: &dialog.ValidationError{
			Step:   StepRating,
			Reason: fmt.Sprintf("%q doesn't look like a rating to me", rawRating),
		}}
	}

	_ = conv.Say("Ok! Searching Yelp!")

	businesses, err := s.search.Search(ctx, food, reply)
	if err != nil {
		return dialog.StepResult{Err: &dialog.ProviderError{Op: "business search", Err: err}}
	}

	reported := 0
	for _, b := range businesses {
		if b.Rating <= minRating {
			continue
		}
		_ = conv.Say(fmt.Sprintf("Business name: %s\nReview sample: %s\n- - - - - - - - - - - - - - - - - - -", b.Name, b.Snippet))
		reported++
	}
	if reported == 0 {
		_ = conv.Say(fmt.Sprintf("No %s places rated above %s near %s. Tough crowd!", food, strings.TrimSpace(rawRating), reply))
	}

	s.log.Debug("search reported",
		slog.String("term", food),
		slog.String("location", reply),
		slog.Int("results", len(businesses)),
		slog.Int("reported", reported),
	)

	return dialog.StepResult{Answer: reply, Done: true}
}
