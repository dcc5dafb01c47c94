package restaurant

import (
	"context"
	"log/slog"

	"FoodScout/bot/dialog"
	"FoodScout/entity"
	"FoodScout/internal/lib/sl"
)

const Name dialog.DialogName = "restaurant"

// Step names
const (
	StepFood     dialog.StepName = "food"
	StepRating   dialog.StepName = "rating"
	StepLocation dialog.StepName = "location"
)

// SearchService is the business-search provider boundary used by the final
// step.
type SearchService interface {
	Search(ctx context.Context, term, location string) ([]entity.Business, error)
}

// Dialog is the restaurant-recommendation flow: ask for a food type, a
// minimum average rating, and a location, then search and report businesses
// above the rating bar.
type Dialog struct {
	trigger dialog.Trigger
	steps   map[dialog.StepName]dialog.Step
}

func New(search SearchService, log *slog.Logger) *Dialog {
	d := &Dialog{
		trigger: dialog.Trigger{
			Keywords: []string{"hungry", "food", "eat", "restaurant", "feed"},
			Contexts: []dialog.ContextKind{dialog.KindDirectMessage, dialog.KindDirectMention},
		},
		steps: make(map[dialog.StepName]dialog.Step),
	}

	d.steps[StepFood] = &FoodStep{}
	d.steps[StepRating] = &RatingStep{}
	d.steps[StepLocation] = &LocationStep{search: search, log: log.With(sl.Module("dialog.restaurant"))}

	return d
}

func (d *Dialog) Name() dialog.DialogName { return Name }

func (d *Dialog) Matches(text string, kind dialog.ContextKind) bool {
	return d.trigger.Matches(text, kind)
}

func (d *Dialog) EntryStep() dialog.Step { return d.steps[StepFood] }

func (d *Dialog) Step(name dialog.StepName) (dialog.Step, bool) {
	step, ok := d.steps[name]
	return step, ok
}
