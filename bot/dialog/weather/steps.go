package weather

import (
	"context"

	"FoodScout/bot/dialog"
)

// chatterStep says its line whatever the user replies, then moves on.
type chatterStep struct {
	name   dialog.StepName
	prompt string
	ack    string
	next   dialog.StepName
	done   bool
}

func (s *chatterStep) Name() dialog.StepName { return s.name }

func (s *chatterStep) Prompt() string { return s.prompt }

func (s *chatterStep) HandleReply(ctx context.Context, conv dialog.Responder, reply string, store *dialog.AnswerStore) dialog.StepResult {
	_ = conv.Say(s.ack)
	return dialog.StepResult{Answer: reply, Next: s.next, Done: s.done}
}
