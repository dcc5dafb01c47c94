package dialog_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"FoodScout/bot/dialog"
	"FoodScout/entity"
)

// fakeMessenger records every outbound message.
type fakeMessenger struct {
	sent        []string
	attachments []entity.Attachment
	failSend    bool
}

func (m *fakeMessenger) SendText(chatID, text string) error {
	if m.failSend {
		return fmt.Errorf("transport down")
	}
	m.sent = append(m.sent, text)
	return nil
}

func (m *fakeMessenger) SendAttachment(chatID string, att entity.Attachment) error {
	m.attachments = append(m.attachments, att)
	return nil
}

func (m *fakeMessenger) SendTyping(chatID string) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// scriptedStep is a configurable test step.
type scriptedStep struct {
	name   dialog.StepName
	prompt string
	handle func(ctx context.Context, conv dialog.Responder, reply string, store *dialog.AnswerStore) dialog.StepResult
}

func (s *scriptedStep) Name() dialog.StepName { return s.name }
func (s *scriptedStep) Prompt() string        { return s.prompt }

func (s *scriptedStep) HandleReply(ctx context.Context, conv dialog.Responder, reply string, store *dialog.AnswerStore) dialog.StepResult {
	return s.handle(ctx, conv, reply, store)
}

// scriptedDialog is a configurable test dialog.
type scriptedDialog struct {
	name    dialog.DialogName
	trigger dialog.Trigger
	entry   dialog.StepName
	steps   map[dialog.StepName]dialog.Step
}

func (d *scriptedDialog) Name() dialog.DialogName { return d.name }

func (d *scriptedDialog) Matches(text string, kind dialog.ContextKind) bool {
	return d.trigger.Matches(text, kind)
}

func (d *scriptedDialog) EntryStep() dialog.Step { return d.steps[d.entry] }

func (d *scriptedDialog) Step(name dialog.StepName) (dialog.Step, bool) {
	step, ok := d.steps[name]
	return step, ok
}

// twoStepDialog builds a color → animal quiz. A reply of "bad" at either step
// fails validation.
func twoStepDialog() *scriptedDialog {
	capture := func(name dialog.StepName, next dialog.StepName, done bool) *scriptedStep {
		return &scriptedStep{
			name:   name,
			prompt: fmt.Sprintf("Favourite %s?", name),
			handle: func(ctx context.Context, conv dialog.Responder, reply string, store *dialog.AnswerStore) dialog.StepResult {
				if reply == "bad" {
					return dialog.StepResult{Err: &dialog.ValidationError{Step: name, Reason: "that won't do"}}
				}
				return dialog.StepResult{Answer: reply, Next: next, Done: done}
			},
		}
	}

	return &scriptedDialog{
		name:    "quiz",
		trigger: dialog.Trigger{Keywords: []string{"quiz"}, Contexts: []dialog.ContextKind{dialog.KindDirectMessage}},
		entry:   "color",
		steps: map[dialog.StepName]dialog.Step{
			"color":  capture("color", "animal", false),
			"animal": capture("animal", "", true),
		},
	}
}
