package weather

import (
	"FoodScout/bot/dialog"
)

const Name dialog.DialogName = "weather"

// Step names
const (
	StepOpener    dialog.StepName = "opener"
	StepSunscreen dialog.StepName = "sunscreen"
	StepGoodbye   dialog.StepName = "goodbye"
)

// Dialog is a scripted bit of small talk about the weather. Every reply is
// accepted; the bot just wants to chat.
type Dialog struct {
	trigger dialog.Trigger
	steps   map[dialog.StepName]dialog.Step
}

func New() *Dialog {
	d := &Dialog{
		trigger: dialog.Trigger{
			Keywords: []string{"weather", "sun", "rain", "cloud", "forecast"},
			Contexts: []dialog.ContextKind{dialog.KindDirectMessage, dialog.KindDirectMention},
		},
		steps: make(map[dialog.StepName]dialog.Step),
	}

	d.steps[StepOpener] = &chatterStep{
		name:   StepOpener,
		prompt: "The weather is nice today, isn't it?",
		ack:    "I just love seeing the sun!",
		next:   StepSunscreen,
	}
	d.steps[StepSunscreen] = &chatterStep{
		name:   StepSunscreen,
		prompt: "Make sure to put on sunscreen!",
		ack:    "It would be a shame to get burnt",
		next:   StepGoodbye,
	}
	d.steps[StepGoodbye] = &chatterStep{
		name:   StepGoodbye,
		prompt: "Enjoy your day, my friend.",
		ack:    "Talk to you soon!",
		done:   true,
	}

	return d
}

func (d *Dialog) Name() dialog.DialogName { return Name }

func (d *Dialog) Matches(text string, kind dialog.ContextKind) bool {
	return d.trigger.Matches(text, kind)
}

func (d *Dialog) EntryStep() dialog.Step { return d.steps[StepOpener] }

func (d *Dialog) Step(name dialog.StepName) (dialog.Step, bool) {
	step, ok := d.steps[name]
	return step, ok
}
