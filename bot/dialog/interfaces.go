package dialog

import (
	"context"
	"strings"

	"FoodScout/entity"
)

// StepName is a unique identifier for a step within a dialog.
type StepName string

// DialogName is a unique identifier for a dialog.
type DialogName string

// ContextKind classifies where an inbound message was seen.
type ContextKind string

const (
	KindDirectMessage ContextKind = "direct_message"
	KindDirectMention ContextKind = "direct_mention"
	KindMention       ContextKind = "mention"
	// KindAmbient marks group chatter that does not address the bot. It never
	// triggers a dialog but still routes as a reply to an active session.
	KindAmbient ContextKind = "ambient"
)

// Message is a normalized inbound message from the transport.
type Message struct {
	Text   string
	UserID string
	ChatID string
	Kind   ContextKind
}

// StepResult is the outcome of handling a reply in a step.
type StepResult struct {
	Answer string   // persisted under the step's name on success
	Next   StepName // step to run next; ignored when Done is set
	Done   bool     // the dialog is complete
	Err    error    // terminates the session; see ValidationError, ProviderError
}

// Responder lets a step handler speak into its own conversation. Prompts are
// sent by the session; handlers only use this for interstitial lines and
// result reports.
type Responder interface {
	Say(text string) error
	SayAttachment(att entity.Attachment) error
}

// Step is a single prompt-and-capture unit of a dialog. Steps are stateless
// values shared by every session of their dialog; all per-session data lives
// in the AnswerStore.
type Step interface {
	Name() StepName

	// Prompt returns the question this step asks. It must be pure.
	Prompt() string

	// HandleReply consumes the user's reply. The store is readable for
	// answers captured by earlier steps; the returned Answer is persisted
	// by the session under this step's name.
	HandleReply(ctx context.Context, conv Responder, reply string, store *AnswerStore) StepResult
}

// Dialog is an immutable scripted flow of steps, registered at startup.
type Dialog interface {
	Name() DialogName

	// Matches reports whether an inbound message should start this dialog:
	// any trigger keyword appears in the text (case-sensitive substring) and
	// the context kind is allowed.
	Matches(text string, kind ContextKind) bool

	EntryStep() Step

	// Step looks up a step by name, for branching between steps.
	Step(name StepName) (Step, bool)
}

// Messenger is the transport adapter used for outbound messages.
type Messenger interface {
	SendText(chatID, text string) error
	SendAttachment(chatID string, att entity.Attachment) error
	SendTyping(chatID string) error
}

// TranscriptListener is notified of every message the bot receives or sends.
// This feeds transcript storage and the websocket monitor feed without
// creating circular imports between bot packages and the application core.
type TranscriptListener interface {
	RecordChatMessage(msg entity.ChatMessage)
}

// Trigger is the keyword/context predicate that starts a dialog.
type Trigger struct {
	Keywords []string
	Contexts []ContextKind
}

// Matches reports whether any keyword appears in text (case-sensitive
// substring) and kind is one of the allowed contexts. An empty keyword
// matches every message.
func (t Trigger) Matches(text string, kind ContextKind) bool {
	allowed := false
	for _, k := range t.Contexts {
		if k == kind {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	for _, kw := range t.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
