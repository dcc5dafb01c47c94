package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"FoodScout/entity"
	"FoodScout/internal/lib/sl"

	"github.com/google/uuid"
)

// SessionKey identifies the conversation a session belongs to.
type SessionKey string

func NewSessionKey(userID, chatID string) SessionKey {
	return SessionKey(userID + "@" + chatID)
}

// Session is one live run of a dialog, bound to a single user and chat.
// It owns its AnswerStore, tracks the step awaiting a reply, and advances
// only through Resume. A session never revisits an earlier step on its own;
// only step handlers may branch, and a revisited step needs a distinct name
// to satisfy the append-only store.
//
// A session guards its own state: Resume holds the session mutex for the
// full step, so concurrent readers observe whole steps. The engine
// additionally serializes dispatch per conversation key, which keeps the
// replies of one conversation in delivery order.
type Session struct {
	id        string
	key       SessionKey
	chatID    string
	dialog    Dialog
	store     *AnswerStore
	messenger Messenger
	log       *slog.Logger

	mu         sync.Mutex
	pending    Step // nil once terminated
	lastActive time.Time
}

// NewSession starts a dialog run: it sends the entry step's prompt and leaves
// the session awaiting the first reply. If the prompt cannot be delivered the
// session is not created.
func NewSession(d Dialog, key SessionKey, chatID string, m Messenger, log *slog.Logger) (*Session, error) {
	entry := d.EntryStep()
	s := &Session{
		id:         uuid.NewString(),
		key:        key,
		chatID:     chatID,
		dialog:     d,
		store:      NewAnswerStore(),
		messenger:  m,
		log:        log.With(sl.Module("dialog.session"), slog.String("dialog", string(d.Name()))),
		pending:    entry,
		lastActive: time.Now(),
	}

	if err := m.SendText(chatID, entry.Prompt()); err != nil {
		return nil, fmt.Errorf("sending entry prompt: %w", err)
	}
	return s, nil
}

// Resume feeds the next reply to the pending step. On success the session
// either moves on (sending the next step's prompt) or terminates. On handler
// failure it sends exactly one explanatory message, terminates, and returns
// the error. Resuming a terminated session returns ErrSessionClosed and
// leaves the answer store untouched.
func (s *Session) Resume(ctx context.Context, reply string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return ErrSessionClosed
	}
	s.lastActive = time.Now()

	step := s.pending
	result := step.HandleReply(ctx, s, reply, s.store)
	if result.Err != nil {
		s.fail(step, result.Err)
		return result.Err
	}

	if err := s.store.Put(step.Name(), result.Answer); err != nil {
		// Store misuse is a dialog wiring bug, fatal to the session.
		s.fail(step, err)
		return err
	}

	if result.Done {
		s.pending = nil
		return nil
	}

	next, ok := s.dialog.Step(result.Next)
	if !ok {
		err := fmt.Errorf("dialog %s: step %s selected unknown step %s", s.dialog.Name(), step.Name(), result.Next)
		s.fail(step, err)
		return err
	}

	if err := s.messenger.SendText(s.chatID, next.Prompt()); err != nil {
		s.pending = nil
		return fmt.Errorf("sending prompt for %s: %w", next.Name(), err)
	}
	s.pending = next
	return nil
}

// fail terminates the session and surfaces one user-visible message.
// Called with the session mutex held.
func (s *Session) fail(step Step, err error) {
	s.pending = nil

	var ve *ValidationError
	var pe *ProviderError
	text := "Something went wrong on my side. Let's start over later."
	switch {
	case errors.As(err, &ve):
		text = ve.UserMessage()
	case errors.As(err, &pe):
		text = "Sorry, I couldn't reach the search service. Try again in a bit."
	}

	if sendErr := s.messenger.SendText(s.chatID, text); sendErr != nil {
		s.log.Warn("sending failure message", sl.Err(sendErr))
	}
	s.log.Debug("session failed",
		slog.String("step", string(step.Name())),
		sl.Err(err),
	)
}

// Say implements Responder for the pending step's handler.
func (s *Session) Say(text string) error {
	return s.messenger.SendText(s.chatID, text)
}

// SayAttachment implements Responder for the pending step's handler.
func (s *Session) SayAttachment(att entity.Attachment) error {
	return s.messenger.SendAttachment(s.chatID, att)
}

// Terminated reports whether the session has finished, by completion,
// failure, or eviction.
func (s *Session) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending == nil
}

// Close forcibly terminates the session without sending anything.
func (s *Session) Close() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// CloseIfIdle terminates the session if its last activity predates cutoff.
// A session with a resume in flight counts as active and is left alone.
func (s *Session) CloseIfIdle(cutoff time.Time) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()

	if s.pending == nil || s.lastActive.After(cutoff) {
		return false
	}
	s.pending = nil
	return true
}

func (s *Session) ID() string      { return s.id }
func (s *Session) Key() SessionKey { return s.key }

func (s *Session) DialogName() DialogName { return s.dialog.Name() }

// PendingStep returns the name of the step awaiting a reply, or "" when the
// session is terminated.
func (s *Session) PendingStep() StepName {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return ""
	}
	return s.pending.Name()
}

// LastActive returns the time of the last resume (or creation).
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Snapshot returns a point-in-time view of the session for the ops API.
func (s *Session) Snapshot() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := StepName("")
	if s.pending != nil {
		step = s.pending.Name()
	}
	return SessionInfo{
		ID:         s.id,
		Key:        string(s.key),
		Dialog:     string(s.dialog.Name()),
		Step:       string(step),
		Answers:    s.store.Len(),
		LastActive: s.lastActive,
	}
}

// Store exposes the collected answers. Read it from the pending step's
// handler or after termination; it is not guarded against an in-flight
// resume.
func (s *Session) Store() *AnswerStore {
	return s.store
}

var _ Responder = (*Session)(nil)
