package dialog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"FoodScout/internal/lib/sl"
	"FoodScout/internal/metrics"
)

// Engine routes inbound messages into dialogs. Each message either resumes
// the active session for its (user, chat) key, starts a new session on the
// first registered dialog whose trigger matches, or is left untouched for
// the canned responders.
//
// Dispatch serializes per conversation key, never globally: a step handler
// may sit in a slow provider call, and that must only ever stall its own
// conversation. The registry mutex guards the maps alone and is never held
// across a handler.
type Engine struct {
	mu       sync.Mutex
	dialogs  []Dialog // registration order is the tie-break
	sessions map[SessionKey]*Session
	locks    map[SessionKey]*keyLock
	log      *slog.Logger
}

// keyLock serializes dispatch for one conversation key, keeping replies in
// delivery order. Refcounted so the map does not grow with every user ever
// seen.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewEngine(log *slog.Logger) *Engine {
	return &Engine{
		sessions: make(map[SessionKey]*Session),
		locks:    make(map[SessionKey]*keyLock),
		log:      log.With(sl.Module("dialog.engine")),
	}
}

// Register adds a dialog. Dialogs registered earlier win trigger ties;
// overlapping triggers across dialogs are a configuration smell, not an
// enforced error.
func (e *Engine) Register(d Dialog) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dialogs = append(e.dialogs, d)
	e.log.Info("registered dialog", slog.String("dialog", string(d.Name())))
}

// Dispatch handles one inbound message. It reports whether the message was
// consumed by a dialog; unhandled messages may still be answered by canned
// keyword handlers outside the engine.
func (e *Engine) Dispatch(ctx context.Context, m Messenger, msg Message) (bool, error) {
	metrics.MessagesDispatched.Inc()

	key := NewSessionKey(msg.UserID, msg.ChatID)

	l := e.acquireKey(key)
	defer e.releaseKey(key, l)

	e.mu.Lock()
	s, ok := e.sessions[key]
	dialogs := e.dialogs
	e.mu.Unlock()

	if ok {
		err := s.Resume(ctx, msg.Text)
		if errors.Is(err, ErrSessionClosed) {
			// Stale registry entry (idle eviction raced this message); drop
			// it and let the message fall through to trigger matching below.
			e.removeSession(key, s)
		} else {
			if s.Terminated() {
				e.removeSession(key, s)
				if err != nil {
					metrics.SessionsFailed.WithLabelValues(string(s.DialogName())).Inc()
				} else {
					metrics.SessionsCompleted.WithLabelValues(string(s.DialogName())).Inc()
				}
				e.log.Debug("session ended",
					slog.String("dialog", string(s.DialogName())),
					slog.String("session_id", s.ID()),
				)
			}
			return true, err
		}
	}

	for _, d := range dialogs {
		if !d.Matches(msg.Text, msg.Kind) {
			continue
		}

		s, err := NewSession(d, key, msg.ChatID, m, e.log)
		if err != nil {
			return true, err
		}
		e.mu.Lock()
		e.sessions[key] = s
		e.mu.Unlock()
		metrics.SessionsStarted.WithLabelValues(string(d.Name())).Inc()

		e.log.Info("session started",
			slog.String("dialog", string(d.Name())),
			slog.String("session_id", s.ID()),
			slog.String("user_id", msg.UserID),
			slog.String("chat_id", msg.ChatID),
		)
		return true, nil
	}

	return false, nil
}

// acquireKey takes the dispatch lock for a conversation key, creating it on
// first use.
func (e *Engine) acquireKey(key SessionKey) *keyLock {
	e.mu.Lock()
	l, ok := e.locks[key]
	if !ok {
		l = &keyLock{}
		e.locks[key] = l
	}
	l.refs++
	e.mu.Unlock()

	l.mu.Lock()
	return l
}

// releaseKey releases the dispatch lock and discards it once nobody waits.
func (e *Engine) releaseKey(key SessionKey, l *keyLock) {
	l.mu.Unlock()

	e.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(e.locks, key)
	}
	e.mu.Unlock()
}

// removeSession drops a registry entry, tolerating a concurrent replacement.
func (e *Engine) removeSession(key SessionKey, s *Session) {
	e.mu.Lock()
	if e.sessions[key] == s {
		delete(e.sessions, key)
	}
	e.mu.Unlock()
}

// EvictIdle closes and removes sessions idle for longer than maxIdle.
// Eviction is silent; the user can start the dialog again with its trigger.
func (e *Engine) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	e.mu.Lock()
	candidates := make(map[SessionKey]*Session, len(e.sessions))
	for key, s := range e.sessions {
		candidates[key] = s
	}
	e.mu.Unlock()

	evicted := 0
	for key, s := range candidates {
		if !s.CloseIfIdle(cutoff) {
			continue
		}
		e.removeSession(key, s)
		metrics.SessionsExpired.WithLabelValues(string(s.DialogName())).Inc()
		e.log.Info("session expired",
			slog.String("dialog", string(s.DialogName())),
			slog.String("session_id", s.ID()),
		)
		evicted++
	}
	return evicted
}

// Run sweeps idle sessions until ctx is done. Call in a goroutine.
func (e *Engine) Run(ctx context.Context, sweepEvery, maxIdle time.Duration) {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.EvictIdle(maxIdle)
		}
	}
}

// SessionInfo is a read-only snapshot of an active session for the ops API.
type SessionInfo struct {
	ID         string    `json:"id"`
	Key        string    `json:"key"`
	Dialog     string    `json:"dialog"`
	Step       string    `json:"step"`
	Answers    int       `json:"answers"`
	LastActive time.Time `json:"last_active"`
}

// Active lists the sessions currently awaiting a reply.
func (e *Engine) Active() []SessionInfo {
	e.mu.Lock()
	snapshot := make([]*Session, 0, len(e.sessions))
	for _, s := range e.sessions {
		snapshot = append(snapshot, s)
	}
	e.mu.Unlock()

	infos := make([]SessionInfo, 0, len(snapshot))
	for _, s := range snapshot {
		infos = append(infos, s.Snapshot())
	}
	return infos
}
