package dialog

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed is returned by Resume on a terminated session.
	ErrSessionClosed = errors.New("session closed")

	// ErrDuplicateAnswer is returned when a step name already holds an answer.
	ErrDuplicateAnswer = errors.New("answer already recorded for step")

	// ErrAnswerNotFound is returned when no answer exists for a step name.
	ErrAnswerNotFound = errors.New("no answer recorded for step")
)

// ValidationError reports a reply the pending step could not make sense of.
// It terminates the session with a single explanatory message.
type ValidationError struct {
	Step   StepName
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %s: invalid reply: %s", e.Step, e.Reason)
}

// UserMessage is the text shown in the conversation when the error surfaces.
func (e *ValidationError) UserMessage() string {
	return fmt.Sprintf("Sorry, %s. Ask me again when you're ready.", e.Reason)
}

// ProviderError wraps a failed call to an external provider made by a step
// handler. It terminates the session with a single explanatory message.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
