package dialog

import "fmt"

// Answer is one captured reply, keyed by the step that collected it.
type Answer struct {
	Step StepName
	Text string
}

// AnswerStore holds the replies collected by one session, in the order the
// steps ran. It is append-only; entries are immutable once stored. Each store
// belongs to exactly one session and is discarded with it.
type AnswerStore struct {
	order   []StepName
	answers map[StepName]string
}

func NewAnswerStore() *AnswerStore {
	return &AnswerStore{
		answers: make(map[StepName]string),
	}
}

// Put records the answer captured by a step. Every step may answer at most
// once; a dialog that re-enters a step must give the revisit a distinct name.
func (s *AnswerStore) Put(step StepName, text string) error {
	if _, ok := s.answers[step]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateAnswer, step)
	}
	s.answers[step] = text
	s.order = append(s.order, step)
	return nil
}

// Get returns the answer captured by the named step.
func (s *AnswerStore) Get(step StepName) (string, error) {
	text, ok := s.answers[step]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrAnswerNotFound, step)
	}
	return text, nil
}

// Len reports how many answers have been recorded.
func (s *AnswerStore) Len() int {
	return len(s.order)
}

// Entries returns the recorded answers in step execution order.
func (s *AnswerStore) Entries() []Answer {
	entries := make([]Answer, 0, len(s.order))
	for _, step := range s.order {
		entries = append(entries, Answer{Step: step, Text: s.answers[step]})
	}
	return entries
}
