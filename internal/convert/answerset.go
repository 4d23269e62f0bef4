package convert

import "strings"

// AnswerSet merges a primary answer with additional accepted answers into
// one ordered, deduplicated set. Dedup compares case-folded (the consumer
// matches case-insensitively) but the stored literal keeps the first-seen
// casing; folding is never applied destructively.
type AnswerSet struct {
	order []string
	seen  map[string]struct{}
}

func NewAnswerSet() *AnswerSet {
	return &AnswerSet{seen: map[string]struct{}{}}
}

// Add appends an answer unless a fold-equal one is already present.
func (s *AnswerSet) Add(answer string) {
	key := strings.ToLower(answer)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, answer)
}

// Len is the number of distinct accepted answers.
func (s *AnswerSet) Len() int { return len(s.order) }

// Values returns the accepted answers in first-seen order.
func (s *AnswerSet) Values() []string {
	return append([]string{}, s.order...)
}

// Primary is the first accepted answer; empty when the set is empty.
func (s *AnswerSet) Primary() string {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[0]
}

// Additional returns every accepted answer after the primary.
func (s *AnswerSet) Additional() []string {
	if len(s.order) <= 1 {
		return nil
	}
	return append([]string{}, s.order[1:]...)
}

// Matches reports whether input equals any stored answer, case-insensitively.
func (s *AnswerSet) Matches(input string) bool {
	_, ok := s.seen[strings.ToLower(input)]
	return ok
}
