package model

import (
	"errors"
	"strings"
)

// Question is stored at /batches/{batch}/{subject}/questions/{id}.
type Question struct {
	ID       string   `json:"id,omitempty"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

func (q *Question) Normalize() {
	q.Question = strings.TrimSpace(q.Question)
	q.Answer = strings.TrimSpace(q.Answer)
	for i := range q.Options {
		q.Options[i] = strings.TrimSpace(q.Options[i])
	}
}

func (q Question) Validate() error {
	if q.Question == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) < 2 {
		return errors.New("at least two options are required")
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if o == "" {
			return errors.New("options must not be empty")
		}
		if _, dup := seen[o]; dup {
			return errors.New("options must be distinct")
		}
		seen[o] = struct{}{}
	}
	if !q.HasOption(q.Answer) {
		return errors.New("answer must be one of the options")
	}
	return nil
}

func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// IsPlaceholder reports whether a decoded entry is filler rather than a real
// question. Placeholders keep empty collections addressable in the store.
func (q Question) IsPlaceholder() bool {
	return q.Question == "" || len(q.Options) == 0
}

// StudentQuestion is a question as shown during an exam, without its answer.
type StudentQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

func (q Question) ForStudent() StudentQuestion {
	return StudentQuestion{ID: q.ID, Question: q.Question, Options: append([]string(nil), q.Options...)}
}
