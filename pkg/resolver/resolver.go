//go:generate mockgen -destination=./mocks/resolver.go . ConflictResolver

// Package resolver defines how the planner obtains yes/no decisions from an
// operator. The planner never knows how an answer was produced; terminal
// prompts, command-line flags and test scripts all implement ConflictResolver.
package resolver

import "sync"

// QuestionKind identifies the situation a question is asked in.
type QuestionKind string

// Question kinds asked by the planner.
const (
	KindPatchSameVersion  QuestionKind = "patch-same-version"
	KindPatchOlderVersion QuestionKind = "patch-older-version"
	KindPatchNewerVersion QuestionKind = "patch-newer-version"
	KindInstallAddon      QuestionKind = "install-addon"
	KindOverwriteAddon    QuestionKind = "overwrite-addon"
	KindOverwriteGame     QuestionKind = "overwrite-game"
)

// Question is a single confirmation request. Default is the answer an
// implementation should use when nobody can be asked.
type Question struct {
	Kind    QuestionKind
	Title   string
	Message string
	Default bool
}

// ConflictResolver answers confirmation questions synchronously.
type ConflictResolver interface {
	Ask(q Question) bool
}

// Fixed answers every question with the same value.
type Fixed bool

// Ask implements ConflictResolver.
func (f Fixed) Ask(Question) bool {
	return bool(f)
}

// Defaults answers every question with its default.
type Defaults struct{}

// Ask implements ConflictResolver.
func (Defaults) Ask(q Question) bool {
	return q.Default
}

// Scripted returns predetermined answers in order and records every question
// it was asked. Once the answers run out it falls back to each question's default.
type Scripted struct {
	mu      sync.Mutex
	answers []bool
	asked   []Question
}

// NewScripted creates a Scripted resolver with the given answers.
func NewScripted(answers ...bool) *Scripted {
	return &Scripted{answers: append([]bool(nil), answers...)}
}

// Ask implements ConflictResolver.
func (s *Scripted) Ask(q Question) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := len(s.asked)
	s.asked = append(s.asked, q)
	if idx < len(s.answers) {
		return s.answers[idx]
	}
	return q.Default
}

// Asked returns a copy of the questions asked so far.
func (s *Scripted) Asked() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Question(nil), s.asked...)
}

// Remaining reports how many scripted answers have not been consumed.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.answers) - len(s.asked); n > 0 {
		return n
	}
	return 0
}

// Func adapts a plain function to ConflictResolver.
type Func func(q Question) bool

// Ask implements ConflictResolver.
func (f Func) Ask(q Question) bool {
	return f(q)
}
