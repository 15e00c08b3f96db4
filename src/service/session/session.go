// Package session implements Q&A sessions scoped to one analysis report:
// the bounded context assembler, the conversation state, and the store
// that owns all long-lived session state.
package session

import (
	"context"
	"sync"
	"time"

	"codeinsight/src/model"
	"codeinsight/src/service/genai"
	"codeinsight/src/util"
)

// FallbackAnswer is returned when the external model call fails.
// Failed turns are not recorded in history.
const FallbackAnswer = "Sorry, I could not process that question right now. Please try again."

// Turn is one question/answer exchange
type Turn struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}

// Session holds a conversation against one report. The report and units
// are shared read-only; only the history mutates, under the session lock.
type Session struct {
	ID        string
	CreatedAt time.Time

	report *model.Report
	units  []model.SourceUnit
	gen    genai.TextGenerator

	mu      sync.Mutex
	history []Turn
}

// Report returns the report this session answers questions about
func (s *Session) Report() *model.Report {
	return s.report
}

// Ask builds a fresh bounded context for the question, calls the model,
// and appends the successful turn to history. A failed model call
// returns the fixed fallback answer and records nothing.
func (s *Session) Ask(ctx context.Context, question string) string {
	s.mu.Lock()
	historyCopy := make([]Turn, len(s.history))
	copy(historyCopy, s.history)
	s.mu.Unlock()

	prompt := BuildContext(s.report, s.units, historyCopy) +
		"Answer the following question about this codebase concisely and concretely.\n\nQuestion: " + question

	answer, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		util.Warn("Q&A call failed for session %s: %v", s.ID, err)
		return FallbackAnswer
	}

	s.mu.Lock()
	s.history = append(s.history, Turn{
		Question: question,
		Answer:   answer,
		AskedAt:  time.Now().UTC(),
	})
	s.mu.Unlock()

	return answer
}

// History returns a copy of the full stored history. Storage is never
// truncated; only the context window built from it is bounded.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}
