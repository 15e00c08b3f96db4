package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeinsight/src/config"
	"codeinsight/src/model"
)

// scriptedGen returns a fixed answer or error for every prompt
type scriptedGen struct {
	answer string
	err    error
}

func (g *scriptedGen) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.answer, g.err
}

func minimalReport() *model.Report {
	return &model.Report{
		Summary: model.ReportSummary{
			TotalFiles:        1,
			TotalLines:        10,
			Languages:         []string{"javascript"},
			IssueCount:        1,
			SeverityBreakdown: map[model.Severity]int{model.SeverityHigh: 1},
		},
		Issues: []model.Issue{
			{ID: "security-0001", Type: model.TypeSecurity, Severity: model.SeverityHigh, Title: "X", File: "a.js"},
		},
		Metrics:     model.QualityMetrics{TestCoverage: 80, MaintainabilityIndex: 90},
		GeneratedAt: time.Now().UTC(),
	}
}

func minimalUnits() []model.SourceUnit {
	return []model.SourceUnit{
		model.NewSourceUnit("a.js", "const x = 1;\n", model.LangJavaScript),
	}
}

func storeConfig(maxSessions, evictCount int) config.SessionConfig {
	return config.SessionConfig{MaxSessions: maxSessions, EvictCount: evictCount}
}

func TestSessionAskRecordsHistory(t *testing.T) {
	store := NewStore(&scriptedGen{answer: "the answer"}, storeConfig(10, 2))
	sess := store.Create(minimalReport(), minimalUnits())

	answer := sess.Ask(context.Background(), "what is wrong?")

	assert.Equal(t, "the answer", answer)

	history := sess.History()
	require.Len(t, history, 1)
	assert.Equal(t, "what is wrong?", history[0].Question)
	assert.Equal(t, "the answer", history[0].Answer)
	assert.False(t, history[0].AskedAt.IsZero())
}

func TestSessionAskFallbackOnError(t *testing.T) {
	store := NewStore(&scriptedGen{err: errors.New("quota exceeded")}, storeConfig(10, 2))
	sess := store.Create(minimalReport(), minimalUnits())

	answer := sess.Ask(context.Background(), "what is wrong?")

	assert.Equal(t, FallbackAnswer, answer)
	assert.Empty(t, sess.History(), "failed turns must not be recorded")
}

func TestSessionHistoryIsCopy(t *testing.T) {
	store := NewStore(&scriptedGen{answer: "a"}, storeConfig(10, 2))
	sess := store.Create(minimalReport(), minimalUnits())
	sess.Ask(context.Background(), "q1")

	history := sess.History()
	history[0].Answer = "mutated"

	assert.Equal(t, "a", sess.History()[0].Answer)
}

func TestSessionHistoryStorageNotTruncated(t *testing.T) {
	store := NewStore(&scriptedGen{answer: "a"}, storeConfig(10, 2))
	sess := store.Create(minimalReport(), minimalUnits())

	for i := 0; i < 20; i++ {
		sess.Ask(context.Background(), fmt.Sprintf("q%d", i))
	}

	assert.Len(t, sess.History(), 20)
}

func TestStoreGetUnknownSession(t *testing.T) {
	store := NewStore(&scriptedGen{}, storeConfig(10, 2))

	_, err := store.Get("missing")

	require.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestStoreAskByID(t *testing.T) {
	store := NewStore(&scriptedGen{answer: "ok"}, storeConfig(10, 2))
	sess := store.Create(minimalReport(), minimalUnits())

	answer, err := store.Ask(context.Background(), sess.ID, "q")

	require.NoError(t, err)
	assert.Equal(t, "ok", answer)

	_, err = store.Ask(context.Background(), "missing", "q")
	require.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(&scriptedGen{}, storeConfig(10, 2))
	sess := store.Create(minimalReport(), minimalUnits())

	store.Delete(sess.ID)

	_, err := store.Get(sess.ID)
	require.ErrorIs(t, err, model.ErrSessionNotFound)

	store.Delete("missing") // no-op
}

func TestStoreEvictsOldestWhenOverCap(t *testing.T) {
	store := NewStore(&scriptedGen{}, storeConfig(5, 2))

	var sessions []*Session
	for i := 0; i < 6; i++ {
		sessions = append(sessions, store.Create(minimalReport(), minimalUnits()))
		time.Sleep(2 * time.Millisecond)
	}

	assert.Equal(t, 4, store.Count())

	_, err := store.Get(sessions[0].ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
	_, err = store.Get(sessions[1].ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	_, err = store.Get(sessions[5].ID)
	assert.NoError(t, err)
}
