package controller

import (
	"context"

	"codeinsight/src/config"
	"codeinsight/src/model"
	"codeinsight/src/service/genai"
	"codeinsight/src/service/session"
)

// QAController is the Q&A surface over analysis reports. It owns the
// session store; callers address sessions by id.
type QAController struct {
	store *session.Store
}

// NewQAController creates a Q&A controller with its own session store
func NewQAController(cfg *config.Config, gen genai.TextGenerator) *QAController {
	return &QAController{
		store: session.NewStore(gen, cfg.Session),
	}
}

// CreateSession opens a new Q&A session for a report and its units
func (c *QAController) CreateSession(rep *model.Report, units []model.SourceUnit) *session.Session {
	return c.store.Create(rep, units)
}

// Ask answers a question against a session id. Unknown ids return
// ErrSessionNotFound; model failures return the fallback answer, not an
// error.
func (c *QAController) Ask(ctx context.Context, id, question string) (string, error) {
	return c.store.Ask(ctx, id, question)
}

// SuggestedQuestions returns the deterministic suggestion list for a
// session's report
func (c *QAController) SuggestedQuestions(id string) ([]string, error) {
	sess, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}
	return session.SuggestedQuestions(sess.Report()), nil
}

// History returns the full stored history of a session
func (c *QAController) History(id string) ([]session.Turn, error) {
	sess, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}
	return sess.History(), nil
}

// DeleteSession removes a session explicitly
func (c *QAController) DeleteSession(id string) {
	c.store.Delete(id)
}
