package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"codeinsight/src/config"
	"codeinsight/src/model"
	"codeinsight/src/service/genai"
	"codeinsight/src/util"
)

// Store owns the session map, the only long-lived shared mutable state
// in the system. One coarse lock guards it; eviction is a size-triggered
// sweep of the oldest sessions, not a per-session TTL.
type Store struct {
	gen         genai.TextGenerator
	maxSessions int
	evictCount  int

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates a session store
func NewStore(gen genai.TextGenerator, cfg config.SessionConfig) *Store {
	maxSessions := cfg.MaxSessions
	if maxSessions <= 0 {
		maxSessions = 50
	}
	evictCount := cfg.EvictCount
	if evictCount <= 0 {
		evictCount = 10
	}

	return &Store{
		gen:         gen,
		maxSessions: maxSessions,
		evictCount:  evictCount,
		sessions:    make(map[string]*Session),
	}
}

// Create registers a new session for a report and its source units,
// evicting the oldest sessions when the store exceeds its cap.
func (s *Store) Create(rep *model.Report, units []model.SourceUnit) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		report:    rep,
		units:     units,
		gen:       s.gen,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = sess
	s.evictLocked()

	util.Debug("Session %s created (%d active)", sess.ID, len(s.sessions))
	return sess
}

// Get returns a session by id, or ErrSessionNotFound
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count returns the number of active sessions
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Ask answers a question against the named session
func (s *Store) Ask(ctx context.Context, id, question string) (string, error) {
	sess, err := s.Get(id)
	if err != nil {
		return "", err
	}
	return sess.Ask(ctx, question), nil
}

// evictLocked removes the oldest sessions once the count exceeds the cap.
// Caller holds the store lock.
func (s *Store) evictLocked() {
	if len(s.sessions) <= s.maxSessions {
		return
	}

	all := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	sort.Slice(all, func(a, b int) bool {
		return all[a].CreatedAt.Before(all[b].CreatedAt)
	})

	evict := s.evictCount
	if evict > len(all) {
		evict = len(all)
	}
	for _, sess := range all[:evict] {
		delete(s.sessions, sess.ID)
	}

	util.Info("Evicted %d oldest sessions (%d remain)", evict, len(s.sessions))
}
