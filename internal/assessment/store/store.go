// Package store owns the assessment aggregate of one session: it loads it
// from storage with corruption recovery, applies pure mutations and writes
// the whole aggregate back after each one.
package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"maturity-assessment/internal/assessment/storage"
	"maturity-assessment/internal/common/errors"
	"maturity-assessment/internal/common/logger"
	"maturity-assessment/internal/common/metrics"
	"maturity-assessment/internal/models"
)

const (
	// SessionIDKey holds the identifier of the active session.
	SessionIDKey = "assessmentSessionId"
	// StateKeyPrefix prefixes the key of each session's aggregate.
	StateKeyPrefix = "assessmentState_"
)

// StateKey returns the storage key of a session's aggregate.
func StateKey(sessionID string) string {
	return StateKeyPrefix + sessionID
}

// Mutator is a pure transformation of the aggregate. It receives a deep copy.
type Mutator func(models.Assessment) models.Assessment

// Store is the single writer of one session's aggregate. None of its methods
// return errors: storage failures are logged and counted, and the in-memory
// aggregate stays authoritative.
type Store struct {
	mu        sync.Mutex
	storage   storage.Storage
	logger    logger.Logger
	sessionID string
	current   models.Assessment
	loaded    bool
}

// New returns a store over st. A nil st keeps state in memory only.
func New(st storage.Storage, log logger.Logger) *Store {
	if st == nil {
		st = storage.NewMemory()
	}
	return &Store{
		storage: st,
		logger:  log.WithFields(map[string]interface{}{"component": "state-store"}),
	}
}

// OpenSession resumes the session recorded under SessionIDKey, or starts a
// new one when none is recorded.
func (s *Store) OpenSession(ctx context.Context) (string, models.Assessment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.openSessionLocked(ctx)
	return id, s.loadLocked(ctx, id)
}

// Load returns the aggregate of sessionID. When that session is already held
// in memory the cached value is returned without touching storage.
func (s *Store) Load(ctx context.Context, sessionID string) models.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(ctx, sessionID)
}

// Update applies mutate to the current aggregate, normalizes the result and
// persists it with exactly one Set. persisted is false when that write failed;
// the returned aggregate is the new value either way.
func (s *Store) Update(ctx context.Context, mutate Mutator) (next models.Assessment, persisted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.loadLocked(ctx, s.openSessionLocked(ctx))
	}

	next = mutate(s.current.Clone())
	next.Normalize()
	s.current = next

	return next.Clone(), s.persistLocked(ctx, next)
}

// Reset writes and returns the default aggregate for sessionID.
func (s *Store) Reset(ctx context.Context, sessionID string) models.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionID = sessionID
	s.current = defaults()
	s.loaded = true
	s.persistLocked(ctx, s.current)

	s.logger.Info("assessment reset", map[string]interface{}{"sessionId": sessionID})
	return s.current.Clone()
}

// Current returns the cached aggregate, or defaults before any load.
func (s *Store) Current() models.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return defaults()
	}
	return s.current.Clone()
}

// SessionID returns the active session, empty before any load.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessionID
}

func (s *Store) openSessionLocked(ctx context.Context) string {
	raw, err := s.storage.Get(ctx, SessionIDKey)
	if err == nil && len(raw) > 0 {
		return string(raw)
	}
	if err != nil && !stderrors.Is(err, storage.ErrNotFound) {
		s.reportPersistence("get", SessionIDKey, err)
	}

	id := uuid.NewString()
	if err := s.storage.Set(ctx, SessionIDKey, []byte(id)); err != nil {
		s.reportPersistence("set", SessionIDKey, err)
	}
	s.logger.Info("assessment session started", map[string]interface{}{"sessionId": id})
	return id
}

func (s *Store) loadLocked(ctx context.Context, sessionID string) models.Assessment {
	if s.loaded && s.sessionID == sessionID {
		return s.current.Clone()
	}

	s.sessionID = sessionID
	s.current = s.read(ctx, sessionID)
	s.loaded = true
	return s.current.Clone()
}

func (s *Store) read(ctx context.Context, sessionID string) models.Assessment {
	key := StateKey(sessionID)

	raw, err := s.storage.Get(ctx, key)
	if stderrors.Is(err, storage.ErrNotFound) {
		return defaults()
	}
	if err != nil {
		s.reportPersistence("get", key, err)
		return defaults()
	}

	a, err := decode(raw)
	if err != nil {
		stdErr := errors.NewStateCorruptedError(key, err)
		s.logger.Error("stored assessment state is corrupted", stdErr.Fields())
		metrics.StateCorruptions.Inc()

		fresh := defaults()
		s.persistLocked(ctx, fresh)
		return fresh
	}
	return a
}

func (s *Store) persistLocked(ctx context.Context, a models.Assessment) bool {
	key := StateKey(s.sessionID)

	raw, err := json.Marshal(a)
	if err != nil {
		s.reportPersistence("encode", key, err)
		return false
	}
	if err := s.storage.Set(ctx, key, raw); err != nil {
		s.reportPersistence("set", key, err)
		return false
	}
	return true
}

func (s *Store) reportPersistence(op, key string, err error) {
	stdErr := errors.NewPersistenceFailedError(op, key, err)
	s.logger.Warn("assessment state persistence failed", stdErr.Fields())
	metrics.PersistenceFailures.WithLabelValues(op).Inc()
}

func decode(raw []byte) (models.Assessment, error) {
	result, err := stateSchema.ValidateBytes(raw)
	if err != nil {
		return models.Assessment{}, err
	}
	if !result.Valid {
		return models.Assessment{}, fmt.Errorf("structural check failed: %v", result.GetErrorMessages())
	}

	var a models.Assessment
	if err := json.Unmarshal(raw, &a); err != nil {
		return models.Assessment{}, err
	}
	a.Normalize()
	return a, nil
}

func defaults() models.Assessment {
	a := models.NewAssessment()
	a.Normalize()
	return a
}
