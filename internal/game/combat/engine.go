package combat

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/steelkilt/internal/game/character"
	"github.com/cory-johannsen/steelkilt/internal/game/dice"
)

type slot struct {
	mu      sync.Mutex
	session *Session
}

// Engine manages all active sessions, keyed by session ID.
// A combatant may take part in at most one active session.
// All methods are safe for concurrent use; each session is only ever touched
// under its own lock.
type Engine struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*slot
	busy     map[*character.Combatant]uuid.UUID
	logger   *zap.Logger
}

// NewEngine creates an empty Engine.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Engine ready for use.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		sessions: make(map[uuid.UUID]*slot),
		busy:     make(map[*character.Combatant]uuid.UUID),
		logger:   logger,
	}
}

// Start begins a new session between first and second.
//
// Precondition: first and second must be distinct fighters; src must be non-nil
// and owned by this session alone.
// Postcondition: Returns the new session ID, or an error if either combatant
// is already in an active session.
func (e *Engine) Start(first, second *Fighter, src dice.Source, settings Settings) (uuid.UUID, error) {
	if first.Combatant == second.Combatant {
		return uuid.Nil, fmt.Errorf("%s cannot fight itself", first.Name())
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, f := range []*Fighter{first, second} {
		if id, ok := e.busy[f.Combatant]; ok {
			return uuid.Nil, fmt.Errorf("%s is already fighting in session %s", f.Name(), id)
		}
	}

	id := uuid.New()
	e.sessions[id] = &slot{session: NewSession(first, second, src, settings)}
	e.busy[first.Combatant] = id
	e.busy[second.Combatant] = id

	e.logger.Info("combat started",
		zap.String("session", id.String()),
		zap.String("first", first.Name()),
		zap.String("second", second.Name()),
		zap.Int("max_rounds", settings.MaxRounds),
		zap.Bool("hit_locations", settings.HitLocations),
	)
	return id, nil
}

// With runs fn with exclusive access to the session id.
//
// Postcondition: Returns an error if id is unknown, else fn's error.
func (e *Engine) With(id uuid.UUID, fn func(*Session) error) error {
	e.mu.RLock()
	sl, ok := e.sessions[id]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no active session %s", id)
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return fn(sl.session)
}

// Has reports whether id is an active session.
func (e *Engine) Has(id uuid.UUID) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.sessions[id]
	return ok
}

// Active returns the number of active sessions.
func (e *Engine) Active() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

// End removes session id, releases its combatants and returns its outcome.
//
// Postcondition: Returns an error if id is unknown.
func (e *Engine) End(id uuid.UUID) (Outcome, error) {
	e.mu.Lock()
	sl, ok := e.sessions[id]
	if !ok {
		e.mu.Unlock()
		return Ongoing, fmt.Errorf("no active session %s", id)
	}
	delete(e.sessions, id)
	for c, sid := range e.busy {
		if sid == id {
			delete(e.busy, c)
		}
	}
	e.mu.Unlock()

	sl.mu.Lock()
	defer sl.mu.Unlock()
	s := sl.session
	outcome := s.Outcome()
	fields := []zap.Field{
		zap.String("session", id.String()),
		zap.Stringer("outcome", outcome),
		zap.Int("rounds", s.Round()),
		zap.Int("log_entries", s.Log().Len()),
	}
	if w := s.Winner(); w != nil {
		fields = append(fields, zap.String("winner", w.Name()))
	}
	e.logger.Info("combat ended", fields...)
	return outcome, nil
}
