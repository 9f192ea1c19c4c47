package app

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jaminalder/time-travel-tic-tac-toe/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound = stderrors.New("game not found")
)

// GameState is a point-in-time copy of one game.
type GameState struct {
	ID      string
	View    domain.View
	Created time.Time
	Updated time.Time
}

type session struct {
	id      string
	history *domain.History
	created time.Time
	updated time.Time
}

func (s *session) state() GameState {
	return GameState{ID: s.id, View: s.history.View(), Created: s.created, Updated: s.updated}
}

// Service keeps the games of one host process. Each game is only ever
// touched under the service lock.
type Service struct {
	mu    sync.Mutex
	games map[string]*session
	log   zerolog.Logger
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for game events.
func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.log = l } }

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// NewService creates an empty service.
func NewService(opts ...Option) *Service {
	s := &Service{
		games: make(map[string]*session),
		log:   zerolog.Nop(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	gs := &session{id: uuid.NewString(), history: domain.NewHistory(), created: now, updated: now}
	s.games[gs.id] = gs
	s.log.Info().Str("game", gs.id).Msg("game created")
	cp := gs.state()
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := gs.state()
	return &cp, true
}

// Len returns the number of live games.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// Play places the next mark at cell. Clicks the rules ignore return the
// unchanged state and no error.
func (s *Service) Play(id string, cell int) (*GameState, error) {
	return s.update(id, "play", func(h *domain.History) (bool, error) {
		ok, err := h.Apply(cell)
		if err != nil {
			return false, errors.Wrap(err, "play")
		}
		if !ok {
			s.log.Debug().Str("game", id).Int("cell", cell).Msg("move ignored")
		}
		return ok, nil
	})
}

// JumpTo views an earlier (or later) step of the game.
func (s *Service) JumpTo(id string, step int) (*GameState, error) {
	return s.update(id, "jump", func(h *domain.History) (bool, error) {
		if err := h.JumpTo(step); err != nil {
			return false, errors.Wrap(err, "jump")
		}
		return true, nil
	})
}

// ToggleOrder flips the order of the move list.
func (s *Service) ToggleOrder(id string) (*GameState, error) {
	return s.update(id, "order", func(h *domain.History) (bool, error) {
		h.ToggleOrder()
		return true, nil
	})
}

// Reset starts the game over on the same ID.
func (s *Service) Reset(id string) (*GameState, error) {
	return s.update(id, "reset", func(h *domain.History) (bool, error) {
		h.Reset()
		return true, nil
	})
}

func (s *Service) update(id, op string, fn func(*domain.History) (bool, error)) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%s %s", op, id)
	}
	changed, err := fn(gs.history)
	if err != nil {
		s.log.Warn().Err(err).Str("game", id).Str("op", op).Msg("rejected")
		return nil, err
	}
	if changed {
		gs.updated = s.now()
		s.log.Debug().
			Str("game", id).
			Str("op", op).
			Int("position", gs.history.Position()).
			Int("steps", gs.history.Len()).
			Msg("game updated")
	}
	cp := gs.state()
	return &cp, nil
}

// Sweep drops games that have not changed for longer than maxIdle and
// returns how many were removed.
func (s *Service) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-maxIdle)
	n := 0
	for id, gs := range s.games {
		if gs.updated.Before(cutoff) {
			delete(s.games, id)
			n++
		}
	}
	if n > 0 {
		s.log.Info().Int("removed", n).Int("live", len(s.games)).Msg("swept idle games")
	}
	return n
}

// Run sweeps idle games every interval until ctx is done.
func (s *Service) Run(ctx context.Context, every, maxIdle time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep(maxIdle)
		}
	}
}
