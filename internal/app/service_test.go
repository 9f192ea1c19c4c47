package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/time-travel-tic-tac-toe/internal/domain"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestCreateAndGet(t *testing.T) {
	s := NewService()
	gs, err := s.CreateGame()
	require.NoError(t, err)
	require.NotEmpty(t, gs.ID)
	assert.Equal(t, domain.X, gs.View.Next)
	assert.Equal(t, 1, gs.View.Steps)
	assert.False(t, gs.Created.IsZero())
	assert.False(t, gs.Updated.IsZero())

	got, ok := s.Get(gs.ID)
	require.True(t, ok)
	assert.Equal(t, gs.ID, got.ID)
	assert.Equal(t, 1, s.Len())
}

func TestUnknownGame(t *testing.T) {
	s := NewService()
	_, ok := s.Get("nope")
	assert.False(t, ok)

	_, err := s.Play("nope", 0)
	require.True(t, errors.Is(err, ErrNotFound))
	_, err = s.JumpTo("nope", 0)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.ToggleOrder("nope")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Reset("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlayAndTimeTravel(t *testing.T) {
	s := NewService()
	gs, _ := s.CreateGame()

	for _, c := range []int{0, 1, 3, 4, 6} {
		_, err := s.Play(gs.ID, c)
		require.NoError(t, err)
	}
	st, err := s.Play(gs.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, "Winner: X", st.View.Status)
	assert.Equal(t, 6, st.View.Steps)
	assert.Equal(t, domain.Empty, st.View.Board[8])

	st, err = s.JumpTo(gs.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Board{}, st.View.Board)
	assert.Equal(t, 6, st.View.Steps)

	st, err = s.Play(gs.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, st.View.Steps)
	assert.Equal(t, domain.X, st.View.Board[1])
}

func TestContractErrorsPassThrough(t *testing.T) {
	s := NewService()
	gs, _ := s.CreateGame()

	_, err := s.Play(gs.ID, 9)
	require.ErrorIs(t, err, domain.ErrOutOfBounds)
	_, err = s.JumpTo(gs.ID, 3)
	require.ErrorIs(t, err, domain.ErrStepOutOfRange)

	got, _ := s.Get(gs.ID)
	assert.Equal(t, 1, got.View.Steps)
}

func TestToggleOrderAndReset(t *testing.T) {
	s := NewService()
	gs, _ := s.CreateGame()
	_, _ = s.Play(gs.ID, 4)

	st, err := s.ToggleOrder(gs.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Ascending, st.View.Order)
	assert.Equal(t, 0, st.View.Moves[0].Step)

	st, err = s.Reset(gs.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.View.Steps)
	assert.Equal(t, domain.Ascending, st.View.Order)
}

func TestStateIsACopy(t *testing.T) {
	s := NewService()
	gs, _ := s.CreateGame()
	st, _ := s.Play(gs.ID, 0)
	st.View.Board[0] = domain.O
	st.View.Moves[0].Label = "changed"

	got, _ := s.Get(gs.ID)
	assert.Equal(t, domain.X, got.View.Board[0])
	assert.NotEqual(t, "changed", got.View.Moves[0].Label)
}

func TestIgnoredMoveKeepsUpdated(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewService(WithClock(clk.Now))
	gs, _ := s.CreateGame()
	_, _ = s.Play(gs.ID, 0)

	clk.Advance(time.Minute)
	st, err := s.Play(gs.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, gs.Created, st.Updated)
}

func TestSweepDropsIdleGames(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewService(WithClock(clk.Now))
	old, _ := s.CreateGame()
	clk.Advance(20 * time.Minute)
	fresh, _ := s.CreateGame()
	clk.Advance(15 * time.Minute)

	assert.Equal(t, 1, s.Sweep(30*time.Minute))
	_, ok := s.Get(old.ID)
	assert.False(t, ok)
	_, ok = s.Get(fresh.ID)
	assert.True(t, ok)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewService()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Millisecond, time.Hour) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestConcurrentPlayIsSerialised(t *testing.T) {
	s := NewService()
	gs, _ := s.CreateGame()

	var wg sync.WaitGroup
	for c := 0; c < 9; c++ {
		wg.Add(1)
		go func(cell int) {
			defer wg.Done()
			_, _ = s.Play(gs.ID, cell)
		}(c)
	}
	wg.Wait()

	got, _ := s.Get(gs.ID)
	filled := 0
	for _, c := range got.View.Board {
		if c != domain.Empty {
			filled++
		}
	}
	assert.Equal(t, got.View.Steps-1, filled)
}
