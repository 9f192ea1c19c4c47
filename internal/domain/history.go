package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Snapshot is one recorded board plus the move that produced it. The initial
// snapshot has neither a move nor a winning line.
type Snapshot struct {
	Board       Board
	Move        *Move
	WinningLine *Line
}

// Order controls how the move list is presented.
type Order uint8

const (
	Descending Order = iota
	Ascending
)

func (o Order) String() string {
	if o == Ascending {
		return "ascending"
	}
	return "descending"
}

// MoveEntry describes one history step for rendering.
type MoveEntry struct {
	Step    int
	Label   string
	Current bool
}

// History owns the snapshots of one game, the viewed position and the
// display order. Whose turn it is follows from the position's parity. It is
// not safe for concurrent use.
type History struct {
	snapshots []Snapshot
	position  int
	order     Order
}

// NewHistory returns a history holding only the empty board.
func NewHistory() *History {
	h := &History{order: Descending}
	h.Reset()
	return h
}

// Reset drops every move and views the empty board. The display order is
// kept.
func (h *History) Reset() {
	h.snapshots = []Snapshot{{}}
	h.position = 0
}

// Apply places the current player's mark at cell, branching off the viewed
// position. It reports false without changing anything when the viewed board
// is already won or the cell is taken.
func (h *History) Apply(cell int) (bool, error) {
	if !validCell(cell) {
		return false, errors.Wrapf(ErrOutOfBounds, "cell %d", cell)
	}
	board := h.snapshots[h.position].Board
	if _, won := Evaluate(board); won || board[cell] != Empty {
		return false, nil
	}

	mark := h.Next()
	h.snapshots = h.snapshots[:h.position+1]
	board[cell] = mark

	move := MoveAt(cell)
	snap := Snapshot{Board: board, Move: &move}
	if res, ok := Evaluate(board); ok {
		ln := res.Line
		snap.WinningLine = &ln
	}
	h.snapshots = append(h.snapshots, snap)
	h.position = len(h.snapshots) - 1
	return true, nil
}

// JumpTo views the snapshot at step without touching the history.
func (h *History) JumpTo(step int) error {
	if step < 0 || step >= len(h.snapshots) {
		return errors.Wrapf(ErrStepOutOfRange, "step %d of %d", step, len(h.snapshots))
	}
	h.position = step
	return nil
}

// ToggleOrder flips the move list order.
func (h *History) ToggleOrder() {
	if h.order == Descending {
		h.order = Ascending
	} else {
		h.order = Descending
	}
}

func (h *History) Order() Order  { return h.order }
func (h *History) Position() int { return h.position }
func (h *History) Len() int      { return len(h.snapshots) }

// Snapshot returns a copy of the snapshot recorded at step.
func (h *History) Snapshot(step int) (Snapshot, error) {
	if step < 0 || step >= len(h.snapshots) {
		return Snapshot{}, errors.Wrapf(ErrStepOutOfRange, "step %d of %d", step, len(h.snapshots))
	}
	return h.snapshots[step].clone(), nil
}

// Current returns a copy of the viewed snapshot.
func (h *History) Current() Snapshot { return h.snapshots[h.position].clone() }

// Board returns the viewed board.
func (h *History) Board() Board { return h.snapshots[h.position].Board }

// XIsNext reports whether X moves from the viewed position.
func (h *History) XIsNext() bool { return h.position%2 == 0 }

// Next returns the mark placed by the next move.
func (h *History) Next() Cell {
	if h.XIsNext() {
		return X
	}
	return O
}

// Winner evaluates the viewed board.
func (h *History) Winner() (WinResult, bool) { return Evaluate(h.Board()) }

// WinningLine returns the completed line on the viewed board, if any.
func (h *History) WinningLine() (Line, bool) {
	res, ok := h.Winner()
	return res.Line, ok
}

// Status is the headline shown above the move list.
func (h *History) Status() string {
	if res, ok := h.Winner(); ok {
		return "Winner: " + res.Player.String()
	}
	return "Next player: " + h.Next().String()
}

// Moves lists every step in display order.
func (h *History) Moves() []MoveEntry {
	n := len(h.snapshots)
	out := make([]MoveEntry, n)
	for m, s := range h.snapshots {
		e := MoveEntry{Step: m, Label: label(m, s.Move), Current: m == h.position}
		if h.order == Descending {
			out[n-1-m] = e
		} else {
			out[m] = e
		}
	}
	return out
}

func label(step int, mv *Move) string {
	if step == 0 || mv == nil {
		return "Go to game start"
	}
	return fmt.Sprintf("Go to move #%d @ (%d, %d)", step, mv.Column, mv.Row)
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{Board: s.Board}
	if s.Move != nil {
		mv := *s.Move
		out.Move = &mv
	}
	if s.WinningLine != nil {
		ln := *s.WinningLine
		out.WinningLine = &ln
	}
	return out
}
