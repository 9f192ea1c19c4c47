package domain

import "errors"

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Size is the side length of the board.
const Size = 3

// Board is a fixed 3x3 board stored row-major.
type Board [Size * Size]Cell

// Full reports whether no empty cell is left.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Move is the 1-based column and row of a placed mark.
type Move struct {
	Column int
	Row    int
}

// MoveAt converts a cell index (0..8) into its 1-based coordinates.
func MoveAt(cell int) Move {
	return Move{Column: cell%Size + 1, Row: cell/Size + 1}
}

// Cell returns the index the move was placed at.
func (m Move) Cell() int {
	return (m.Row-1)*Size + (m.Column - 1)
}

// CellAt returns the index for 1-based column c and row r.
func CellAt(c, r int) (int, error) {
	if c < 1 || c > Size || r < 1 || r > Size {
		return 0, ErrOutOfBounds
	}
	return (r-1)*Size + (c - 1), nil
}

// Errors returned by domain operations. Both indicate a caller bug; ignorable
// clicks (occupied cell, finished game) are not errors.
var (
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrStepOutOfRange = errors.New("step out of range")
)

func validCell(cell int) bool {
	return cell >= 0 && cell < len(Board{})
}
