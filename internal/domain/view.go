package domain

// View is a read-only projection of a History for presentation layers. It
// shares no memory with the History it was taken from.
type View struct {
	Board       Board
	Status      string
	Winner      Cell
	WinningLine *Line
	Next        Cell
	Position    int
	Steps       int
	Order       Order
	Moves       []MoveEntry
}

// View captures the current projection.
func (h *History) View() View {
	v := View{
		Board:    h.Board(),
		Status:   h.Status(),
		Next:     h.Next(),
		Position: h.position,
		Steps:    len(h.snapshots),
		Order:    h.order,
		Moves:    h.Moves(),
	}
	if res, ok := h.Winner(); ok {
		ln := res.Line
		v.Winner = res.Player
		v.WinningLine = &ln
	}
	return v
}

// InLine reports whether cell belongs to the winning line.
func (v View) InLine(cell int) bool {
	if v.WinningLine == nil {
		return false
	}
	for _, c := range v.WinningLine {
		if c == cell {
			return true
		}
	}
	return false
}
