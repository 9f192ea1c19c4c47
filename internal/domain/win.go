package domain

// Line is an ordered triple of cell indices.
type Line [3]int

// Lines lists every winning line in evaluation order.
var Lines = [8]Line{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// WinResult names the winner and the line they completed.
type WinResult struct {
	Player Cell
	Line   Line
}

// Evaluate returns the first completed line on b, if any.
func Evaluate(b Board) (WinResult, bool) {
	for _, ln := range Lines {
		p := b[ln[0]]
		if p != Empty && b[ln[1]] == p && b[ln[2]] == p {
			return WinResult{Player: p, Line: ln}, true
		}
	}
	return WinResult{}, false
}
