// Package term is a line-oriented terminal front end for one game.
package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/jaminalder/time-travel-tic-tac-toe/internal/domain"
)

const help = `commands:
  play <cell>       place a mark, cells are 0-8 row by row
  play <col> <row>  same, with 1-based column and row
  jump <step>       view an earlier step
  order             flip the move list order
  new               start over
  quit
`

// Session reads commands from in and draws the game to out.
type Session struct {
	history *domain.History
	in      io.Reader
	out     *termenv.Output
	log     zerolog.Logger
}

// NewSession creates a session for a fresh game.
func NewSession(in io.Reader, out *termenv.Output, log zerolog.Logger) *Session {
	return &Session{history: domain.NewHistory(), in: in, out: out, log: log}
}

// History exposes the game being played.
func (s *Session) History() *domain.History { return s.history }

// Run draws the board and handles commands until quit, EOF or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	sc := bufio.NewScanner(s.in)
	s.draw()
	for {
		fmt.Fprint(s.out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			s.fail(err)
			continue
		}
		quit, err := s.exec(cmd)
		if err != nil {
			s.fail(err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func (s *Session) exec(cmd Command) (bool, error) {
	switch cmd.Op {
	case OpPlay:
		ok, err := s.history.Apply(cmd.Arg)
		if err != nil {
			return false, err
		}
		if !ok {
			s.log.Debug().Int("cell", cmd.Arg).Msg("move ignored")
		}
	case OpJump:
		if err := s.history.JumpTo(cmd.Arg); err != nil {
			return false, err
		}
	case OpOrder:
		s.history.ToggleOrder()
	case OpNew:
		s.history.Reset()
	case OpHelp:
		fmt.Fprint(s.out, help)
		return false, nil
	case OpQuit:
		return true, nil
	}
	s.draw()
	return false, nil
}

func (s *Session) fail(err error) {
	fmt.Fprintln(s.out, s.out.String("error: "+err.Error()).Foreground(s.out.Color("1")))
}

func (s *Session) draw() {
	fmt.Fprint(s.out, Render(s.out, s.history.View()))
}

// Render draws the board, status line and move list. Empty cells show
// their index.
func Render(out *termenv.Output, v domain.View) string {
	var b strings.Builder
	for r := 0; r < domain.Size; r++ {
		if r > 0 {
			b.WriteString("---+---+---\n")
		}
		for c := 0; c < domain.Size; c++ {
			i := r*domain.Size + c
			if c > 0 {
				b.WriteString("|")
			}
			b.WriteString(" " + cell(out, v, i) + " ")
		}
		b.WriteString("\n")
	}
	b.WriteString(out.String(v.Status).Bold().String() + "\n")
	for _, e := range v.Moves {
		line := fmt.Sprintf("%2d. %s", e.Step, e.Label)
		if e.Current {
			b.WriteString("> " + out.String(line).Bold().String() + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func cell(out *termenv.Output, v domain.View, i int) string {
	c := v.Board[i]
	if c == domain.Empty {
		return out.String(strconv.Itoa(i)).Faint().String()
	}
	st := out.String(c.String()).Bold()
	if c == domain.X {
		st = st.Foreground(out.Color("4"))
	} else {
		st = st.Foreground(out.Color("5"))
	}
	if v.InLine(i) {
		st = st.Reverse()
	}
	return st.String()
}
