package term

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/jaminalder/time-travel-tic-tac-toe/internal/domain"
)

// Op is a terminal command verb.
type Op uint8

const (
	OpPlay Op = iota + 1
	OpJump
	OpOrder
	OpNew
	OpHelp
	OpQuit
)

// Command is one parsed input line.
type Command struct {
	Op  Op
	Arg int
}

var ErrUnknownCommand = errors.New("unknown command")

// Parse reads a command line. "play" takes either a cell index (0-8) or a
// 1-based column and row.
func Parse(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, errors.Wrap(ErrUnknownCommand, "empty line")
	}
	args := fields[1:]
	switch fields[0] {
	case "play", "p":
		switch len(args) {
		case 1:
			cell, err := atoi(args[0])
			return Command{Op: OpPlay, Arg: cell}, err
		case 2:
			c, err := atoi(args[0])
			if err != nil {
				return Command{}, err
			}
			r, err := atoi(args[1])
			if err != nil {
				return Command{}, err
			}
			cell, err := domain.CellAt(c, r)
			if err != nil {
				return Command{}, errors.Wrapf(err, "column %d row %d", c, r)
			}
			return Command{Op: OpPlay, Arg: cell}, nil
		}
		return Command{}, errors.New("usage: play <cell> | play <col> <row>")
	case "jump", "j":
		if len(args) != 1 {
			return Command{}, errors.New("usage: jump <step>")
		}
		step, err := atoi(args[0])
		return Command{Op: OpJump, Arg: step}, err
	case "order", "o":
		return Command{Op: OpOrder}, nil
	case "new", "n":
		return Command{Op: OpNew}, nil
	case "help", "h", "?":
		return Command{Op: OpHelp}, nil
	case "quit", "q", "exit":
		return Command{Op: OpQuit}, nil
	}
	return Command{}, errors.Wrap(ErrUnknownCommand, fields[0])
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("not a number: %q", s)
	}
	return n, nil
}
