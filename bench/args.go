package bench

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/challenai/hincr"
)

var (
	// ErrUsage means the wrong number of positional arguments was given.
	ErrUsage = errors.New("usage error")
	// ErrInvalidArgument means an argument could not be parsed.
	ErrInvalidArgument = errors.New("invalid argument")
)

const Usage = "\nUsage: hincr <table-name> <row> <column-family-name> <column-name> <increments-count> " +
	"<INCREMENT|INCREMENT_WRITE|PUT>\n\n"

// Mode selects the write operation the driver repeats.
type Mode string

const (
	ModeIncrement      Mode = "INCREMENT"
	ModeIncrementWrite Mode = "INCREMENT_WRITE"
	ModePut            Mode = "PUT"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeIncrement, ModeIncrementWrite, ModePut:
		return m, nil
	}
	return "", fmt.Errorf("%w: unsupported operation %q", ErrInvalidArgument, s)
}

// Op returns the write applied once per iteration. Every mode writes the
// value 1.
func (m Mode) Op() hincr.WriteOp {
	switch m {
	case ModeIncrement:
		return hincr.AtomicIncrement{Amount: 1}
	case ModeIncrementWrite:
		return hincr.DeltaPut{Value: 1}
	default:
		return hincr.LiteralPut{Value: 1}
	}
}

// Args are the six positional arguments of a run.
type Args struct {
	Table      string
	Cell       hincr.Cell
	Iterations int
	Mode       Mode
}

// ParseArgs parses table, row, family, qualifier, count and mode, in that
// order.
func ParseArgs(argv []string) (Args, error) {
	if len(argv) != 6 {
		return Args{}, fmt.Errorf("%w: expected 6 arguments, got %d", ErrUsage, len(argv))
	}
	n, err := strconv.Atoi(argv[4])
	if err != nil {
		return Args{}, fmt.Errorf("%w: increments-count %q is not an integer", ErrInvalidArgument, argv[4])
	}
	if n < 0 {
		return Args{}, fmt.Errorf("%w: increments-count %d is negative", ErrInvalidArgument, n)
	}
	mode, err := ParseMode(argv[5])
	if err != nil {
		return Args{}, err
	}
	return Args{
		Table: argv[0],
		Cell: hincr.Cell{
			Row:       []byte(argv[1]),
			Family:    []byte(argv[2]),
			Qualifier: []byte(argv[3]),
		},
		Iterations: n,
		Mode:       mode,
	}, nil
}
